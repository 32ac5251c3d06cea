// Package httpapi exposes the storefront over HTTP: a chi router with the
// auth, cart and order endpoints, a cookie-based session middleware and a
// CORS policy for the single allowed browser origin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/services"
)

// sessionCookie is the name of the cookie carrying the opaque session token.
const sessionCookie = "session"

// shutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const shutdownTimeout = 5 * time.Second

// AuthService is the slice of the session authority the HTTP layer needs.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// CartService is the slice of the cart engine the HTTP layer needs. Every
// mutation returns the fresh cart, which handlers echo back to the client.
type CartService interface {
	Get(ctx context.Context, userID string) ([]models.CartLine, error)
	UpsertLine(ctx context.Context, userID string, line models.CartLine) ([]models.CartLine, error)
	SetQuantity(ctx context.Context, userID string, productID int64, quantity int) ([]models.CartLine, error)
	RemoveLine(ctx context.Context, userID string, productID int64) ([]models.CartLine, error)
	Clear(ctx context.Context, userID string) ([]models.CartLine, error)
}

// OrderService is the slice of the order engine the HTTP layer needs.
type OrderService interface {
	Place(ctx context.Context, userID string, items []models.OrderLine,
		shipping models.ShippingDetails, totalAmount float64, card services.CardDetails) (*models.Order, error)
	List(ctx context.Context, userID string) ([]models.Order, error)
	Get(ctx context.Context, userID, orderID string) (*models.Order, error)
}

type HTTPServer struct {
	address       string
	allowedOrigin string
	cookieSecure  bool
	sessionTTL    time.Duration
	logger        logging.Logger
	auth          AuthService
	carts         CartService
	orders        OrderService
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, auth AuthService, carts CartService, orders OrderService) *HTTPServer {
	return &HTTPServer{
		address:       cfg.EndpointAddr,
		allowedOrigin: cfg.AllowedOrigin,
		cookieSecure:  cfg.CookieSecure,
		sessionTTL:    cfg.SessionTTL,
		logger:        l.With("module", "http_server"),
		auth:          auth,
		carts:         carts,
		orders:        orders,
	}
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
