package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router builds the full route tree. Cart and order routes sit behind the
// session middleware; auth routes manage the session themselves.
//
// The cart clear route is registered as a static segment so it can never be
// swallowed by the productID parameter route.
func (s *HTTPServer) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.allowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Get("/status", s.handleAuthStatus)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleGetCart)
			r.Post("/", s.handleUpsertCartLine)
			r.Delete("/clear", s.handleClearCart)
			r.Delete("/{productID}", s.handleRemoveCartLine)
			r.Put("/{productID}/{quantity}", s.handleSetCartQuantity)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handlePlaceOrder)
			r.Get("/", s.handleListOrders)
			r.Get("/{orderID}", s.handleGetOrder)
		})
	})

	return r
}
