package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const userCtxKey ctxKey = iota

// currentUser returns the user resolved by requireAuth. Handlers behind the
// middleware can rely on it being present.
func currentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userCtxKey).(*models.User)
	return u
}

// requireAuth resolves the session cookie to a live user record and stores
// it on the request context. Resolution also slides the session expiry
// forward, so every authenticated request keeps the session alive.
func (s *HTTPServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		token := sessionToken(r)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		user, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HTTPServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}

func sessionToken(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *HTTPServer) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: s.cookieSameSite(),
	})
}

func (s *HTTPServer) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: s.cookieSameSite(),
	})
}

// Cross-site frontends need SameSite=None, which browsers only accept on
// Secure cookies.
func (s *HTTPServer) cookieSameSite() http.SameSite {
	if s.cookieSecure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
