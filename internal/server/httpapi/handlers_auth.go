package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	User models.UserProjection `json:"user"`
}

type authStatusResponse struct {
	Authenticated bool                   `json:"authenticated"`
	Message       string                 `json:"message,omitempty"`
	User          *models.UserProjection `json:"user,omitempty"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			writeMessage(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, common.ErrorConflict):
			writeMessage(w, http.StatusConflict, "Email already registered")
		default:
			writeMessage(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, userResponse{User: user.Projection()})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Login failed")
		return
	}

	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, userResponse{User: user.Projection()})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Could not log out")
		return
	}

	s.clearSessionCookie(w)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (s *HTTPServer) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, authStatusResponse{Message: "No active session"})
		return
	}

	user, err := s.auth.Authenticate(r.Context(), token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, authStatusResponse{Message: "No active session"})
		return
	}

	p := user.Projection()
	writeJSON(w, http.StatusOK, authStatusResponse{Authenticated: true, User: &p})
}
