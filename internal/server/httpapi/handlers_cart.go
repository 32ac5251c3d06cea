package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type cartResponse struct {
	Cart []models.CartLine `json:"cart"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (s *HTTPServer) handleGetCart(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	cart, err := s.carts.Get(r.Context(), user.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart})
}

func (s *HTTPServer) handleUpsertCartLine(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var line models.CartLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	cart, err := s.carts.UpsertLine(r.Context(), user.ID, line)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidInput) {
			writeMessage(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart})
}

func (s *HTTPServer) handleRemoveCartLine(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	cart, err := s.carts.RemoveLine(r.Context(), user.ID, productID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart})
}

// handleSetCartQuantity overwrites one line's quantity. The quantity is read
// from the request body; the trailing path segment is kept for URL
// compatibility but carries no meaning.
func (s *HTTPServer) handleSetCartQuantity(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeMessage(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	cart, err := s.carts.SetQuantity(r.Context(), user.ID, productID, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			writeMessage(w, http.StatusBadRequest, "Invalid quantity")
		case errors.Is(err, common.ErrorNotFound):
			writeMessage(w, http.StatusNotFound, "Item not found in cart")
		default:
			writeMessage(w, http.StatusInternalServerError, "Failed to update cart")
		}
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart})
}

func (s *HTTPServer) handleClearCart(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	cart, err := s.carts.Clear(r.Context(), user.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart})
}
