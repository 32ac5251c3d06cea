package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type placeOrderRequest struct {
	Items           []models.OrderLine     `json:"items"`
	ShippingDetails models.ShippingDetails `json:"shippingDetails"`
	TotalAmount     float64                `json:"totalAmount"`
	PaymentDetails  paymentRequest         `json:"paymentDetails"`
}

type paymentRequest struct {
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
}

type placeOrderResponse struct {
	Message string       `json:"message"`
	OrderID string       `json:"orderId"`
	Order   orderSummary `json:"order"`
}

type orderSummary struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ordersResponse struct {
	Orders []models.Order `json:"orders"`
}

type orderResponse struct {
	Order *models.Order `json:"order"`
}

func (s *HTTPServer) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing required order information")
		return
	}

	card := services.CardDetails{Number: req.PaymentDetails.CardNumber, Expiry: req.PaymentDetails.CardExpiry}

	order, err := s.orders.Place(r.Context(), user.ID, req.Items, req.ShippingDetails, req.TotalAmount, card)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidInput) {
			writeMessage(w, http.StatusBadRequest, "Missing required order information")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, placeOrderResponse{
		Message: "Order placed successfully",
		OrderID: order.ID,
		Order: orderSummary{
			ID:          order.ID,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		},
	})
}

func (s *HTTPServer) handleListOrders(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	orders, err := s.orders.List(r.Context(), user.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, ordersResponse{Orders: orders})
}

func (s *HTTPServer) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	order, err := s.orders.Get(r.Context(), user.ID, chi.URLParam(r, "orderID"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Order not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch order details")
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Order: order})
}
