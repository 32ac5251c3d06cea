package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CardDetails is the raw payment input from the client. Only the last four
// digits and the expiry survive into storage.
type CardDetails struct {
	Number string
	Expiry string
}

// OrderService is the order engine plus the order query service.
type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewOrderService constructs the order engine.
func NewOrderService(db *sql.DB, m repomanager.RepositoryManager) *OrderService {
	return &OrderService{db: db, repomanager: m}
}

// Place validates the checkout payload, persists the order with an item
// snapshot taken by value, and clears the user's live cart. Create and clear
// run in one transaction: either the order exists and the cart is empty, or
// neither happened.
//
// The total is taken from the caller as-is and is not recomputed from the
// items.
func (s *OrderService) Place(ctx context.Context, userID string, items []models.OrderLine,
	shipping models.ShippingDetails, totalAmount float64, card CardDetails) (*models.Order, error) {

	if len(items) == 0 {
		return nil, common.ErrorInvalidInput
	}
	if shipping.Name == "" || shipping.Email == "" || shipping.Address == "" {
		return nil, common.ErrorInvalidInput
	}
	if totalAmount <= 0 {
		return nil, common.ErrorInvalidInput
	}
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 || it.Price < 0 {
			return nil, common.ErrorInvalidInput
		}
	}

	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           append([]models.OrderLine(nil), items...),
		ShippingDetails: shipping,
		TotalAmount:     totalAmount,
		PaymentDetails: models.PaymentDetails{
			CardLast4:  lastDigits(card.Number, 4),
			CardExpiry: card.Expiry,
		},
		Status: models.OrderStatusProcessing,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Orders(tx).Create(ctx, order); err != nil {
			return fmt.Errorf("error creating order: %w", err)
		}
		if err := s.repomanager.Carts(tx).Clear(ctx, userID); err != nil {
			return fmt.Errorf("error clearing cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, common.ErrorInternal
	}

	return order, nil
}

// List returns the user's orders, newest first.
func (s *OrderService) List(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.repomanager.Orders(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}
	return orders, nil
}

// Get returns one of the user's orders. A malformed identifier or an order
// owned by another user both read as common.ErrorNotFound.
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*models.Order, error) {

	if _, err := uuid.Parse(orderID); err != nil {
		return nil, common.ErrorNotFound
	}

	order, err := s.repomanager.Orders(s.db).GetForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func lastDigits(number string, n int) string {
	digits := make([]rune, 0, len(number))
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= n {
		return string(digits)
	}
	return string(digits[len(digits)-n:])
}
