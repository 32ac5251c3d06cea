// Package orders declares the repository contract for immutable order records.
package orders

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

// Repository defines storage operations on orders. Orders are append-only:
// nothing but the status column is ever updated, and nothing is deleted.
type Repository interface {
	// Create persists the order and its item snapshot. Callers that need the
	// create to be atomic with other writes bind the repository to a
	// transaction via the repository manager.
	Create(ctx context.Context, order *models.Order) (*models.Order, error)

	// ListByUser returns the user's orders, newest first, items included.
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)

	// GetForUser returns the order only if it belongs to userID; an order
	// owned by someone else is reported as common.ErrorNotFound, identical to
	// an absent one.
	GetForUser(ctx context.Context, orderID, userID string) (*models.Order, error)
}
