// Package carts declares the repository contract for per-user cart lines.
//
// Every mutation is a single atomic statement scoped to one (user, product)
// row or to all of a user's rows, so concurrent requests for the same user
// can never clobber each other's lines.
package carts

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

// Repository defines storage operations on a user's cart lines.
type Repository interface {
	// List returns the user's cart lines in insertion order.
	List(ctx context.Context, userID string) ([]models.CartLine, error)

	// Upsert inserts the line or, if a line for the same product exists,
	// replaces its title, price, image and quantity wholesale. Insertion
	// order survives a replace.
	Upsert(ctx context.Context, userID string, line models.CartLine) error

	// UpdateQuantity overwrites the quantity of an existing line; quantity 0
	// removes the line. An absent line yields common.ErrorNotFound either way.
	UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) error

	// Remove deletes the line if present. Removing an absent line is not an
	// error.
	Remove(ctx context.Context, userID string, productID int64) error

	// Clear deletes all of the user's lines. Idempotent.
	Clear(ctx context.Context, userID string) error
}
