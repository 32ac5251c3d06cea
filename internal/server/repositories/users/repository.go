// Package users declares the repository contract for persistent user records.
package users

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

// Repository defines storage operations on user records.
type Repository interface {
	// Create inserts a new user. A duplicate email yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given identifier, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
