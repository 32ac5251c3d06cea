package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
)

// CartService is the cart engine. Every operation acts on the authenticated
// user's cart and returns the fresh cart projection, which the API echoes
// back to the client after each mutation.
type CartService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewCartService constructs the cart engine.
func NewCartService(db *sql.DB, m repomanager.RepositoryManager) *CartService {
	return &CartService{db: db, repomanager: m}
}

// Get returns the user's cart lines in insertion order.
func (s *CartService) Get(ctx context.Context, userID string) ([]models.CartLine, error) {
	lines, err := s.repomanager.Carts(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error reading cart: %w", err)
	}
	return lines, nil
}

// UpsertLine adds the line or replaces an existing line for the same product
// wholesale. Two sequential upserts for one product do not sum quantities:
// the later write wins in full.
func (s *CartService) UpsertLine(ctx context.Context, userID string, line models.CartLine) ([]models.CartLine, error) {

	if line.ProductID <= 0 || line.Title == "" || line.Image == "" {
		return nil, common.ErrorInvalidInput
	}
	if line.Price <= 0 || line.Quantity <= 0 {
		return nil, common.ErrorInvalidInput
	}

	repo := s.repomanager.Carts(s.db)

	if err := repo.Upsert(ctx, userID, line); err != nil {
		return nil, fmt.Errorf("error upserting cart line: %w", err)
	}

	return s.Get(ctx, userID)
}

// SetQuantity overwrites the quantity of an existing line; 0 removes it.
// Unlike RemoveLine, an absent line is an error here.
func (s *CartService) SetQuantity(ctx context.Context, userID string, productID int64, quantity int) ([]models.CartLine, error) {

	if quantity < 0 {
		return nil, common.ErrorInvalidInput
	}

	repo := s.repomanager.Carts(s.db)

	if err := repo.UpdateQuantity(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating quantity: %w", err)
	}

	return s.Get(ctx, userID)
}

// RemoveLine deletes the line if present; removing an absent line is a no-op.
func (s *CartService) RemoveLine(ctx context.Context, userID string, productID int64) ([]models.CartLine, error) {

	repo := s.repomanager.Carts(s.db)

	if err := repo.Remove(ctx, userID, productID); err != nil {
		return nil, fmt.Errorf("error removing cart line: %w", err)
	}

	return s.Get(ctx, userID)
}

// Clear empties the cart unconditionally. Idempotent.
func (s *CartService) Clear(ctx context.Context, userID string) ([]models.CartLine, error) {

	repo := s.repomanager.Carts(s.db)

	if err := repo.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("error clearing cart: %w", err)
	}

	return []models.CartLine{}, nil
}
