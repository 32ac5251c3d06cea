package carts

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

// InMemoryRepository is a mutex-guarded Repository used in tests. It mirrors
// the Postgres implementation's guarantees: each mutation is atomic per user
// and insertion order is preserved across wholesale replaces.
type InMemoryRepository struct {
	mu    sync.Mutex
	lines map[string][]models.CartLine
}

// NewInMemoryRepository constructs an empty in-memory cart store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{lines: make(map[string][]models.CartLine)}
}

func (r *InMemoryRepository) List(ctx context.Context, userID string) ([]models.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.CartLine, len(r.lines[userID]))
	copy(out, r.lines[userID])
	return out, nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, userID string, line models.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := r.lines[userID]
	for i := range cart {
		if cart[i].ProductID == line.ProductID {
			cart[i] = line
			return nil
		}
	}
	r.lines[userID] = append(cart, line)
	return nil
}

func (r *InMemoryRepository) UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := r.lines[userID]
	for i := range cart {
		if cart[i].ProductID == productID {
			if quantity == 0 {
				r.lines[userID] = append(cart[:i], cart[i+1:]...)
			} else {
				cart[i].Quantity = quantity
			}
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *InMemoryRepository) Remove(ctx context.Context, userID string, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := r.lines[userID]
	for i := range cart {
		if cart[i].ProductID == productID {
			r.lines[userID] = append(cart[:i], cart[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *InMemoryRepository) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines, userID)
	return nil
}
