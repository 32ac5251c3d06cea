package carts

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func line(productID int64, qty int) models.CartLine {
	return models.CartLine{
		ProductID: productID,
		Title:     fmt.Sprintf("Product %d", productID),
		Price:     9.99,
		Image:     fmt.Sprintf("img/%d.png", productID),
		Quantity:  qty,
	}
}

func TestInMemory_UpsertReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	require.NoError(t, repo.Upsert(ctx, "u-1", line(1, 2)))

	replacement := models.CartLine{ProductID: 1, Title: "Renamed", Price: 5.00, Image: "img/new.png", Quantity: 7}
	require.NoError(t, repo.Upsert(ctx, "u-1", replacement))

	lines, err := repo.List(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, replacement, lines[0], "later write must fully overwrite the line")
}

func TestInMemory_UpsertPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	require.NoError(t, repo.Upsert(ctx, "u-1", line(1, 1)))
	require.NoError(t, repo.Upsert(ctx, "u-1", line(2, 1)))
	require.NoError(t, repo.Upsert(ctx, "u-1", line(1, 9)))

	lines, err := repo.List(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, int64(1), lines[0].ProductID, "replaced line keeps its position")
	require.Equal(t, 9, lines[0].Quantity)
}

func TestInMemory_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	require.NoError(t, repo.Upsert(ctx, "u-1", line(1, 1)))

	require.NoError(t, repo.Remove(ctx, "u-1", 1))
	require.NoError(t, repo.Remove(ctx, "u-1", 1))
	require.NoError(t, repo.Remove(ctx, "u-1", 404))

	lines, err := repo.List(ctx, "u-1")
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestInMemory_UpdateQuantitySemantics(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	require.NoError(t, repo.Upsert(ctx, "u-1", line(1, 1)))

	require.NoError(t, repo.UpdateQuantity(ctx, "u-1", 1, 4))
	lines, err := repo.List(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, 4, lines[0].Quantity)

	// zero removes, absent line is NotFound
	require.NoError(t, repo.UpdateQuantity(ctx, "u-1", 1, 0))
	require.ErrorIs(t, repo.UpdateQuantity(ctx, "u-1", 1, 3), common.ErrorNotFound)
}

func TestInMemory_ConcurrentUpsertsDoNotLoseLines(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	const n = 100
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		productID := int64(i)
		g.Go(func() error {
			return repo.Upsert(ctx, "u-1", line(productID, 1))
		})
	}
	require.NoError(t, g.Wait())

	lines, err := repo.List(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, lines, n, "every concurrent upsert must survive")
}
