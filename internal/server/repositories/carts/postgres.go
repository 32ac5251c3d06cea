package carts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.CartLine, error) {
	query := `
		SELECT product_id, title, price, image, quantity FROM cart_lines
		WHERE user_id = $1
		ORDER BY added_at, product_id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.ProductID, &l.Title, &l.Price, &l.Image, &l.Quantity); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return lines, nil
}

// Upsert is one round-trip: the ON CONFLICT arm does the wholesale replace
// without touching added_at, so the line keeps its position in the cart.
func (r *PostgresRepository) Upsert(ctx context.Context, userID string, line models.CartLine) error {
	query := `
		INSERT INTO cart_lines (user_id, product_id, title, price, image, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET title = EXCLUDED.title, price = EXCLUDED.price,
		    image = EXCLUDED.image, quantity = EXCLUDED.quantity
	`
	_, err := r.db.ExecContext(ctx, query,
		userID, line.ProductID, line.Title, line.Price, line.Image, line.Quantity)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) error {

	var query string
	var args []any

	if quantity == 0 {
		query = `
			DELETE FROM cart_lines
			WHERE user_id = $1 AND product_id = $2
		`
		args = []any{userID, productID}
	} else {
		query = `
			UPDATE cart_lines SET quantity = $3
			WHERE user_id = $1 AND product_id = $2
		`
		args = []any{userID, productID, quantity}
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID string, productID int64) error {
	query := `
		DELETE FROM cart_lines
		WHERE user_id = $1 AND product_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context, userID string) error {
	query := `
		DELETE FROM cart_lines
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
