package orders

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {

	query := `
		INSERT INTO orders (id, user_id, shipping_name, shipping_email, shipping_address,
		                    total_amount, card_last4, card_expiry, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		order.ID, order.UserID,
		order.ShippingDetails.Name, order.ShippingDetails.Email, order.ShippingDetails.Address,
		order.TotalAmount, order.PaymentDetails.CardLast4, order.PaymentDetails.CardExpiry,
		order.Status).Scan(&order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, title, price, image, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, item := range order.Items {
		_, err := r.db.ExecContext(ctx, itemQuery,
			order.ID, item.ProductID, item.Title, item.Price, item.Image, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
	}

	return order, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	query := `
		SELECT id, user_id, shipping_name, shipping_email, shipping_address,
		       total_amount, card_last4, card_expiry, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows.Scan, &o); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *PostgresRepository) GetForUser(ctx context.Context, orderID, userID string) (*models.Order, error) {
	query := `
		SELECT id, user_id, shipping_name, shipping_email, shipping_address,
		       total_amount, card_last4, card_expiry, status, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	o := &models.Order{}
	row := r.db.QueryRowContext(ctx, query, orderID, userID)
	if err := scanOrder(row.Scan, o); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

func (r *PostgresRepository) listItems(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	query := `
		SELECT product_id, title, price, image, quantity FROM order_items
		WHERE order_id = $1
		ORDER BY product_id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := []models.OrderLine{}
	for rows.Next() {
		var it models.OrderLine
		if err := rows.Scan(&it.ProductID, &it.Title, &it.Price, &it.Image, &it.Quantity); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func scanOrder(scan func(dest ...any) error, o *models.Order) error {
	return scan(&o.ID, &o.UserID,
		&o.ShippingDetails.Name, &o.ShippingDetails.Email, &o.ShippingDetails.Address,
		&o.TotalAmount, &o.PaymentDetails.CardLast4, &o.PaymentDetails.CardExpiry,
		&o.Status, &o.CreatedAt)
}
