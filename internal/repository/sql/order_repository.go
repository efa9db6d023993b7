package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vuhoang-dev/store-backend/internal/model"
	"github.com/vuhoang-dev/store-backend/internal/repository"
)

// OrderRepository implements repository.OrderRepository over PostgreSQL.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository instance.
func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts an order and its line items in a single transaction.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if order.ID == uuid.Nil {
		order.InitMeta()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `INSERT INTO orders (id, customer_name, email, phone, address, total, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = tx.ExecContext(ctx, query, order.ID, order.CustomerName, order.Email, order.Phone,
		order.Address, order.Total, order.Status, order.CreatedAt)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `INSERT INTO order_items (id, order_id, product_id, title, quantity, unit_price)
	              VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, itemQuery, item.ID, item.OrderID, item.ProductID,
			item.Title, item.Quantity, item.UnitPrice)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}

// FindByID retrieves a single order with its line items by ID.
func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT id, customer_name, email, phone, address, total, status, created_at
	          FROM orders WHERE id = $1`

	var order model.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.CustomerName, &order.Email,
		&order.Phone, &order.Address, &order.Total, &order.Status, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemQuery := `SELECT id, order_id, product_id, title, quantity, unit_price
	              FROM order_items WHERE order_id = $1`
	rows, err := r.db.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Title, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &order, nil
}
