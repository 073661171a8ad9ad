package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"aaamo-store/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrStatusChanged = errors.New("order status changed concurrently")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns orders newest first, optionally restricted to one status
	List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	// UpdateStatusFrom sets the status to `to` only while the stored status still equals from,
	// failing with ErrStatusChanged otherwise.
	UpdateStatusFrom(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, customer_details, items, total_amount, shipping_cost, final_amount, payment_method, status, created_at`

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := &domain.Order{}
	var (
		userID  sql.NullString
		details []byte
		items   []byte
	)
	err := row.Scan(
		&order.ID,
		&userID,
		&details,
		&items,
		&order.TotalAmount,
		&order.ShippingCost,
		&order.FinalAmount,
		&order.PaymentMethod,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		order.UserID = &userID.String
	}
	if err := json.Unmarshal(details, &order.CustomerDetails); err != nil {
		return nil, fmt.Errorf("failed to decode customer details: %w", err)
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	return order, nil
}

// Create inserts a new order with its customer details and item snapshot as JSON
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	details, err := json.Marshal(order.CustomerDetails)
	if err != nil {
		return fmt.Errorf("failed to encode customer details: %w", err)
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		order.ID,
		order.UserID,
		details,
		items,
		order.TotalAmount,
		order.ShippingCost,
		order.FinalAmount,
		order.PaymentMethod,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// FindByID retrieves an order by ID
func (r *orderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	return order, nil
}

// List retrieves orders newest first
func (r *orderRepository) List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus overwrites the status field and returns the updated order
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	query := `UPDATE orders SET status = $2 WHERE id = $1 RETURNING ` + orderColumns

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

func (r *orderRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error) {
	query := `UPDATE orders SET status = $3 WHERE id = $1 AND status = $2 RETURNING ` + orderColumns

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id, from, to))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	// no row matched: the order is gone or its status moved on
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrStatusChanged
}
