package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/delicato-app/restaurant-service/internal/models"
)

// OrderRepository handles order data access
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = "id, customer_id, contact_name, contact_email, contact_phone, contact_notes, table_number, total_cents, status, channel, created_at, updated_at"

const orderItemColumns = "id, order_id, menu_item_id, name, quantity, unit_price_cents, special_instructions, created_at"

// List retrieves orders newest first, optionally filtered by status, with
// the customer summary joined for the dashboard.
func (r *OrderRepository) List(ctx context.Context, status *models.OrderStatus) ([]models.Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.contact_name, o.contact_email, o.contact_phone, o.contact_notes,
		       o.table_number, o.total_cents, o.status, o.channel, o.created_at, o.updated_at,
		       c.first_name AS customer_first_name, c.last_name AS customer_last_name, c.email AS customer_email
		FROM orders o
		LEFT JOIN customers c ON o.customer_id = c.id
	`
	var args []interface{}
	if status != nil {
		query += " WHERE o.status = $1"
		args = append(args, *status)
	}
	query += " ORDER BY o.created_at DESC LIMIT 100"

	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].HydrateViews()
	}

	return orders, nil
}

// ListByCustomer retrieves a customer's most recent orders with items.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].HydrateViews()
	}

	return orders, nil
}

// CountSince counts a customer's orders created at or after the given time.
func (r *OrderRepository) CountSince(ctx context.Context, customerID uuid.UUID, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE customer_id = $1 AND created_at >= $2
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, customerID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// Create inserts an order with its item snapshots in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order models.Order, items []models.OrderItem) (*models.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	orderQuery := `
		INSERT INTO orders (customer_id, contact_name, contact_email, contact_phone, contact_notes, table_number, total_cents, status, channel)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + orderColumns + `
	`

	var created models.Order
	err = tx.GetContext(
		ctx,
		&created,
		orderQuery,
		order.CustomerID,
		order.ContactName,
		order.ContactEmail,
		order.ContactPhone,
		order.ContactNotes,
		order.TableNumber,
		order.TotalCents,
		order.Status,
		order.Channel,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, menu_item_id, name, quantity, unit_price_cents, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + orderItemColumns + `
	`

	created.Items = make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		var createdItem models.OrderItem
		err = tx.GetContext(
			ctx,
			&createdItem,
			itemQuery,
			created.ID,
			item.MenuItemID,
			item.Name,
			item.Quantity,
			item.UnitPriceCents,
			item.SpecialInstructions,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		created.Items = append(created.Items, createdItem)
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	created.HydrateViews()

	return &created, nil
}

// UpdateStatus overwrites an order's status and returns the updated order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + orderColumns + `
	`

	var updated models.Order
	err := r.db.GetContext(ctx, &updated, query, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", translate(err))
	}

	items, err := r.GetOrderItems(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	updated.Items = items
	updated.HydrateViews()

	return &updated, nil
}

// GetOrderItems retrieves items for an order
func (r *OrderRepository) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	query := `
		SELECT ` + orderItemColumns + `
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	var items []models.OrderItem
	err := r.db.SelectContext(ctx, &items, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	return items, nil
}

// attachItems loads items for a batch of orders in one query.
func (r *OrderRepository) attachItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []models.OrderItem{}
	}

	query, args, err := sqlx.In(`
		SELECT `+orderItemColumns+`
		FROM order_items
		WHERE order_id IN (?)
		ORDER BY created_at ASC
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to build order items query: %w", err)
	}
	query = r.db.Rebind(query)

	var items []models.OrderItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}

	for _, item := range items {
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return nil
}
