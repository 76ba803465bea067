package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order header and its items in one transaction.
// A non-existent product fails the whole operation with a
// ValidationError; nothing is left behind.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order, items []domain.NewOrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaction begin error: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := r.db.Rebind(`
		INSERT INTO orders (id, user_id, status, created_at)
		VALUES (?, ?, ?, ?)
	`)
	if _, err := tx.ExecContext(ctx, query, order.ID, order.UserID, order.Status, order.CreatedAt); err != nil {
		return fmt.Errorf("order creation error: %w", err)
	}

	if err := r.insertItems(ctx, tx, order.ID, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: order commit failed: %v", domain.ErrConflict, err)
	}
	return nil
}

// Update applies the scalar fields and, when items is non-nil, replaces
// the entire item collection (clear then recreate) in the same
// transaction. A nil items leaves existing items untouched.
func (r *OrderRepository) Update(ctx context.Context, orderID uuid.UUID, status *domain.OrderStatus, items *[]domain.NewOrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaction begin error: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing uuid.UUID
	err = tx.QueryRowContext(ctx, r.db.Rebind(`SELECT id FROM orders WHERE id = ?`), orderID).Scan(&existing)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("order lookup error: %w", err)
	}

	if status != nil {
		query := r.db.Rebind(`UPDATE orders SET status = ? WHERE id = ?`)
		if _, err := tx.ExecContext(ctx, query, *status, orderID); err != nil {
			return fmt.Errorf("order update error: %w", err)
		}
	}

	if items != nil {
		query := r.db.Rebind(`DELETE FROM order_items WHERE order_id = ?`)
		if _, err := tx.ExecContext(ctx, query, orderID); err != nil {
			return fmt.Errorf("order items clear error: %w", err)
		}
		if err := r.insertItems(ctx, tx, orderID, *items); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: order commit failed: %v", domain.ErrConflict, err)
	}
	return nil
}

func (r *OrderRepository) insertItems(ctx context.Context, tx *sql.Tx, orderID uuid.UUID, items []domain.NewOrderItem) error {
	existsQuery := r.db.Rebind(`SELECT 1 FROM products WHERE id = ?`)
	insertQuery := r.db.Rebind(`
		INSERT INTO order_items (order_id, product_id, quantity)
		VALUES (?, ?, ?)
	`)
	for _, item := range items {
		var one int
		err := tx.QueryRowContext(ctx, existsQuery, item.ProductID).Scan(&one)
		if err == sql.ErrNoRows {
			return &domain.ValidationError{
				Field:   "items",
				Message: fmt.Sprintf("product %d does not exist", item.ProductID),
			}
		}
		if err != nil {
			return fmt.Errorf("product lookup error: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, orderID, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("order item creation error: %w", err)
		}
	}
	return nil
}

const orderColumns = "id, user_id, status, created_at"

// Get loads the aggregate: the header plus its items joined with each
// referenced product's current name and price.
func (r *OrderRepository) Get(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	query := r.db.Rebind(`SELECT ` + orderColumns + ` FROM orders WHERE id = ?`)
	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&order.ID, &order.UserID, &order.Status, &order.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("order retrieval error: %w", err)
	}

	items, err := r.loadItems(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}
	return &order, nil
}

// List returns orders newest first. A nil userID returns every order;
// otherwise only the given owner's.
func (r *OrderRepository) List(ctx context.Context, userID *int64) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []interface{}
	if userID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("order listing error: %w", err)
	}
	defer func() { _ = rows.Close() }()

	orders := make([]*domain.Order, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("order scan error: %w", err)
		}
		order.Items = []domain.OrderItem{}
		orders = append(orders, &order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		if items, ok := itemsByOrder[order.ID]; ok {
			order.Items = items
		}
	}
	return orders, nil
}

// loadItems fetches the items of the given orders in one query, joined
// with the current product state.
func (r *OrderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderItem, error) {
	result := make(map[uuid.UUID][]domain.OrderItem)
	if len(orderIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(orderIDs))
	args := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := r.db.Rebind(`
		SELECT oi.id, oi.order_id, oi.product_id, p.name, p.price, oi.quantity
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY oi.id
	`)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("order items retrieval error: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.ProductPrice, &item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("order item scan error: %w", err)
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	return result, rows.Err()
}

// Delete removes the order; its items go with it through the cascade.
func (r *OrderRepository) Delete(ctx context.Context, orderID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM orders WHERE id = ?`), orderID)
	if err != nil {
		return fmt.Errorf("order delete error: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
