package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus validates a status string coming off the wire.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", validationErrorf("status", "unknown order status %q", s)
}

// Order is the aggregate root: a header plus the line items it owns.
// Items carry the referenced product's current name and price as loaded
// at read time; totals are always derived from those live values.
type Order struct {
	ID        uuid.UUID   `json:"order_id"`
	UserID    int64       `json:"user_id"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// OrderItem is one line of an order. It references a product but does
// not own it; ProductName and ProductPrice are the product's state at
// the moment the aggregate was loaded.
type OrderItem struct {
	ID           int64           `json:"-"`
	OrderID      uuid.UUID       `json:"-"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int64           `json:"quantity"`
}

// NewOrder builds an order header with a generated ID. Items are
// persisted separately inside the same transaction.
func NewOrder(userID int64, status OrderStatus) *Order {
	if status == "" {
		status = OrderStatusPending
	}
	return &Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

// NewOrderItem is the write-side shape of a line item: a product
// reference and a quantity, nothing else.
type NewOrderItem struct {
	ProductID int64
	Quantity  int64
}

// ValidateItems checks the write-side line items: at least one item
// when required, and a positive quantity on each.
func ValidateItems(items []NewOrderItem, requireNonEmpty bool) error {
	if requireNonEmpty && len(items) == 0 {
		return validationErrorf("items", "at least one item is required")
	}
	for i, item := range items {
		if item.ProductID <= 0 {
			return validationErrorf("items", "item %d has an invalid product reference", i)
		}
		if item.Quantity <= 0 {
			return validationErrorf("items", "item %d quantity must be positive, got %d", i, item.Quantity)
		}
	}
	return nil
}

// CreateOrderRequest is the write payload for a new order. The owner is
// always the authenticated actor, never part of the payload.
type CreateOrderRequest struct {
	Status string             `json:"status" validate:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int64 `json:"quantity" validate:"required,min=1"`
}

// UpdateOrderRequest patches an order. Nil fields are left untouched;
// a present Items slice replaces the whole item collection, even when
// empty.
type UpdateOrderRequest struct {
	Status *string             `json:"status" validate:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	Items  *[]OrderItemRequest `json:"items" validate:"omitempty,dive"`
}

// ToNewItems converts wire items to the write-side shape.
func ToNewItems(items []OrderItemRequest) []NewOrderItem {
	out := make([]NewOrderItem, len(items))
	for i, item := range items {
		out[i] = NewOrderItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return out
}
