package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
	"github.com/simple-ecommerce/storefront-service/internal/messaging"
	"github.com/simple-ecommerce/storefront-service/internal/repository"
)

// OrderService owns the order lifecycle and the ownership policy:
// non-staff actors only ever see and touch their own orders.
type OrderService struct {
	orders    *repository.OrderRepository
	publisher messaging.Publisher
}

func NewOrderService(orders *repository.OrderRepository, publisher messaging.Publisher) *OrderService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &OrderService{orders: orders, publisher: publisher}
}

// CreateOrder creates the order and its items atomically. The actor is
// always the owner.
func (s *OrderService) CreateOrder(ctx context.Context, actor *domain.User, request domain.CreateOrderRequest) (*domain.Order, error) {
	status := domain.OrderStatusPending
	if request.Status != "" {
		parsed, err := domain.ParseOrderStatus(request.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	items := domain.ToNewItems(request.Items)
	if err := domain.ValidateItems(items, true); err != nil {
		return nil, err
	}

	order := domain.NewOrder(actor.ID, status)
	if err := s.orders.Create(ctx, order, items); err != nil {
		return nil, err
	}

	created, err := s.orders.Get(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("order reload error: %w", err)
	}

	log.Printf("Order created: OrderID=%s, UserID=%d, Total=%s",
		created.ID, created.UserID, created.Total())
	s.publish(messaging.OrderCreatedEvent, created)
	return created, nil
}

// GetOrder loads an order, enforcing ownership for non-staff actors.
func (s *OrderService) GetOrder(ctx context.Context, actor *domain.User, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff && order.UserID != actor.ID {
		return nil, domain.ErrPermissionDenied
	}
	return order, nil
}

// ListOrders returns every order for staff actors, and only the actor's
// own orders otherwise.
func (s *OrderService) ListOrders(ctx context.Context, actor *domain.User) ([]*domain.Order, error) {
	if actor.IsStaff {
		return s.orders.List(ctx, nil)
	}
	return s.orders.List(ctx, &actor.ID)
}

// MyOrders always scopes to the actor, staff included.
func (s *OrderService) MyOrders(ctx context.Context, actor *domain.User) ([]*domain.Order, error) {
	return s.orders.List(ctx, &actor.ID)
}

// UpdateOrder patches the status and, when the request carries an items
// list, replaces the whole item collection in the same transaction.
func (s *OrderService) UpdateOrder(ctx context.Context, actor *domain.User, orderID uuid.UUID, request domain.UpdateOrderRequest) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff && order.UserID != actor.ID {
		return nil, domain.ErrPermissionDenied
	}

	var status *domain.OrderStatus
	if request.Status != nil {
		parsed, err := domain.ParseOrderStatus(*request.Status)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}

	var items *[]domain.NewOrderItem
	if request.Items != nil {
		converted := domain.ToNewItems(*request.Items)
		if err := domain.ValidateItems(converted, false); err != nil {
			return nil, err
		}
		items = &converted
	}

	if err := s.orders.Update(ctx, orderID, status, items); err != nil {
		return nil, err
	}

	updated, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order reload error: %w", err)
	}

	log.Printf("Order updated: OrderID=%s, Status=%s", updated.ID, updated.Status)
	s.publish(messaging.OrderUpdatedEvent, updated)
	return updated, nil
}

// DeleteOrder removes the order and its items.
func (s *OrderService) DeleteOrder(ctx context.Context, actor *domain.User, orderID uuid.UUID) error {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !actor.IsStaff && order.UserID != actor.ID {
		return domain.ErrPermissionDenied
	}

	if err := s.orders.Delete(ctx, orderID); err != nil {
		return err
	}

	log.Printf("Order deleted: OrderID=%s", orderID)
	s.publish(messaging.OrderDeletedEvent, order)
	return nil
}

func (s *OrderService) publish(eventType messaging.OrderEventType, order *domain.Order) {
	event := messaging.OrderEvent{
		Type:    eventType,
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  string(order.Status),
		Total:   order.Total(),
	}
	if err := s.publisher.PublishOrderEvent(event); err != nil {
		log.Printf("Order event publish error: %v", err)
	}
}
