package messaging

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
)

type OrderEventType string

const (
	OrderCreatedEvent OrderEventType = "order.created"
	OrderUpdatedEvent OrderEventType = "order.updated"
	OrderDeletedEvent OrderEventType = "order.deleted"
)

// OrderEvent is the message published on every order mutation. It
// carries the total as computed at mutation time; consumers must not
// treat it as a frozen price.
type OrderEvent struct {
	ID         uuid.UUID       `json:"id"`
	Type       OrderEventType  `json:"type"`
	OrderID    uuid.UUID       `json:"order_id"`
	UserID     int64           `json:"user_id"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher emits order events. Publishing is advisory: callers log
// failures and carry on, the order mutation has already committed.
type Publisher interface {
	PublishOrderEvent(event OrderEvent) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(OrderEvent) error { return nil }

type RabbitMQPublisher struct {
	client *RabbitMQClient
}

func NewRabbitMQPublisher(client *RabbitMQClient) *RabbitMQPublisher {
	return &RabbitMQPublisher{client: client}
}

func (p *RabbitMQPublisher) PublishOrderEvent(event OrderEvent) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("no connection to RabbitMQ")
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event serialization error: %w", err)
	}

	routingKey := fmt.Sprintf("storefront.%s", event.Type)

	err = p.client.Channel().Publish(
		p.client.config.Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID.String(),
			Timestamp:    event.OccurredAt,
			Headers: amqp.Table{
				"order_id":   event.OrderID.String(),
				"user_id":    event.UserID,
				"event_type": string(event.Type),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("event publish error: %w", err)
	}

	log.Printf("Event published: %s -> %s", routingKey, event.OrderID)
	return nil
}
