package messaging

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

type Config struct {
	URL        string
	Exchange   string
	RetryCount int
	RetryDelay time.Duration
}

// RabbitMQClient owns the connection and channel used by the publisher.
type RabbitMQClient struct {
	config    Config
	conn      *amqp.Connection
	channel   *amqp.Channel
	mu        sync.RWMutex
	isClosing bool
}

func NewRabbitMQClient(config Config) *RabbitMQClient {
	if config.RetryCount <= 0 {
		config.RetryCount = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 5 * time.Second
	}
	return &RabbitMQClient{config: config}
}

// Connect dials the broker, opens a channel and declares the durable
// topic exchange, retrying on failure.
func (r *RabbitMQClient) Connect() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for i := 0; i < r.config.RetryCount; i++ {
		r.conn, err = amqp.Dial(r.config.URL)
		if err != nil {
			log.Printf("RabbitMQ connection error (attempt %d/%d): %v", i+1, r.config.RetryCount, err)
			if i < r.config.RetryCount-1 {
				time.Sleep(r.config.RetryDelay)
				continue
			}
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}

		r.channel, err = r.conn.Channel()
		if err != nil {
			_ = r.conn.Close()
			return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
		}

		err = r.channel.ExchangeDeclare(
			r.config.Exchange, // name
			"topic",           // type
			true,              // durable
			false,             // auto-deleted
			false,             // internal
			false,             // no-wait
			nil,               // arguments
		)
		if err != nil {
			_ = r.channel.Close()
			_ = r.conn.Close()
			return fmt.Errorf("failed to declare exchange: %w", err)
		}

		log.Printf("Connected to RabbitMQ, exchange %q", r.config.Exchange)

		go r.handleReconnection()
		return nil
	}
	return err
}

func (r *RabbitMQClient) handleReconnection() {
	notifyClose := make(chan *amqp.Error)
	r.conn.NotifyClose(notifyClose)

	if err := <-notifyClose; err != nil && !r.isClosing {
		log.Printf("RabbitMQ connection lost: %v. Reconnecting...", err)
		time.Sleep(2 * time.Second)
		if reconnectErr := r.Connect(); reconnectErr != nil {
			log.Printf("RabbitMQ reconnect error: %v", reconnectErr)
		}
	}
}

func (r *RabbitMQClient) Channel() *amqp.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channel
}

func (r *RabbitMQClient) IsConnected() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conn != nil && !r.conn.IsClosed()
}

func (r *RabbitMQClient) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isClosing {
		return nil
	}
	r.isClosing = true

	var closeErr error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			closeErr = fmt.Errorf("channel close error: %w", err)
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; connection close error: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("connection close error: %w", err)
			}
		}
	}
	return closeErr
}
