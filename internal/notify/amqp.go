// AngelaMos | 2026
// amqp.go

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/reclutahq/recluta-backend/internal/config"
)

// AMQPDispatcher publishes events to a RabbitMQ topic exchange. Publishing
// is best-effort: failures are logged and swallowed so a broker outage can
// never fail the request that produced the event.
type AMQPDispatcher struct {
	conn     *amqp.Connection
	exchange string
	logger   *slog.Logger

	mu      sync.Mutex
	channel *amqp.Channel
}

func NewAMQPDispatcher(
	cfg config.AMQPConfig,
	logger *slog.Logger,
) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close() //nolint:errcheck // cleanup on setup failure
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()   //nolint:errcheck // cleanup on setup failure
		_ = conn.Close() //nolint:errcheck // cleanup on setup failure
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPDispatcher{
		conn:     conn,
		exchange: cfg.Exchange,
		logger:   logger,
		channel:  ch,
	}, nil
}

func (d *AMQPDispatcher) Notify(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		d.logger.Warn("notification marshal failed",
			"type", event.Type,
			"error", err,
		)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	err = d.channel.PublishWithContext(ctx,
		d.exchange,
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.At,
			Body:         body,
		},
	)
	if err != nil {
		d.logger.Warn("notification publish failed",
			"type", event.Type,
			"error", err,
		)
	}
}

func (d *AMQPDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.channel.Close(); err != nil {
		return fmt.Errorf("close channel: %w", err)
	}

	if err := d.conn.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}

	return nil
}
