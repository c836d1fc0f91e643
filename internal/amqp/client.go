// Package amqp carries the record change feed between the server and the
// export worker over a direct exchange with one durable queue.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type Client struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	queue    string
}

// NewClient connects and declares the exchange, the queue and the binding.
// Declarations are idempotent, so server and worker can start in any order.
func NewClient(url, exchange, queue string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c := &Client{conn: conn, channel: channel, exchange: exchange, queue: queue}
	if err := c.declare(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) declare() error {
	if err := c.channel.ExchangeDeclare(c.exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", c.exchange, err)
	}
	if _, err := c.channel.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", c.queue, err)
	}
	// The queue name doubles as the routing key.
	if err := c.channel.QueueBind(c.queue, c.queue, c.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", c.queue, err)
	}
	return nil
}

// PublishRecordChange sends one change notification. Deliveries are
// persistent so a worker restart does not lose queued changes.
func (c *Client) PublishRecordChange(ctx context.Context, domain, id, action string) error {
	msg := NewRecordChangeMessage(domain, id, action)
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid change message: %w", err)
	}
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(ctx, c.exchange, c.queue, false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.InfoContext(ctx, "Published record change",
		"domain", domain, "id", id, "action", action, "queue", c.queue)
	return nil
}

// ConsumeChanges delivers messages to the handler until the context is
// done. Malformed messages are dropped without requeue; handler failures
// requeue for another attempt.
func (c *Client) ConsumeChanges(ctx context.Context, handler func(*RecordChangeMessage) error) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}
	slog.InfoContext(ctx, "Consuming record changes", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping consumer", "reason", ctx.Err())
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.dispatch(ctx, d, handler)
		}
	}
}

func (c *Client) dispatch(ctx context.Context, d amqp091.Delivery, handler func(*RecordChangeMessage) error) {
	msg, err := RecordChangeMessageFromJSON(d.Body)
	if err != nil {
		slog.ErrorContext(ctx, "Dropping malformed change message", "error", err)
		d.Nack(false, false)
		return
	}
	if err := handler(msg); err != nil {
		slog.ErrorContext(ctx, "Change handler failed, requeueing",
			"error", err, "domain", msg.Domain, "id", msg.ID, "action", msg.Action)
		d.Nack(false, true)
		return
	}
	d.Ack(false)
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
