package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Publisher sends domain events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// amqpChannel is the part of *amqp.Channel used for publishing.
type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpPublisher struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
	mu       sync.Mutex
	log      *zap.Logger
}

// NewAMQPPublisher dials the broker and declares a durable fanout exchange.
func NewAMQPPublisher(url, exchange string, log *zap.Logger) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	log.Info("Connected to message broker", zap.String("exchange", exchange))
	return newAMQPPublisher(conn, ch, exchange, log), nil
}

func newAMQPPublisher(conn *amqp.Connection, ch amqpChannel, exchange string, log *zap.Logger) *amqpPublisher {
	return &amqpPublisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		log:      log.With(zap.String("component", "broker")),
	}
}

func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", routingKey, err)
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         routingKey,
		Body:         body,
	}

	p.mu.Lock()
	err = p.ch.Publish(p.exchange, routingKey, false, false, msg)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.Debug("Event published", zap.String("routing_key", routingKey), zap.String("message_id", msg.MessageId))
	return nil
}

func (p *amqpPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type nopPublisher struct {
	log *zap.Logger
}

// NewNopPublisher drops every event. Used when no broker is configured.
func NewNopPublisher(log *zap.Logger) Publisher {
	return &nopPublisher{log: log.With(zap.String("component", "broker"))}
}

func (p *nopPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.log.Debug("Event dropped, no broker configured", zap.String("routing_key", routingKey))
	return nil
}

func (p *nopPublisher) Close() error { return nil }
