// Package events publishes booking lifecycle events to a RabbitMQ topic
// exchange. The notification side of the wider system consumes them; the
// booking flow never depends on a publish succeeding.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys for booking lifecycle events.
const (
	KeyBookingCreated   = "booking.created"
	KeyBookingConfirmed = "booking.confirmed"
	KeyBookingCancelled = "booking.cancelled"
	KeyBookingCompleted = "booking.completed"
)

// BookingEvent is the payload published on every lifecycle transition.
type BookingEvent struct {
	BookingID        string    `json:"booking_id"`
	MatchID          int64     `json:"match_id"`
	User1ID          int64     `json:"user_1_id"`
	User2ID          int64     `json:"user_2_id"`
	Status           string    `json:"status"`
	VenueID          *int64    `json:"venue_id,omitempty"`
	BookingDate      *string   `json:"booking_date,omitempty"`
	BookingTime      *string   `json:"booking_time,omitempty"`
	ConfirmationCode *string   `json:"confirmation_code,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) Publish(ctx context.Context, key string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        b,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
