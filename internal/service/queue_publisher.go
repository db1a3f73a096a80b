// Package service publishes domain events to RabbitMQ. Publishing is
// best-effort: a reservation is committed whether or not the event makes it
// to the broker, so every error path here logs-and-returns instead of
// failing the request.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/campus-canteen-reservation/internal/queue"
)

// Publisher sends reservation events to the reservation.events queue. A
// zero URL yields a disabled publisher whose Publish is a silent no-op;
// handlers do not need to know whether eventing is configured.
type Publisher struct {
	url string
}

// NewPublisher returns a publisher for the given AMQP endpoint, or a
// disabled one when url is empty.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// Enabled reports whether events will actually be sent.
func (p *Publisher) Enabled() bool { return p.url != "" }

// Publish fills in the event id and timestamp and sends the event. The
// connection is dialled per call; event volume here is a handful per booking,
// not a firehose, and a fresh dial keeps the failure mode simple.
func (p *Publisher) Publish(ctx context.Context, ev queue.ReservationEvent) error {
	if p.url == "" {
		return nil
	}
	ev.EventID = uuid.NewString()
	ev.EmittedAt = time.Now().UTC().Format(time.RFC3339)

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable queue, declared idempotently so publisher and consumer can
	// start in either order.
	if _, err := ch.QueueDeclare("reservation.events", true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx,
		"",                   // default exchange
		"reservation.events", // routing key = queue name
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
