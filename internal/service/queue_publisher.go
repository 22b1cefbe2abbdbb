// Package queue_publisher publishes listing events to RabbitMQ. The
// event feed is best-effort: errors are logged and returned, and
// callers on the request path ignore them so a broker outage never
// blocks a listing.
package queue_publisher

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	q "github.com/gigboard/gigboard/internal/queue"
)

// PublishShowListed publishes a show.listed event.
func PublishShowListed(ctx context.Context, ev q.ShowListedEvent) error {
	ev.Type = "show.listed"
	return publish(ctx, ev)
}

// PublishVenueRemoved publishes a venue.removed event.
func PublishVenueRemoved(ctx context.Context, ev q.VenueRemovedEvent) error {
	ev.Type = "venue.removed"
	return publish(ctx, ev)
}

// publish opens a short-lived connection, declares the durable queue
// (idempotent) and sends one persistent JSON message.
func publish(ctx context.Context, event any) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(q.ListingQueueName, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.ListingQueueName, false, false, pub); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
