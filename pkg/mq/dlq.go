package mq

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

const DLQExchangeName = "wbs.events.dlq"

// DeclareDLQ declares the dead letter exchange and a queue for routingKey.
func DeclareDLQ(ch *amqp091.Channel, routingKey string) error {
	if err := ch.ExchangeDeclare(DLQExchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLQ exchange: %w", err)
	}
	q, err := ch.QueueDeclare(routingKey+".dlq", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare DLQ queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, routingKey, DLQExchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind DLQ queue: %w", err)
	}
	return nil
}

// PublishToDLQ parks a message that exhausted its retries.
func (p *Publisher) PublishToDLQ(ctx context.Context, routingKey string, payload []byte, originalError string) error {
	return p.publish(ctx, DLQExchangeName, routingKey, payload, amqp091.Table{
		"x-original-error": originalError,
		"x-failed-at":      "wbs-worker",
	})
}
