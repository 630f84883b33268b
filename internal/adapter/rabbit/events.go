package rabbit

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/metrics"
	"github.com/saferide-app/saferide-go/pkg/rabbit"
)

// EventsExchange is the fanout exchange broadcast envelopes travel through
// when more than one instance serves websocket clients.
const EventsExchange = "saferide_events"

type EventProducer struct {
	client      *rabbit.RabbitMQ
	serviceName string
}

func NewEventProducer(client *rabbit.RabbitMQ, serviceName string) (*EventProducer, error) {
	if err := client.Channel.ExchangeDeclare(
		EventsExchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare events exchange: %w", err)
	}

	return &EventProducer{
		client:      client,
		serviceName: serviceName,
	}, nil
}

// Publish mirrors one broadcast envelope to the fanout exchange.
func (p *EventProducer) Publish(ctx context.Context, body []byte) error {
	const op = "EventProducer.Publish"

	if err := p.client.EnsureConnection(ctx); err != nil {
		metrics.RabbitMQMessagesPublished.WithLabelValues(p.serviceName, EventsExchange, "error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}

	err := p.client.Channel.PublishWithContext(
		ctx,
		EventsExchange,
		"",    // routing key: fanout ignores it
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		metrics.RabbitMQMessagesPublished.WithLabelValues(p.serviceName, EventsExchange, "error").Inc()
		return wrap.Error(ctx, fmt.Errorf("%s: failed to publish: %w", op, err))
	}

	metrics.RabbitMQMessagesPublished.WithLabelValues(p.serviceName, EventsExchange, "success").Inc()

	return nil
}

// EventSink receives envelopes relayed by other instances.
type EventSink interface {
	Inject(body []byte)
}

type EventConsumer struct {
	client      *rabbit.RabbitMQ
	sink        EventSink
	serviceName string
	log         logger.Logger
}

func NewEventConsumer(client *rabbit.RabbitMQ, sink EventSink, serviceName string, log logger.Logger) *EventConsumer {
	return &EventConsumer{
		client:      client,
		sink:        sink,
		serviceName: serviceName,
		log:         log,
	}
}

// Start binds an exclusive queue to the events exchange and feeds deliveries
// into the sink until ctx is cancelled.
func (c *EventConsumer) Start(ctx context.Context) error {
	queue, err := c.client.Channel.QueueDeclare(
		"",    // broker-named
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare events queue: %w", err)
	}

	if err := c.client.Channel.QueueBind(queue.Name, "", EventsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind events queue: %w", err)
	}

	deliveries, err := c.client.Channel.Consume(
		queue.Name,
		"",    // consumer tag
		true,  // auto-ack: broadcast is at-most-once anyway
		true,  // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming events: %w", err)
	}

	go func() {
		ctx := wrap.WithAction(ctx, "events_consumer")
		c.log.Info(ctx, "events consumer started", "queue", queue.Name)

		for {
			select {
			case <-ctx.Done():
				c.log.Debug(ctx, "events consumer stopped")
				return
			case d, ok := <-deliveries:
				if !ok {
					c.log.Warn(ctx, "events delivery channel closed")
					return
				}
				metrics.RabbitMQMessagesConsumed.WithLabelValues(c.serviceName, EventsExchange, "success").Inc()
				c.sink.Inject(d.Body)
			}
		}
	}()

	return nil
}
