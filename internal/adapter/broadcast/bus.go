package broadcast

import (
	"context"
	"encoding/json"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/metrics"
	ws "github.com/saferide-app/saferide-go/pkg/wsHub"
)

// Envelope is the wire frame every subscriber receives. Origin carries the
// publishing instance id so relayed copies of our own events are not
// delivered twice.
type Envelope struct {
	Event  string          `json:"event"`
	Origin string          `json:"origin,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// Relay mirrors envelopes to other instances (RabbitMQ fanout). Optional.
type Relay interface {
	Publish(ctx context.Context, body []byte) error
}

// Bus fans typed events out to every live websocket connection.
// Publish is fire-and-forget: it returns before any subscriber has received
// anything and no delivery failure ever reaches the publishing request.
type Bus struct {
	hub    *ws.ConnectionHub
	relay  Relay
	origin string

	serviceName string
	log         logger.Logger
}

func New(serviceName, origin string, hub *ws.ConnectionHub, relay Relay, log logger.Logger) *Bus {
	return &Bus{
		hub:         hub,
		relay:       relay,
		origin:      origin,
		serviceName: serviceName,
		log:         log,
	}
}

func (b *Bus) Publish(ctx context.Context, ev models.BroadcastEvent) {
	ctx = wrap.WithAction(ctx, "broadcast_publish")

	data, err := json.Marshal(ev)
	if err != nil {
		b.log.Error(ctx, "failed to marshal broadcast event", err, "event", ev.EventName())
		return
	}

	body, err := json.Marshal(Envelope{
		Event:  ev.EventName(),
		Origin: b.origin,
		Data:   data,
	})
	if err != nil {
		b.log.Error(ctx, "failed to marshal broadcast envelope", err, "event", ev.EventName())
		return
	}

	metrics.BroadcastEventsTotal.WithLabelValues(b.serviceName, ev.EventName()).Inc()

	b.hub.Broadcast(body)

	if b.relay != nil {
		// Detached from the request lifecycle: the triggering request must
		// not wait on, or fail because of, the relay.
		go func() {
			relayCtx := context.WithoutCancel(ctx)
			if err := b.relay.Publish(relayCtx, body); err != nil {
				b.log.Warn(relayCtx, "failed to relay broadcast event", "event", ev.EventName(), "err", err.Error())
			}
		}()
	}
}

// Inject delivers an envelope relayed from another instance to local
// connections. Envelopes that originated here are skipped, keeping delivery
// at-most-once per connection.
func (b *Bus) Inject(body []byte) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		ctx := wrap.WithAction(context.Background(), "broadcast_inject")
		b.log.Warn(ctx, "dropping malformed relayed envelope", "err", err.Error())
		return
	}

	if env.Origin != "" && env.Origin == b.origin {
		return
	}

	b.hub.Broadcast(body)
}
