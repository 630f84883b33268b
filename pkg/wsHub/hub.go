package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/metrics"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub хранит и управляет всеми активными WebSocket соединениями.
// Broadcast is at-most-once and never blocks: each connection drains its own
// queue, full queues drop.
type ConnectionHub struct {
	clients map[uuid.UUID]*Conn

	serviceName string
	l           logger.Logger
	mu          sync.Mutex
}

func NewConnHub(serviceName string, l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients:     make(map[uuid.UUID]*Conn),
		serviceName: serviceName,
		l:           l,
	}
}

// Add registers a new connection. Connections are keyed by connection id, not
// user id: one user may hold several live connections (phone + tablet).
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[newConn.id] = newConn
	metrics.WebSocketConnectionsGauge.WithLabelValues(h.serviceName).Set(float64(len(h.clients)))

	return nil
}

// Delete removes and closes a connection by id.
func (h *ConnectionHub) Delete(connID uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.clients[connID]
	if !ok {
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		ctx := wrap.WithAction(context.Background(), "ws_connection_delete")
		h.l.Warn(ctx, "failed to close conn", "conn_id", connID, "err", err.Error())
	}

	delete(h.clients, connID)
	metrics.WebSocketConnectionsGauge.WithLabelValues(h.serviceName).Set(float64(len(h.clients)))

	return nil
}

// Broadcast enqueues msg on every live connection. Fire-and-forget: the call
// never blocks on a subscriber, and a full or dead connection silently loses
// the message (counted, not surfaced). Per-connection order is preserved
// because each connection has a single writer.
func (h *ConnectionHub) Broadcast(msg []byte) (delivered, dropped int) {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.clients))
	for _, c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if c.Enqueue(msg) {
			delivered++
		} else {
			dropped++
		}
	}

	if dropped > 0 {
		metrics.BroadcastDroppedTotal.WithLabelValues(h.serviceName).Add(float64(dropped))
		ctx := wrap.WithAction(context.Background(), types.ActionBroadcastDropped)
		h.l.Debug(ctx, "broadcast dropped for slow subscribers", "dropped", dropped, "delivered", delivered)
	}

	return delivered, dropped
}

// Len returns the number of live connections.
func (h *ConnectionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close закрывает каждое websocket соединение.
func (h *ConnectionHub) Close() {
	h.mu.Lock()
	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()

	for _, conn := range clients {
		_ = h.Delete(conn.id)
	}

	ctx := wrap.WithAction(context.Background(), "hub_close")
	h.l.Info(ctx, "all websocket connections closed")
}
