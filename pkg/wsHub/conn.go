package ws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

const (
	// Outbound queue depth per connection. A full queue means the client
	// can't keep up; further broadcasts to it are dropped.
	sendQueueSize = 64

	writeWait  = 10 * time.Second
	pingPeriod = 50 * time.Second
)

var ErrConnClosed = errors.New("connection closed")

// Conn wraps a single websocket connection with a buffered outbound queue and
// a dedicated writer goroutine, so a slow or dead client never blocks a
// publisher. All writes go through the queue; the writer goroutine is the only
// thing touching the underlying socket for writes.
type Conn struct {
	conn   *websocket.Conn
	id     uuid.UUID
	userID uuid.UUID

	send    chan []byte
	doneCtx context.Context
	cancel  context.CancelFunc
}

func NewConn(ctx context.Context, id, userID uuid.UUID, conn *websocket.Conn) *Conn {
	ctx, cancel := context.WithCancel(ctx)

	c := &Conn{
		conn:    conn,
		id:      id,
		userID:  userID,
		send:    make(chan []byte, sendQueueSize),
		doneCtx: ctx,
		cancel:  cancel,
	}

	go c.writePump()

	return c
}

func (c *Conn) ID() uuid.UUID {
	return c.id
}

func (c *Conn) UserID() uuid.UUID {
	return c.userID
}

// Enqueue puts a message on the outbound queue without blocking. It reports
// false when the connection is gone or its queue is full; the caller decides
// whether that counts as a drop.
func (c *Conn) Enqueue(msg []byte) bool {
	select {
	case <-c.doneCtx.Done():
		return false
	default:
	}

	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// writePump drains the outbound queue onto the socket and keeps the
// connection alive with periodic pings. A failed write tears the
// connection down.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.doneCtx.Done():
			return

		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.cancel()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
				return
			}
		}
	}
}

// Listen blocks reading the socket until it fails or the connection is
// closed. Inbound payloads are handed to handler; a nil handler discards them.
func (c *Conn) Listen(handler func(msg []byte) error) error {
	for {
		select {
		case <-c.doneCtx.Done():
			return ErrConnClosed
		default:
			_, msg, err := c.conn.ReadMessage()
			if err != nil {
				return fmt.Errorf("read failed: %w", err)
			}
			if handler == nil {
				continue
			}
			if err := handler(msg); err != nil {
				return fmt.Errorf("handler failed: %w", err)
			}
		}
	}
}

func (c *Conn) Close() error {
	c.cancel()
	return c.conn.Close()
}
