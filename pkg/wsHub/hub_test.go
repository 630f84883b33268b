package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saferide-app/saferide-go/pkg/logger"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

// dialTestConn upgrades one connection on a throwaway server and returns both
// ends: the hub-side *Conn and the client-side socket.
func dialTestConn(t *testing.T, hub *ConnectionHub) (*Conn, *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverConn := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverConn <- c
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	connID, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	userID, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}

	conn := NewConn(context.Background(), connID, userID, <-serverConn)
	if err := hub.Add(conn); err != nil {
		t.Fatalf("hub.Add: %v", err)
	}
	t.Cleanup(func() { _ = hub.Delete(conn.ID()) })

	return conn, client
}

func readWithDeadline(t *testing.T, c *websocket.Conn) []byte {
	t.Helper()
	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := c.ReadMessage()
	if err != nil {
		t.Fatalf("client read: %v", err)
	}
	return msg
}

func TestHub_BroadcastReachesAllConnections(t *testing.T) {
	hub := NewConnHub("test", logger.InitLogger("test", logger.LevelError))

	_, clientA := dialTestConn(t, hub)
	_, clientB := dialTestConn(t, hub)

	delivered, dropped := hub.Broadcast([]byte(`{"event":"emergency_alert"}`))
	if delivered != 2 || dropped != 0 {
		t.Fatalf("delivered=%d dropped=%d, want 2/0", delivered, dropped)
	}

	for _, client := range []*websocket.Conn{clientA, clientB} {
		got := string(readWithDeadline(t, client))
		if got != `{"event":"emergency_alert"}` {
			t.Errorf("client got %q", got)
		}
	}
}

func TestHub_BroadcastPreservesOrderPerConnection(t *testing.T) {
	hub := NewConnHub("test", logger.InitLogger("test", logger.LevelError))

	_, client := dialTestConn(t, hub)

	hub.Broadcast([]byte("first"))
	hub.Broadcast([]byte("second"))
	hub.Broadcast([]byte("third"))

	for _, want := range []string{"first", "second", "third"} {
		if got := string(readWithDeadline(t, client)); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestHub_BroadcastDropsClosedConnection(t *testing.T) {
	hub := NewConnHub("test", logger.InitLogger("test", logger.LevelError))

	conn, _ := dialTestConn(t, hub)
	live, _ := dialTestConn(t, hub)

	// closed connection must be counted as a drop, never block the publisher
	_ = conn.Close()

	done := make(chan struct{})
	var delivered, dropped int
	go func() {
		delivered, dropped = hub.Broadcast([]byte("after close"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a closed connection")
	}

	if delivered != 1 || dropped != 1 {
		t.Fatalf("delivered=%d dropped=%d, want 1/1", delivered, dropped)
	}

	_ = live // keeps the second connection referenced until test end
}

func TestHub_AddNilConn(t *testing.T) {
	hub := NewConnHub("test", logger.InitLogger("test", logger.LevelError))
	if err := hub.Add(nil); err != ErrEmptyConn {
		t.Fatalf("expected ErrEmptyConn, got %v", err)
	}
}

func TestHub_DeleteUnknown(t *testing.T) {
	hub := NewConnHub("test", logger.InitLogger("test", logger.LevelError))
	id, _ := uuid.New()
	if err := hub.Delete(id); err != ErrConnIsNotFound {
		t.Fatalf("expected ErrConnIsNotFound, got %v", err)
	}
}
