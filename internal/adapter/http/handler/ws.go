package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/uuid"
	ws "github.com/saferide-app/saferide-go/pkg/wsHub"
)

type WS struct {
	hub      *ws.ConnectionHub
	upgrader websocket.Upgrader
	l        logger.Logger
}

func NewWS(hub *ws.ConnectionHub, l logger.Logger) *WS {
	return &WS{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Mobile clients connect from app webviews with no stable origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		l: l,
	}
}

// Connect upgrades the request and parks the connection in the hub until the
// client goes away. The socket is push-only: inbound frames are read to keep
// pings flowing and then discarded.
func (h *WS) Connect(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_connect")
	user := models.UserFromContext(ctx)

	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to upgrade connection", err)
		return
	}

	connID, err := uuid.New()
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to generate connection id", err)
		socket.Close()
		return
	}

	conn := ws.NewConn(ctx, connID, user.ID, socket)

	if err := h.hub.Add(conn); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register connection", err)
		conn.Close()
		return
	}

	h.l.Debug(ctx, "websocket connected", "conn_id", connID.String())

	defer func() {
		if err := h.hub.Delete(connID); err != nil {
			h.l.Debug(ctx, "connection already removed", "conn_id", connID.String())
		}
		h.l.Debug(ctx, "websocket disconnected", "conn_id", connID.String())
	}()

	// Blocks until the read side fails (client closed, network gone).
	_ = conn.Listen(nil)
}
