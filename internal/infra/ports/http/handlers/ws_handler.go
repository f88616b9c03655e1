package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/qrave1/meetspace/internal/application/config"
	"github.com/qrave1/meetspace/internal/application/constant"
	"github.com/qrave1/meetspace/internal/domain/events"
	"github.com/qrave1/meetspace/internal/infra/adapters/memory"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
	sendBuffer   = 64
)

// wsSubscriber wraps one websocket connection. Writes go through a buffered
// queue drained by a single writer goroutine, so a slow client fills its own
// queue instead of blocking a broadcast.
type wsSubscriber struct {
	id   uuid.UUID
	conn *websocket.Conn

	send chan any
	done chan struct{}
	once sync.Once
}

func newWSSubscriber(conn *websocket.Conn) *wsSubscriber {
	return &wsSubscriber{
		id:   uuid.New(),
		conn: conn,
		send: make(chan any, sendBuffer),
		done: make(chan struct{}),
	}
}

func (s *wsSubscriber) ID() uuid.UUID {
	return s.id
}

func (s *wsSubscriber) Send(v any) error {
	select {
	case <-s.done:
		return errors.New("subscriber closed")
	case s.send <- v:
		return nil
	default:
		return errors.New("send queue full")
	}
}

func (s *wsSubscriber) close() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *wsSubscriber) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return

		case v := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(v); err != nil {
				slog.Error("write to websocket", slog.Any(constant.Error, err))
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type WebSocketHandler struct {
	upgrader *websocket.Upgrader

	broadcaster memory.Broadcaster
}

func NewWebSocketHandler(cfg *config.Config, broadcaster memory.Broadcaster) *WebSocketHandler {
	return &WebSocketHandler{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if cfg.Debug {
					return true
				}

				return r.Header.Get("Origin") == cfg.Domain
			},
		},
		broadcaster: broadcaster,
	}
}

func (h *WebSocketHandler) Handle(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"WebSocket upgrade error",
			slog.Any(constant.Error, err),
		)
		return err
	}
	defer ws.Close()

	sub := newWSSubscriber(ws)

	// Disconnect must drop every subscription this connection holds.
	defer h.broadcaster.UnsubscribeAll(sub)
	defer sub.close()

	go sub.writePump()

	if err := ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return err
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		default:
			_, msg, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					slog.Error(
						"websocket read error",
						slog.Any(constant.Error, err),
					)
				}

				return nil
			}

			event := new(events.Message)

			// A malformed frame is the client's problem, not grounds to
			// drop its subscriptions.
			if err = json.Unmarshal(msg, &event); err != nil {
				slog.Error("unmarshal websocket message", slog.Any(constant.Error, err))

				continue
			}

			if err = h.handleMessage(sub, event); err != nil {
				slog.Error("handle websocket event", slog.Any(constant.Error, err))
			}
		}
	}
}

func (h *WebSocketHandler) handleMessage(sub *wsSubscriber, msg *events.Message) error {
	switch msg.Type {
	case "join":
		var joinEvent events.JoinEvent

		if err := json.Unmarshal(msg.Data, &joinEvent); err != nil {
			return fmt.Errorf("unmarshal join event: %w", err)
		}

		roomID, err := uuid.Parse(joinEvent.RoomID)
		if err != nil {
			return fmt.Errorf("parse room id: %w", err)
		}

		h.broadcaster.Subscribe(sub, roomID)

	case "leave":
		var leaveEvent events.LeaveEvent

		if err := json.Unmarshal(msg.Data, &leaveEvent); err != nil {
			return fmt.Errorf("unmarshal leave event: %w", err)
		}

		roomID, err := uuid.Parse(leaveEvent.RoomID)
		if err != nil {
			return fmt.Errorf("parse room id: %w", err)
		}

		h.broadcaster.Unsubscribe(sub, roomID)

	case "ping":
		// Application-level keepalive renews the read deadline the same
		// way a protocol pong does.
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))

	default:
		return errors.New("unknown message type")
	}

	return nil
}
