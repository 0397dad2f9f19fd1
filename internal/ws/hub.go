package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"nearhelp/internal/config"
)

// Envelope is the frame pushed to every live client.
type Envelope struct {
	Event     string `json:"event"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Hub owns the live connection set. Register, unregister and broadcast all
// go through the run loop, so the conns map is never touched concurrently.
type Hub struct {
	logger   *slog.Logger
	cfg      config.LiveConfig
	presence *Registry

	conns      map[*Conn]struct{}
	register   chan *Conn
	unregister chan *Conn
	broadcast  chan []byte
}

func NewHub(logger *slog.Logger, cfg config.LiveConfig, presence *Registry) *Hub {
	return &Hub{
		logger:     logger,
		cfg:        cfg,
		presence:   presence,
		conns:      make(map[*Conn]struct{}),
		register:   make(chan *Conn),
		unregister: make(chan *Conn),
		broadcast:  make(chan []byte, 256),
	}
}

func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("ws hub STARTED")

	for {
		select {
		case <-ctx.Done():
			for conn := range h.conns {
				h.drop(conn)
			}
			h.logger.Info("ws hub STOPPED", slog.String("reason", ctx.Err().Error()))
			return

		case conn := <-h.register:
			h.conns[conn] = struct{}{}
			if conn.identity != nil {
				h.presence.Connect(conn.identity.UserID)
			}
			h.logger.Info("ws connected",
				slog.String("conn_id", conn.id),
				slog.Bool("anonymous", conn.identity == nil),
				slog.Int("connections", len(h.conns)))

		case conn := <-h.unregister:
			if _, ok := h.conns[conn]; ok {
				h.drop(conn)
				h.logger.Info("ws disconnected",
					slog.String("conn_id", conn.id),
					slog.Int("connections", len(h.conns)))
			}

		case msg := <-h.broadcast:
			for conn := range h.conns {
				select {
				case conn.send <- msg:
				default:
					// Slow consumer, drop the connection instead of
					// blocking the fan-out.
					h.drop(conn)
					h.logger.Warn("ws send buffer full, dropping connection",
						slog.String("conn_id", conn.id))
				}
			}
		}
	}
}

// Broadcast serializes an event envelope and queues it to every live
// connection. Marshal failures are logged and the event is skipped.
func (h *Hub) Broadcast(event string, payload any) {
	msg, err := json.Marshal(Envelope{
		Event:     event,
		Data:      payload,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		h.logger.Error("ws envelope marshal failed",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("ws broadcast queue full, event dropped", slog.String("event", event))
	}
}

func (h *Hub) drop(conn *Conn) {
	delete(h.conns, conn)
	if conn.identity != nil {
		h.presence.Disconnect(conn.identity.UserID)
	}
	close(conn.send)
}
