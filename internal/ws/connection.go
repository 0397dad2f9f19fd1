package ws

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"nearhelp/internal/domain"

	"github.com/gorilla/websocket"
)

// Authenticator resolves a raw bearer token into a caller identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

type Conn struct {
	id       string
	hub      *Hub
	ws       *websocket.Conn
	send     chan []byte
	identity *domain.Identity
}

// Handler upgrades the request and attaches the connection to the hub.
// A missing or invalid token degrades to an anonymous read-only
// connection rather than rejecting the upgrade.
func Handler(hub *Hub, auth Authenticator) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var identity *domain.Identity
		if token := bearerToken(r); token != "" {
			if id, err := auth.Authenticate(r.Context(), token); err == nil {
				identity = &id
			}
		}

		wsConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Error("ws upgrade failed", slog.Any("error", err))
			return
		}

		conn := &Conn{
			id:       fmt.Sprintf("conn_%d", time.Now().UnixNano()),
			hub:      hub,
			ws:       wsConn,
			send:     make(chan []byte, hub.cfg.SendBuffer),
			identity: identity,
		}

		hub.register <- conn

		go conn.writePump()
		go conn.readPump()
	}
}

func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

// readPump discards client frames; the channel is push-only. It exists to
// run the pong handler and to notice the peer going away.
func (c *Conn) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.ws.Close()
	}()

	c.ws.SetReadLimit(c.hub.cfg.MaxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.hub.cfg.ConnectionTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.hub.cfg.ConnectionTimeout))
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("ws read error", slog.String("conn_id", c.id), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(c.hub.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
