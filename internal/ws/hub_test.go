package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearhelp/internal/config"
	"nearhelp/internal/domain"
)

func testHub(t *testing.T) (*Hub, *Registry, context.CancelFunc) {
	t.Helper()

	registry := NewRegistry()
	hub := NewHub(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		config.LiveConfig{SendBuffer: 4, PingInterval: time.Minute, ConnectionTimeout: time.Minute, MaxMessageSize: 4096},
		registry,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	return hub, registry, cancel
}

func attach(t *testing.T, hub *Hub, identity *domain.Identity) *Conn {
	t.Helper()

	conn := &Conn{
		id:       uuid.NewString(),
		hub:      hub,
		send:     make(chan []byte, hub.cfg.SendBuffer),
		identity: identity,
	}
	hub.register <- conn
	return conn
}

func TestHub_BroadcastReachesAllConnections(t *testing.T) {
	t.Parallel()

	hub, registry, _ := testHub(t)

	alice := domain.Identity{UserID: uuid.New()}
	c1 := attach(t, hub, &alice)
	c2 := attach(t, hub, nil)

	hub.Broadcast("incident.created", map[string]string{"id": "abc"})

	for _, conn := range []*Conn{c1, c2} {
		select {
		case raw := <-conn.send:
			var env Envelope
			require.NoError(t, json.Unmarshal(raw, &env))
			assert.Equal(t, "incident.created", env.Event)
			assert.NotZero(t, env.Timestamp)
		case <-time.After(time.Second):
			t.Fatal("broadcast not delivered")
		}
	}

	// Anonymous connections do not show up in presence.
	assert.Equal(t, 1, registry.CountActiveUsers())
}

func TestHub_UnregisterUpdatesPresence(t *testing.T) {
	t.Parallel()

	hub, registry, _ := testHub(t)

	alice := domain.Identity{UserID: uuid.New()}
	conn := attach(t, hub, &alice)

	require.Eventually(t, func() bool {
		return registry.CountActiveUsers() == 1
	}, time.Second, 10*time.Millisecond)

	hub.unregister <- conn

	require.Eventually(t, func() bool {
		return registry.CountActiveUsers() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestHub_SlowConsumerDropped(t *testing.T) {
	t.Parallel()

	hub, registry, _ := testHub(t)

	alice := domain.Identity{UserID: uuid.New()}
	conn := attach(t, hub, &alice)

	// Fill the send buffer without draining it.
	for i := 0; i < hub.cfg.SendBuffer+1; i++ {
		hub.Broadcast("metrics.updated", i)
	}

	require.Eventually(t, func() bool {
		return registry.CountActiveUsers() == 0
	}, time.Second, 10*time.Millisecond)

	// The hub closes the channel when it drops the connection.
	drained := false
	for !drained {
		select {
		case _, ok := <-conn.send:
			if !ok {
				drained = true
			}
		case <-time.After(time.Second):
			t.Fatal("send channel never closed")
		}
	}
}
