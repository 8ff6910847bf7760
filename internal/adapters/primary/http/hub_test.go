package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

func sessionEvent(state entities.SessionState) ports.UpdateEvent {
	return ports.UpdateEvent{
		Type:      "session",
		Timestamp: time.Now(),
		Session:   &entities.SessionSnapshot{State: state},
	}
}

func TestHub_BroadcastReachesAllConnections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	a := &Connection{ID: "a", Send: make(chan ports.UpdateEvent, 1)}
	b := &Connection{ID: "b", Send: make(chan ports.UpdateEvent, 1)}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(sessionEvent(entities.StateUploading))

	for _, conn := range []*Connection{a, b} {
		select {
		case event := <-conn.Send:
			require.NotNil(t, event.Session)
			assert.Equal(t, entities.StateUploading, event.Session.State)
		case <-time.After(time.Second):
			t.Fatalf("connection %s did not receive the event", conn.ID)
		}
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	conn := &Connection{ID: "a", Send: make(chan ports.UpdateEvent, 1)}
	hub.Register(conn)
	hub.Unregister("a")

	select {
	case _, open := <-conn.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHub_SlowConnectionIsDropped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	// A full send buffer simulates a stalled client. The first broadcast
	// fills it, the second overflows it and drops the connection. The
	// third broadcast, observed on the sentinel, proves the second one
	// finished.
	slow := &Connection{ID: "slow", Send: make(chan ports.UpdateEvent, 1)}
	sentinel := &Connection{ID: "sentinel", Send: make(chan ports.UpdateEvent, 3)}
	hub.Register(slow)
	hub.Register(sentinel)

	hub.Broadcast(sessionEvent(entities.StateUploading))
	hub.Broadcast(sessionEvent(entities.StateProcessing))
	hub.Broadcast(sessionEvent(entities.StateReady))

	for i := 0; i < 3; i++ {
		select {
		case <-sentinel.Send:
		case <-time.After(time.Second):
			t.Fatal("sentinel did not receive the event")
		}
	}

	_, open := <-slow.Send
	require.True(t, open)
	_, open = <-slow.Send
	assert.False(t, open)
}

func TestHub_BroadcastAfterShutdownDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)
	cancel()

	// Wait for the run loop to observe cancellation.
	select {
	case <-hub.done:
	case <-time.After(time.Second):
		t.Fatal("hub did not shut down")
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			hub.Broadcast(sessionEvent(entities.StateReady))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked after shutdown")
	}
}
