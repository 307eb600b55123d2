package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPushWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	hub.Start()

	// An offline user's event is consumed and dropped, never blocking.
	done := make(chan struct{})
	go func() {
		hub.Push(uuid.New(), "notification", map[string]string{"title": "hello"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Push blocked with no subscribers")
	}
	require.Equal(t, 0, hub.ConnectedUsers())
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub()
	hub.Start()

	client := &Client{hub: hub, userID: uuid.New(), send: make(chan Event, 1)}
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.ConnectedUsers() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Push(client.userID, "notification", "payload")
	select {
	case ev := <-client.send:
		require.Equal(t, "notification", ev.Event)
	case <-time.After(time.Second):
		t.Fatal("event never reached the client channel")
	}

	hub.unregister <- client
	require.Eventually(t, func() bool {
		return hub.ConnectedUsers() == 0
	}, time.Second, 10*time.Millisecond)
}
