package notify

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cs23b1093/gigflow/internal/entity"

	"golang.org/x/net/websocket"
)

func TestHub_SendToOfflineUser(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	done := make(chan struct{})
	go func() {
		defer close(done)
		hub.Send("nobody", entity.Notification{Type: entity.NotificationHire})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a user with no connections")
	}
}

func TestHub_IsOnline(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	if hub.IsOnline("alice") {
		t.Fatal("expected alice to be offline")
	}

	first := hub.register("alice")
	second := hub.register("alice")
	if !hub.IsOnline("alice") {
		t.Fatal("expected alice to be online after register")
	}

	hub.unregister("alice", first)
	if !hub.IsOnline("alice") {
		t.Fatal("expected alice to stay online while a connection remains")
	}

	hub.unregister("alice", second)
	if hub.IsOnline("alice") {
		t.Fatal("expected alice to be offline after both connections closed")
	}
}

func TestHub_SendDropsWhenBufferFull(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	c := hub.register("bob")
	defer hub.unregister("bob", c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < sendBuffer+5; i++ {
			hub.Send("bob", entity.Notification{Type: entity.NotificationBidReceived})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a client that never drains its buffer")
	}

	if got := len(c.out); got != sendBuffer {
		t.Fatalf("expected buffer to hold %d notifications, got %d", sendBuffer, got)
	}
}

func TestHub_DeliversOverWebsocket(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	server := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		hub.HandleConnection("carol", ws)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	ws, err := websocket.Dial(url, "", server.URL)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	waitUntil(t, func() bool { return hub.IsOnline("carol") })

	sent := entity.Notification{
		Type:    entity.NotificationHire,
		Title:   "Congratulations! You've been hired!",
		Message: "You have been hired for: Build a landing page",
	}
	hub.Send("carol", sent)

	var received entity.Notification
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := websocket.JSON.Receive(ws, &received); err != nil {
		t.Fatalf("receive: %v", err)
	}

	if received.Type != sent.Type || received.Title != sent.Title {
		t.Fatalf("expected %+v, got %+v", sent, received)
	}

	ws.Close()
	waitUntil(t, func() bool { return !hub.IsOnline("carol") })
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("condition not met before deadline")
}
