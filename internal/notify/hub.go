package notify

import (
	"io"
	"log"
	"sync"

	"github.com/cs23b1093/gigflow/internal/entity"

	"golang.org/x/net/websocket"
)

const sendBuffer = 16

// Hub tracks the websocket connection of every online user and pushes
// notification events to them. A user with no connection is simply skipped.
type Hub struct {
	mu      sync.RWMutex
	clients map[string][]*client
}

type client struct {
	out chan entity.Notification
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string][]*client),
	}
}

// Send queues the notification for every open connection of the user.
// It never blocks: slow consumers lose messages rather than stall the caller.
func (h *Hub) Send(userId string, n entity.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients[userId] {
		select {
		case c.out <- n:
		default:
			log.Printf("notify: dropping %s notification for slow client of user %s", n.Type, userId)
		}
	}
}

// IsOnline reports whether the user has at least one open connection.
func (h *Hub) IsOnline(userId string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userId]) > 0
}

// HandleConnection serves one websocket connection until the peer closes it.
func (h *Hub) HandleConnection(userId string, ws *websocket.Conn) {
	c := h.register(userId)
	defer h.unregister(userId, c)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			var discard string
			if err := websocket.Message.Receive(ws, &discard); err != nil {
				if err != io.EOF {
					log.Printf("notify: receive from user %s: %v", userId, err)
				}
				return
			}
		}
	}()

	for {
		select {
		case n := <-c.out:
			if err := websocket.JSON.Send(ws, n); err != nil {
				log.Printf("notify: send to user %s: %v", userId, err)
				return
			}
		case <-closed:
			return
		}
	}
}

func (h *Hub) register(userId string) *client {
	c := &client{out: make(chan entity.Notification, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userId] = append(h.clients[userId], c)

	return c
}

func (h *Hub) unregister(userId string, target *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.clients[userId]
	for i, c := range conns {
		if c == target {
			h.clients[userId] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[userId]) == 0 {
		delete(h.clients, userId)
	}
}
