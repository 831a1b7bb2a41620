package notify

import (
	"testing"

	"github.com/cs23b1093/gigflow/internal/entity"
)

func TestHubDispatcher(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	c := hub.register("freelancer-1")
	defer hub.unregister("freelancer-1", c)
	owner := hub.register("client-1")
	defer hub.unregister("client-1", owner)

	dispatcher := NewHubDispatcher(hub)

	t.Run("hired", func(t *testing.T) {
		dispatcher.NotifyHired("freelancer-1", "Build a landing page", "Carla Client", 150)

		n := mustReceive(t, c.out)
		if n.Type != entity.NotificationHire {
			t.Fatalf("expected type %q, got %q", entity.NotificationHire, n.Type)
		}
		if n.Title != "Congratulations! You've been hired!" {
			t.Fatalf("unexpected title %q", n.Title)
		}
		if n.Data["bidAmount"] != float64(150) {
			t.Fatalf("expected bid amount in payload, got %v", n.Data["bidAmount"])
		}
	})

	t.Run("rejected", func(t *testing.T) {
		dispatcher.NotifyRejected("freelancer-1", "Build a landing page", "Another freelancer was hired")

		n := mustReceive(t, c.out)
		if n.Type != entity.NotificationBidRejected {
			t.Fatalf("expected type %q, got %q", entity.NotificationBidRejected, n.Type)
		}
		if n.Data["reason"] != "Another freelancer was hired" {
			t.Fatalf("expected rejection reason in payload, got %v", n.Data["reason"])
		}
	})

	t.Run("bid received", func(t *testing.T) {
		dispatcher.NotifyBidReceived("client-1", "Build a landing page", "Frank Freelancer", 150)

		n := mustReceive(t, owner.out)
		if n.Type != entity.NotificationBidReceived {
			t.Fatalf("expected type %q, got %q", entity.NotificationBidReceived, n.Type)
		}
		if n.Title != "New Bid Received" {
			t.Fatalf("unexpected title %q", n.Title)
		}
	})
}

func mustReceive(t *testing.T, out chan entity.Notification) entity.Notification {
	t.Helper()

	select {
	case n := <-out:
		return n
	default:
		t.Fatal("expected a queued notification")
		return entity.Notification{}
	}
}
