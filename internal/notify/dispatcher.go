package notify

import (
	"fmt"
	"time"

	"github.com/cs23b1093/gigflow/internal/entity"
)

// Dispatcher hands marketplace events to their recipients. Every call is
// fire-and-forget: delivery failures never propagate to the caller, so the
// hire transaction's outcome cannot depend on the notification layer.
type Dispatcher interface {
	NotifyHired(freelancerId, gigTitle, clientName string, amount float64)
	NotifyRejected(freelancerId, gigTitle, reason string)
	NotifyBidReceived(gigOwnerId, gigTitle, freelancerName string, amount float64)
}

// HubDispatcher delivers notifications over the websocket hub.
type HubDispatcher struct {
	hub *Hub
}

func NewHubDispatcher(hub *Hub) *HubDispatcher {
	return &HubDispatcher{hub: hub}
}

func (d *HubDispatcher) NotifyHired(freelancerId, gigTitle, clientName string, amount float64) {
	d.hub.Send(freelancerId, entity.Notification{
		Type:    entity.NotificationHire,
		Title:   "Congratulations! You've been hired!",
		Message: fmt.Sprintf("You have been hired for %q!", gigTitle),
		Data: map[string]any{
			"projectName": gigTitle,
			"clientName":  clientName,
			"bidAmount":   amount,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (d *HubDispatcher) NotifyRejected(freelancerId, gigTitle, reason string) {
	d.hub.Send(freelancerId, entity.Notification{
		Type:    entity.NotificationBidRejected,
		Title:   "Bid Update",
		Message: fmt.Sprintf("Your bid for %q was not selected", gigTitle),
		Data: map[string]any{
			"projectName": gigTitle,
			"reason":      reason,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (d *HubDispatcher) NotifyBidReceived(gigOwnerId, gigTitle, freelancerName string, amount float64) {
	d.hub.Send(gigOwnerId, entity.Notification{
		Type:    entity.NotificationBidReceived,
		Title:   "New Bid Received",
		Message: fmt.Sprintf("%s placed a bid of $%.2f on %q", freelancerName, amount, gigTitle),
		Data: map[string]any{
			"projectName":    gigTitle,
			"freelancerName": freelancerName,
			"bidAmount":      amount,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
