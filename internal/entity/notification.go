package entity

// Notification is the payload pushed over the realtime channel.
// Delivery is best-effort: offline recipients are skipped.
type Notification struct {
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp string         `json:"timestamp"`
}

const (
	NotificationHire        = "hire"
	NotificationBidReceived = "bid_received"
	NotificationBidRejected = "bid_rejected"
)
