package models

// PushPayload is the queued body of a push notification task.
type PushPayload struct {
	UserID    string            `json:"userId"`
	BookingID string            `json:"bookingId,omitempty"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
}
