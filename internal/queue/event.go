// Package queue defines message payloads exchanged over the message broker
// and the RabbitMQ publisher and consumer that carry them.
package queue

// Event types carried in BookingEvent.Type.
const (
	BookingCreated = "booking.created"
	BookingUpdated = "booking.updated"
)

// BookingQueue is the durable queue that booking events are routed to.
const BookingQueue = "booking.events"

// BookingEvent is published after a booking is created or updated.  It
// holds enough for downstream consumers to log or notify without querying
// the primary store.
type BookingEvent struct {
	Type       string  `json:"type"`
	BookingID  string  `json:"booking_id"`
	UserID     string  `json:"user_id"`
	RoomID     string  `json:"room_id"`
	Status     string  `json:"status"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	GuestCount int     `json:"guest_count"`
	TotalPrice float64 `json:"total_price"`
	OccurredAt string  `json:"occurred_at"`
}
