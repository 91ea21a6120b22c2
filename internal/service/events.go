package service

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/queue"
)

// EventPublisher delivers booking events.  *queue.Publisher implements it.
type EventPublisher interface {
	PublishBooking(ctx context.Context, ev queue.BookingEvent) error
}

// NopPublisher drops every event.  It is used when EVENTS_ENABLED is off.
type NopPublisher struct{}

func (NopPublisher) PublishBooking(context.Context, queue.BookingEvent) error { return nil }

const publishTimeout = 2 * time.Second

func bookingEvent(kind string, b *model.Booking) queue.BookingEvent {
	return queue.BookingEvent{
		Type:       kind,
		BookingID:  b.ID,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		Status:     b.Status,
		StartDate:  b.StartDate.Format(time.DateOnly),
		EndDate:    b.EndDate.Format(time.DateOnly),
		GuestCount: b.GuestCount,
		TotalPrice: b.TotalPrice,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// publish sends ev in the background.  The request has already succeeded,
// so failures are only logged.
func publish(p EventPublisher, ev queue.BookingEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.PublishBooking(ctx, ev); err != nil {
			log.Printf("booking: publish %s for %s failed: %v", ev.Type, ev.BookingID, err)
		}
	}()
}
