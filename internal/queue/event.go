// Package queue carries booking events over RabbitMQ: the payload type, a
// publisher used by the booking service, and a background consumer that
// appends every event to the booking log.
package queue

import (
    "time"

    "github.com/iliyamo/hotel-booking/internal/model"
)

// Queue names.  Each event type has its own durable queue on the default
// exchange; the routing key equals the queue name.
const (
    QueueBookingCreated   = "booking.created"
    QueueBookingConfirmed = "booking.confirmed"
    QueueBookingCancelled = "booking.cancelled"
)

// Queues lists every queue the consumer listens on.
var Queues = []string{QueueBookingCreated, QueueBookingConfirmed, QueueBookingCancelled}

// BookingEvent is published whenever a booking changes state.  It contains
// enough information for downstream consumers to log or notify without
// querying the primary database.
type BookingEvent struct {
    Type       string              `json:"type"`
    BookingID  string              `json:"booking_id"`
    UserID     string              `json:"user_id"`
    HotelID    string              `json:"hotel_id"`
    RoomID     string              `json:"room_id"`
    CheckIn    string              `json:"check_in"`
    CheckOut   string              `json:"check_out"`
    Guests     int                 `json:"guests"`
    TotalPrice string              `json:"total_price"`
    Status     model.BookingStatus `json:"status"`
    PaymentID  string              `json:"payment_id,omitempty"`
    OccurredAt string              `json:"occurred_at"`
}

// NewBookingEvent builds the payload of eventType for b.
func NewBookingEvent(eventType string, b model.Booking, at time.Time) BookingEvent {
    ev := BookingEvent{
        Type:       eventType,
        BookingID:  b.ID,
        UserID:     b.UserID,
        HotelID:    b.HotelID,
        RoomID:     b.RoomID,
        CheckIn:    b.CheckIn.UTC().Format("2006-01-02"),
        CheckOut:   b.CheckOut.UTC().Format("2006-01-02"),
        Guests:     b.Guests,
        TotalPrice: b.TotalPrice.StringFixed(2),
        Status:     b.Status,
        OccurredAt: at.UTC().Format(time.RFC3339),
    }
    if b.PaymentID != nil {
        ev.PaymentID = *b.PaymentID
    }
    return ev
}
