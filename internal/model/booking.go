package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// BookingStatus is the state of a booking.
//
//  pending   → confirmed (payment succeeded) | cancelled
//  confirmed → cancelled | completed
type BookingStatus string

const (
    BookingPending   BookingStatus = "pending"
    BookingConfirmed BookingStatus = "confirmed"
    BookingCancelled BookingStatus = "cancelled"
    BookingCompleted BookingStatus = "completed"
)

// Booking records a user's stay in a room.  TotalPrice is fixed at creation
// from the room's nightly price.
type Booking struct {
    ID         string          `json:"id"`                  // bookings.id
    UserID     string          `json:"userId"`              // bookings.user_id
    RoomID     string          `json:"roomId"`              // bookings.room_id
    HotelID    string          `json:"hotelId"`             // bookings.hotel_id
    CheckIn    time.Time       `json:"checkIn"`             // bookings.check_in
    CheckOut   time.Time       `json:"checkOut"`            // bookings.check_out
    Guests     int             `json:"guests"`              // bookings.guests
    TotalPrice decimal.Decimal `json:"totalPrice"`          // bookings.total_price
    Status     BookingStatus   `json:"status"`              // bookings.status
    PaymentID  *string         `json:"paymentId,omitempty"` // bookings.payment_id (nullable)
    CreatedAt  time.Time       `json:"createdAt"`           // bookings.created_at
    UpdatedAt  time.Time       `json:"updatedAt"`           // bookings.updated_at
}

// CreateBookingInput is the body of POST /v1/bookings.
type CreateBookingInput struct {
    RoomID   string    `json:"roomId"`
    CheckIn  time.Time `json:"checkIn"`
    CheckOut time.Time `json:"checkOut"`
    Guests   int       `json:"guests"`
}
