package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// BookingStore is implemented by repository.BookingRepo.  Create fails
// with repository.ErrRoomUnavailable on overlapping dates; UpdateStatus
// fails with repository.ErrConflict when the booking is not in one of the
// from states.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id string, next model.BookingStatus, paymentID *string, from ...model.BookingStatus) (*model.Booking, error)
}

// BookingService creates and transitions bookings and publishes an event
// for each change.  Publish failures are logged, never returned.
type BookingService struct {
	bookings BookingStore
	rooms    RoomStore
	events   EventPublisher
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(bookings BookingStore, rooms RoomStore, events EventPublisher, log *zap.Logger) *BookingService {
	return &BookingService{bookings: bookings, rooms: rooms, events: events, log: log, now: time.Now}
}

// Nights counts the nights between check-in and check-out, rounding a
// partial day up.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d < 0 {
		d = -d
	}
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		n++
	}
	return n
}

func (s *BookingService) Create(ctx context.Context, c Caller, in model.CreateBookingInput) (*model.Booking, error) {
	if in.RoomID == "" {
		return nil, validationError("roomId is required")
	}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return nil, validationError("checkIn and checkOut are required")
	}
	checkIn, checkOut := in.CheckIn.UTC(), in.CheckOut.UTC()
	if !checkIn.Before(checkOut) {
		return nil, validationError("checkOut must be after checkIn")
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	if checkIn.Truncate(24 * time.Hour).Before(today) {
		return nil, validationError("checkIn cannot be in the past")
	}

	rm, err := s.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, roomStoreError(err)
	}
	if !rm.IsAvailable {
		return nil, conflictError("room is not available")
	}
	if in.Guests < 1 || in.Guests > rm.Capacity {
		return nil, validationError("guests must be between 1 and %d", rm.Capacity)
	}

	nights := Nights(checkIn, checkOut)
	b := &model.Booking{
		UserID:     c.ID,
		RoomID:     rm.ID,
		HotelID:    rm.HotelID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     in.Guests,
		TotalPrice: rm.PricePerNight.Mul(decimal.NewFromInt(int64(nights))),
		Status:     model.BookingPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomUnavailable):
			return nil, conflictError("room is not available for the selected dates")
		case errors.Is(err, repository.ErrRoomNotFound):
			return nil, notFoundError("room not found")
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.publish(ctx, queue.QueueBookingCreated, *b)
	return b, nil
}

// List returns every booking to admins and the caller's own otherwise.
func (s *BookingService) List(ctx context.Context, c Caller) ([]model.Booking, error) {
	var (
		out []model.Booking
		err error
	)
	if c.IsAdmin() {
		out, err = s.bookings.ListAll(ctx)
	} else {
		out, err = s.bookings.ListByUser(ctx, c.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

// Get returns a booking owned by the caller, or any booking to admins.
func (s *BookingService) Get(ctx context.Context, c Caller, id string) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, bookingStoreError(err)
	}
	if err := OwnerOrAdmin(c, b.UserID); err != nil {
		return nil, err
	}
	return b, nil
}

// Cancel moves a pending or confirmed booking to cancelled.
func (s *BookingService) Cancel(ctx context.Context, c Caller, id string) (*model.Booking, error) {
	b, err := s.Get(ctx, c, id)
	if err != nil {
		return nil, err
	}
	if b.Status != model.BookingPending && b.Status != model.BookingConfirmed {
		return nil, conflictError("booking cannot be cancelled in status %s", b.Status)
	}
	updated, err := s.bookings.UpdateStatus(ctx, id, model.BookingCancelled, nil, model.BookingPending, model.BookingConfirmed)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflictError("booking cannot be cancelled in its current status")
		}
		return nil, bookingStoreError(err)
	}
	s.publish(ctx, queue.QueueBookingCancelled, *updated)
	return updated, nil
}

// Confirm records a successful payment on a pending booking.
func (s *BookingService) Confirm(ctx context.Context, id, paymentID string) (*model.Booking, error) {
	updated, err := s.bookings.UpdateStatus(ctx, id, model.BookingConfirmed, &paymentID, model.BookingPending)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflictError("booking is not pending")
		}
		return nil, bookingStoreError(err)
	}
	s.publish(ctx, queue.QueueBookingConfirmed, *updated)
	return updated, nil
}

func (s *BookingService) publish(ctx context.Context, queueName string, b model.Booking) {
	ev := queue.NewBookingEvent(queueName, b, s.now())
	if err := s.events.Publish(ctx, queueName, ev); err != nil {
		s.log.Warn("booking event not published",
			zap.String("queue", queueName), zap.String("booking_id", b.ID), zap.Error(err))
	}
}

func bookingStoreError(err error) error {
	if errors.Is(err, repository.ErrBookingNotFound) {
		return notFoundError("booking not found")
	}
	return fmt.Errorf("booking store: %w", err)
}
