package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/queue"
)

var (
	guest   = Caller{ID: "guest-1", Role: model.RoleGuest}
	guest2  = Caller{ID: "guest-2", Role: model.RoleGuest}
	owner   = Caller{ID: "owner-1", Role: model.RoleHotelOwner}
	admin   = Caller{ID: "admin-1", Role: model.RoleAdmin}
	testNow = time.Date(2030, 3, 10, 15, 0, 0, 0, time.UTC)
)

type bookingFixture struct {
	svc      *BookingService
	bookings *fakeBookingStore
	rooms    *fakeRoomStore
	events   *recordingPublisher
	room     model.Room
}

func setupBookingService(t *testing.T) *bookingFixture {
	t.Helper()
	rooms := newFakeRoomStore()
	room := model.Room{
		HotelID: "hotel-1", Number: "101", Type: model.RoomDouble,
		PricePerNight: decimal.RequireFromString("120.50"), Capacity: 2, IsAvailable: true,
	}
	if err := rooms.Create(context.Background(), &room); err != nil {
		t.Fatal(err)
	}
	f := &bookingFixture{
		bookings: newFakeBookingStore(),
		rooms:    rooms,
		events:   &recordingPublisher{},
		room:     room,
	}
	f.svc = NewBookingService(f.bookings, rooms, f.events, zap.NewNop())
	f.svc.now = func() time.Time { return testNow }
	return f
}

func day(offset int) time.Time {
	return time.Date(2030, 3, 10+offset, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		in, out time.Time
		want    int
	}{
		{day(0), day(1), 1},
		{day(0), day(3), 3},
		{day(0), day(1).Add(2 * time.Hour), 2},
		{day(3), day(0), 3},
		{day(0), day(0).Add(time.Hour), 1},
	}
	for _, tt := range tests {
		if got := Nights(tt.in, tt.out); got != tt.want {
			t.Errorf("Nights(%v, %v) = %d, want %d", tt.in, tt.out, got, tt.want)
		}
	}
}

func TestCreateBooking(t *testing.T) {
	f := setupBookingService(t)

	b, err := f.svc.Create(context.Background(), guest, model.CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(0), CheckOut: day(3), Guests: 2,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if b.Status != model.BookingPending || b.UserID != guest.ID || b.HotelID != "hotel-1" {
		t.Errorf("booking = %+v", b)
	}
	if !b.TotalPrice.Equal(decimal.RequireFromString("361.50")) {
		t.Errorf("TotalPrice = %s, want 361.50", b.TotalPrice)
	}
	if got := f.events.types(); len(got) != 1 || got[0] != queue.QueueBookingCreated {
		t.Errorf("events = %v", got)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name string
		in   func(roomID string) model.CreateBookingInput
		kind error
	}{
		{"no room", func(string) model.CreateBookingInput {
			return model.CreateBookingInput{CheckIn: day(1), CheckOut: day(2), Guests: 1}
		}, ErrValidation},
		{"missing dates", func(id string) model.CreateBookingInput {
			return model.CreateBookingInput{RoomID: id, Guests: 1}
		}, ErrValidation},
		{"reversed dates", func(id string) model.CreateBookingInput {
			return model.CreateBookingInput{RoomID: id, CheckIn: day(3), CheckOut: day(1), Guests: 1}
		}, ErrValidation},
		{"same day", func(id string) model.CreateBookingInput {
			return model.CreateBookingInput{RoomID: id, CheckIn: day(1), CheckOut: day(1), Guests: 1}
		}, ErrValidation},
		{"past check-in", func(id string) model.CreateBookingInput {
			return model.CreateBookingInput{RoomID: id, CheckIn: day(-1), CheckOut: day(2), Guests: 1}
		}, ErrValidation},
		{"zero guests", func(id string) model.CreateBookingInput {
			return model.CreateBookingInput{RoomID: id, CheckIn: day(1), CheckOut: day(2)}
		}, ErrValidation},
		{"over capacity", func(id string) model.CreateBookingInput {
			return model.CreateBookingInput{RoomID: id, CheckIn: day(1), CheckOut: day(2), Guests: 3}
		}, ErrValidation},
		{"unknown room", func(string) model.CreateBookingInput {
			return model.CreateBookingInput{RoomID: "nope", CheckIn: day(1), CheckOut: day(2), Guests: 1}
		}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupBookingService(t)
			_, err := f.svc.Create(context.Background(), guest, tt.in(f.room.ID))
			assertKind(t, err, tt.kind)
			if len(f.events.events) != 0 {
				t.Error("event published for rejected booking")
			}
		})
	}
}

func TestCreateBookingTodayIsAllowed(t *testing.T) {
	f := setupBookingService(t)
	_, err := f.svc.Create(context.Background(), guest, model.CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(0).Add(8 * time.Hour), CheckOut: day(1), Guests: 1,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestCreateBookingUnavailableRoom(t *testing.T) {
	f := setupBookingService(t)
	rm := f.rooms.rooms[f.room.ID]
	rm.IsAvailable = false
	f.rooms.rooms[f.room.ID] = rm

	_, err := f.svc.Create(context.Background(), guest, model.CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2), Guests: 1,
	})
	assertKind(t, err, ErrConflict)
}

func TestCreateBookingOverlap(t *testing.T) {
	ctx := context.Background()
	f := setupBookingService(t)
	first, err := f.svc.Create(ctx, guest, model.CreateBookingInput{RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(4), Guests: 1})
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.svc.Create(ctx, guest2, model.CreateBookingInput{RoomID: f.room.ID, CheckIn: day(3), CheckOut: day(5), Guests: 1})
	assertKind(t, err, ErrConflict)

	if _, err := f.svc.Create(ctx, guest2, model.CreateBookingInput{RoomID: f.room.ID, CheckIn: day(4), CheckOut: day(6), Guests: 1}); err != nil {
		t.Errorf("back-to-back booking rejected: %v", err)
	}

	if _, err := f.svc.Cancel(ctx, guest, first.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Create(ctx, guest2, model.CreateBookingInput{RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(3), Guests: 1}); err != nil {
		t.Errorf("dates of cancelled booking still blocked: %v", err)
	}
}

func TestListAndGetBookings(t *testing.T) {
	ctx := context.Background()
	f := setupBookingService(t)
	mine, err := f.svc.Create(ctx, guest, model.CreateBookingInput{RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2), Guests: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Create(ctx, guest2, model.CreateBookingInput{RoomID: f.room.ID, CheckIn: day(5), CheckOut: day(6), Guests: 1}); err != nil {
		t.Fatal(err)
	}

	own, err := f.svc.List(ctx, guest)
	if err != nil || len(own) != 1 || own[0].ID != mine.ID {
		t.Errorf("List(guest) = %v, %v", own, err)
	}
	all, err := f.svc.List(ctx, admin)
	if err != nil || len(all) != 2 {
		t.Errorf("List(admin) = %d bookings, %v", len(all), err)
	}

	if _, err := f.svc.Get(ctx, guest2, mine.ID); err == nil {
		t.Error("other guest read booking")
	} else {
		assertKind(t, err, ErrAuthorization)
	}
	if _, err := f.svc.Get(ctx, admin, mine.ID); err != nil {
		t.Errorf("admin Get() error = %v", err)
	}
	_, err = f.svc.Get(ctx, admin, "missing")
	assertKind(t, err, ErrNotFound)
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()
	f := setupBookingService(t)
	b, err := f.svc.Create(ctx, guest, model.CreateBookingInput{RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2), Guests: 1})
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.svc.Cancel(ctx, guest2, b.ID)
	assertKind(t, err, ErrAuthorization)

	cancelled, err := f.svc.Cancel(ctx, guest, b.ID)
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if cancelled.Status != model.BookingCancelled {
		t.Errorf("Status = %s", cancelled.Status)
	}
	_, err = f.svc.Cancel(ctx, guest, b.ID)
	assertKind(t, err, ErrConflict)

	want := []string{queue.QueueBookingCreated, queue.QueueBookingCancelled}
	if got := f.events.types(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestConfirmBooking(t *testing.T) {
	ctx := context.Background()
	f := setupBookingService(t)
	b, err := f.svc.Create(ctx, guest, model.CreateBookingInput{RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2), Guests: 1})
	if err != nil {
		t.Fatal(err)
	}

	confirmed, err := f.svc.Confirm(ctx, b.ID, "payment-1")
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if confirmed.Status != model.BookingConfirmed || confirmed.PaymentID == nil || *confirmed.PaymentID != "payment-1" {
		t.Errorf("booking = %+v", confirmed)
	}
	last := f.events.events[len(f.events.events)-1]
	if last.Type != queue.QueueBookingConfirmed || last.PaymentID != "payment-1" {
		t.Errorf("last event = %+v", last)
	}

	_, err = f.svc.Confirm(ctx, b.ID, "payment-2")
	assertKind(t, err, ErrConflict)
	_, err = f.svc.Confirm(ctx, "missing", "payment-2")
	assertKind(t, err, ErrNotFound)
}

func TestPublishFailureDoesNotFailBooking(t *testing.T) {
	f := setupBookingService(t)
	f.events.err = errStoreDown
	if _, err := f.svc.Create(context.Background(), guest, model.CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2), Guests: 1,
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}
