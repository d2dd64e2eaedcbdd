package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// fakeUserStore keeps users in memory and enforces the unique email index.
// The *Err hooks let tests inject store failures.
type fakeUserStore struct {
	mu     sync.Mutex
	users  map[string]model.User
	nextID int
	clock  time.Time

	createErr    error
	findByIDErr  func(id string) error
	skipEmailDup bool // report no existing email on lookup to simulate a race
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}, clock: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeUserStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, other := range f.users {
		if other.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	now := f.tick()
	u.CreatedAt, u.UpdatedAt = now, now
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) put(u model.User) model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		f.nextID++
		u.ID = fmt.Sprintf("user-%d", f.nextID)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = f.tick()
		u.UpdatedAt = u.CreatedAt
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) get(id string) model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id]
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	if f.findByIDErr != nil {
		if err := f.findByIDErr(id); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.skipEmailDup {
		return nil, repository.ErrUserNotFound
	}
	for _, u := range f.users {
		if u.Email == repository.NormalizeEmail(email) {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) List(_ context.Context, includeDeleted bool) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.User{}
	for _, u := range f.users {
		if includeDeleted || u.DeletedAt == nil {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, id string, ch model.UserChanges) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if ch.Email != nil {
		for _, other := range f.users {
			if other.ID != id && other.Email == *ch.Email {
				return nil, repository.ErrEmailExists
			}
		}
		u.Email = *ch.Email
	}
	if ch.PasswordHash != nil {
		u.PasswordHash = *ch.PasswordHash
	}
	if ch.FirstName != nil {
		u.FirstName = *ch.FirstName
	}
	if ch.LastName != nil {
		u.LastName = *ch.LastName
	}
	if ch.Phone != nil {
		u.Phone = ch.Phone
	}
	u.UpdatedAt = f.tick()
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserStore) MarkDeleted(_ context.Context, id, deletedBy string, at time.Time) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repository.ErrUserNotFound
	}
	by := deletedBy
	u.DeletedAt, u.DeletedBy = &at, &by
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserStore) SetRole(_ context.Context, id string, role model.Role) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repository.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = f.tick()
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserStore) ClearDeleted(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.DeletedAt == nil {
		return nil, repository.ErrUserNotFound
	}
	u.DeletedAt, u.DeletedBy = nil, nil
	f.users[id] = u
	return &u, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeHasher is a cheap salted hasher: "hash:<salt>:<plain>".
type fakeHasher struct {
	mu     sync.Mutex
	n      int
	hashes int
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.n++
	h.hashes++
	return fmt.Sprintf("hash:%d:%s", h.n, plain), nil
}

func (h *fakeHasher) Verify(hash, plain string) bool {
	parts := strings.SplitN(hash, ":", 3)
	return len(parts) == 3 && parts[0] == "hash" && parts[2] == plain
}

// fakeTokenStore keeps refresh token hashes in memory.
type fakeTokenStore struct {
	mu      sync.Mutex
	tokens  map[string]string // hash -> user id
	revoked map[string]bool
	failErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]string{}, revoked: map[string]bool{}}
}

func (f *fakeTokenStore) StoreRefresh(_ context.Context, userID, tokenHash string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	f.tokens[tokenHash] = userID
	return nil
}

func (f *fakeTokenStore) ConsumeRefresh(_ context.Context, tokenHash string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return "", f.failErr
	}
	id, ok := f.tokens[tokenHash]
	if !ok || f.revoked[tokenHash] {
		return "", sql.ErrNoRows
	}
	f.revoked[tokenHash] = true
	return id, nil
}

func (f *fakeTokenStore) RevokeByHash(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[tokenHash] = true
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for h, id := range f.tokens {
		if id == userID {
			f.revoked[h] = true
		}
	}
	return nil
}

// fakeHotelStore is a map-backed HotelStore.
type fakeHotelStore struct {
	hotels map[string]model.Hotel
	n      int
}

func newFakeHotelStore() *fakeHotelStore { return &fakeHotelStore{hotels: map[string]model.Hotel{}} }

func (f *fakeHotelStore) Create(_ context.Context, h *model.Hotel) error {
	f.n++
	h.ID = fmt.Sprintf("hotel-%d", f.n)
	f.hotels[h.ID] = *h
	return nil
}

func (f *fakeHotelStore) GetByID(_ context.Context, id string) (*model.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return nil, repository.ErrHotelNotFound
	}
	return &h, nil
}

func (f *fakeHotelStore) List(context.Context) ([]model.Hotel, error) {
	out := []model.Hotel{}
	for _, h := range f.hotels {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHotelStore) Update(_ context.Context, h *model.Hotel) error {
	if _, ok := f.hotels[h.ID]; !ok {
		return repository.ErrHotelNotFound
	}
	f.hotels[h.ID] = *h
	return nil
}

func (f *fakeHotelStore) Delete(_ context.Context, id string) error {
	if _, ok := f.hotels[id]; !ok {
		return repository.ErrHotelNotFound
	}
	delete(f.hotels, id)
	return nil
}

// fakeRoomStore is a map-backed RoomStore.
type fakeRoomStore struct {
	rooms map[string]model.Room
	n     int
}

func newFakeRoomStore() *fakeRoomStore { return &fakeRoomStore{rooms: map[string]model.Room{}} }

func (f *fakeRoomStore) Create(_ context.Context, rm *model.Room) error {
	for _, other := range f.rooms {
		if other.HotelID == rm.HotelID && other.Number == rm.Number {
			return repository.ErrRoomNumberExists
		}
	}
	f.n++
	rm.ID = fmt.Sprintf("room-%d", f.n)
	f.rooms[rm.ID] = *rm
	return nil
}

func (f *fakeRoomStore) GetByID(_ context.Context, id string) (*model.Room, error) {
	rm, ok := f.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &rm, nil
}

func (f *fakeRoomStore) List(_ context.Context, hotelID string) ([]model.Room, error) {
	out := []model.Room{}
	for _, rm := range f.rooms {
		if hotelID == "" || rm.HotelID == hotelID {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (f *fakeRoomStore) Update(_ context.Context, rm *model.Room) error {
	if _, ok := f.rooms[rm.ID]; !ok {
		return repository.ErrRoomNotFound
	}
	f.rooms[rm.ID] = *rm
	return nil
}

func (f *fakeRoomStore) Delete(_ context.Context, id string) error {
	if _, ok := f.rooms[id]; !ok {
		return repository.ErrRoomNotFound
	}
	delete(f.rooms, id)
	return nil
}

// fakeBookingStore applies the same overlap rule as the MySQL repository.
type fakeBookingStore struct {
	bookings map[string]model.Booking
	order    []string
	n        int
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[string]model.Booking{}}
}

func (f *fakeBookingStore) Create(_ context.Context, b *model.Booking) error {
	for _, other := range f.bookings {
		if other.RoomID != b.RoomID {
			continue
		}
		if other.Status != model.BookingPending && other.Status != model.BookingConfirmed {
			continue
		}
		if other.CheckIn.Before(b.CheckOut) && other.CheckOut.After(b.CheckIn) {
			return repository.ErrRoomUnavailable
		}
	}
	f.n++
	b.ID = fmt.Sprintf("booking-%d", f.n)
	f.bookings[b.ID] = *b
	f.order = append(f.order, b.ID)
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id string) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return &b, nil
}

func (f *fakeBookingStore) ListByUser(_ context.Context, userID string) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, id := range f.order {
		if b := f.bookings[id]; b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ListAll(context.Context) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, id := range f.order {
		out = append(out, f.bookings[id])
	}
	return out, nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, id string, next model.BookingStatus, paymentID *string, from ...model.BookingStatus) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	allowed := len(from) == 0
	for _, s := range from {
		if b.Status == s {
			allowed = true
		}
	}
	if !allowed {
		return nil, repository.ErrConflict
	}
	b.Status = next
	if paymentID != nil {
		p := *paymentID
		b.PaymentID = &p
	}
	f.bookings[id] = b
	return &b, nil
}

// fakePaymentStore is a map-backed PaymentStore.
type fakePaymentStore struct {
	payments map[string]model.Payment
	n        int
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: map[string]model.Payment{}}
}

func (f *fakePaymentStore) Create(_ context.Context, p *model.Payment) error {
	f.n++
	p.ID = fmt.Sprintf("payment-%d", f.n)
	f.payments[p.ID] = *p
	return nil
}

func (f *fakePaymentStore) GetByIntentID(_ context.Context, intentID string) (*model.Payment, error) {
	for _, p := range f.payments {
		if p.IntentID == intentID {
			return &p, nil
		}
	}
	return nil, repository.ErrPaymentNotFound
}

func (f *fakePaymentStore) UpdateStatus(_ context.Context, id string, status model.PaymentStatus) error {
	p, ok := f.payments[id]
	if !ok {
		return repository.ErrPaymentNotFound
	}
	p.Status = status
	f.payments[id] = p
	return nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []queue.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, queueName string, ev queue.BookingEvent) error {
	if p.err != nil {
		return p.err
	}
	ev.Type = queueName
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

var errStoreDown = errors.New("store down")
