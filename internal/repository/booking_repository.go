package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/hotel-booking/internal/model"
)

var (
    // ErrBookingNotFound is returned when a booking cannot be found.
    ErrBookingNotFound = errors.New("booking not found")
    // ErrRoomUnavailable is returned when the requested dates overlap an
    // existing non-cancelled booking of the same room.
    ErrRoomUnavailable = errors.New("room is not available for the selected dates")
)

const bookingColumns = "id, user_id, room_id, hotel_id, check_in, check_out, guests, total_price, status, payment_id, created_at, updated_at"

// BookingRepo persists bookings.  Creation runs in a transaction that locks
// the room row so that two concurrent requests for overlapping dates cannot
// both succeed.
type BookingRepo struct {
    db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

func scanBooking(s rowScanner) (model.Booking, error) {
    var (
        b         model.Booking
        paymentID sql.NullString
    )
    err := s.Scan(&b.ID, &b.UserID, &b.RoomID, &b.HotelID, &b.CheckIn, &b.CheckOut, &b.Guests,
        &b.TotalPrice, &b.Status, &paymentID, &b.CreatedAt, &b.UpdatedAt)
    if paymentID.Valid {
        p := paymentID.String
        b.PaymentID = &p
    }
    return b, err
}

// Create inserts b after verifying, under a row lock on the room, that no
// pending or confirmed booking overlaps [CheckIn, CheckOut).
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() { _ = tx.Rollback() }()

    var locked string
    if err := tx.QueryRowContext(ctx, "SELECT id FROM rooms WHERE id = ? FOR UPDATE", b.RoomID).Scan(&locked); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrRoomNotFound
        }
        return err
    }

    const overlap = `SELECT COUNT(*) FROM bookings
        WHERE room_id = ? AND status IN ('pending','confirmed') AND check_in < ? AND check_out > ?`
    var n int
    if err := tx.QueryRowContext(ctx, overlap, b.RoomID, b.CheckOut, b.CheckIn).Scan(&n); err != nil {
        return err
    }
    if n > 0 {
        return ErrRoomUnavailable
    }

    b.ID = uuid.NewString()
    const ins = `INSERT INTO bookings (id, user_id, room_id, hotel_id, check_in, check_out, guests, total_price, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    if _, err := tx.ExecContext(ctx, ins, b.ID, b.UserID, b.RoomID, b.HotelID, b.CheckIn, b.CheckOut,
        b.Guests, b.TotalPrice, b.Status); err != nil {
        return err
    }
    stored, err := scanBooking(tx.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", b.ID))
    if err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    *b = stored
    return nil
}

// GetByID returns a booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
    b, err := scanBooking(r.db.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}

// ListByUser returns the bookings of one user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
    return r.list(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE user_id = ? ORDER BY created_at DESC", userID)
}

// ListAll returns every booking, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
    return r.list(ctx, "SELECT "+bookingColumns+" FROM bookings ORDER BY created_at DESC")
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Booking{}
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

// UpdateStatus moves a booking from one of the allowed states to next.  It
// returns ErrConflict when the booking exists but is not in an allowed
// state, so concurrent transitions never both apply.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, next model.BookingStatus, paymentID *string, from ...model.BookingStatus) (*model.Booking, error) {
    q := "UPDATE bookings SET status = ?, updated_at = ?"
    args := []any{next, time.Now().UTC()}
    if paymentID != nil {
        q += ", payment_id = ?"
        args = append(args, *paymentID)
    }
    q += " WHERE id = ?"
    args = append(args, id)
    if len(from) > 0 {
        q += " AND status IN (?" + repeatPlaceholders(len(from)-1) + ")"
        for _, s := range from {
            args = append(args, s)
        }
    }
    res, err := r.db.ExecContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        if _, gerr := r.GetByID(ctx, id); gerr != nil {
            return nil, gerr
        }
        return nil, ErrConflict
    }
    return r.GetByID(ctx, id)
}

func repeatPlaceholders(n int) string {
    out := ""
    for i := 0; i < n; i++ {
        out += ",?"
    }
    return out
}
