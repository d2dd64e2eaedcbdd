package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/google/uuid"

    "github.com/iliyamo/hotel-booking/internal/model"
)

// ErrPaymentNotFound is returned when no payment matches the lookup.
var ErrPaymentNotFound = errors.New("payment not found")

const paymentColumns = "id, booking_id, user_id, amount, currency, status, intent_id, created_at, updated_at"

// PaymentRepo persists payment attempts in the `payments` table.
type PaymentRepo struct {
    db *sql.DB
}

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func scanPayment(s rowScanner) (*model.Payment, error) {
    var p model.Payment
    if err := s.Scan(&p.ID, &p.BookingID, &p.UserID, &p.Amount, &p.Currency, &p.Status,
        &p.IntentID, &p.CreatedAt, &p.UpdatedAt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrPaymentNotFound
        }
        return nil, err
    }
    return &p, nil
}

// Create inserts p with a new id.  intent_id is unique.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
    if p.ID == "" {
        p.ID = uuid.NewString()
    }
    const q = `INSERT INTO payments (id, booking_id, user_id, amount, currency, status, intent_id) VALUES (?, ?, ?, ?, ?, ?, ?)`
    if _, err := r.db.ExecContext(ctx, q, p.ID, p.BookingID, p.UserID, p.Amount, p.Currency, p.Status, p.IntentID); err != nil {
        if isDuplicateKey(err) {
            return ErrDuplicate
        }
        return err
    }
    stored, err := r.GetByID(ctx, p.ID)
    if err != nil {
        return err
    }
    *p = *stored
    return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*model.Payment, error) {
    return scanPayment(r.db.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payments WHERE id = ?", id))
}

// GetByIntentID looks a payment up by the gateway reference.
func (r *PaymentRepo) GetByIntentID(ctx context.Context, intentID string) (*model.Payment, error) {
    return scanPayment(r.db.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payments WHERE intent_id = ?", intentID))
}

// UpdateStatus sets the payment status.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id string, status model.PaymentStatus) error {
    res, err := r.db.ExecContext(ctx, "UPDATE payments SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?", status, id)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return ErrPaymentNotFound
    }
    return nil
}
