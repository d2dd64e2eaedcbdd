package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// PaymentStatus is the state of a payment attempt.
type PaymentStatus string

const (
    PaymentPending    PaymentStatus = "pending"
    PaymentProcessing PaymentStatus = "processing"
    PaymentSucceeded  PaymentStatus = "succeeded"
    PaymentFailed     PaymentStatus = "failed"
    PaymentRefunded   PaymentStatus = "refunded"
)

// Payment mirrors the `payments` table.  IntentID is the reference returned
// by the payment gateway.
type Payment struct {
    ID        string          `json:"id"`        // payments.id
    BookingID string          `json:"bookingId"` // payments.booking_id
    UserID    string          `json:"userId"`    // payments.user_id
    Amount    decimal.Decimal `json:"amount"`    // payments.amount
    Currency  string          `json:"currency"`  // payments.currency
    Status    PaymentStatus   `json:"status"`    // payments.status
    IntentID  string          `json:"intentId"`  // payments.intent_id
    CreatedAt time.Time       `json:"createdAt"` // payments.created_at
    UpdatedAt time.Time       `json:"updatedAt"` // payments.updated_at
}

// PaymentIntent is returned to the client so it can complete the payment.
type PaymentIntent struct {
    PaymentID       string `json:"paymentId"`
    PaymentIntentID string `json:"paymentIntentId"`
    ClientSecret    string `json:"clientSecret"`
}

// CreatePaymentIntentInput is the body of POST /v1/payments/create-intent.
type CreatePaymentIntentInput struct {
    BookingID string `json:"bookingId"`
    Currency  string `json:"currency,omitempty"`
}

// ConfirmPaymentInput is the body of POST /v1/payments/confirm.
type ConfirmPaymentInput struct {
    PaymentIntentID string `json:"paymentIntentId"`
}

// ConfirmPaymentResult reports the outcome of a confirmation.
type ConfirmPaymentResult struct {
    Success   bool    `json:"success"`
    PaymentID string  `json:"paymentId"`
    Booking   Booking `json:"booking"`
}
