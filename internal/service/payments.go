package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

const defaultCurrency = "eur"

// GatewayIntent is what a payment provider returns for a new intent.
type GatewayIntent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway is the payment provider.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (GatewayIntent, error)
	Confirm(ctx context.Context, intentID string) (model.PaymentStatus, error)
}

// MockGateway accepts every payment.
type MockGateway struct{}

func (MockGateway) CreateIntent(_ context.Context, _ decimal.Decimal, _ string) (GatewayIntent, error) {
	id := "pi_mock_" + uuid.NewString()
	return GatewayIntent{ID: id, ClientSecret: id + "_secret_mock"}, nil
}

func (MockGateway) Confirm(context.Context, string) (model.PaymentStatus, error) {
	return model.PaymentSucceeded, nil
}

// PaymentStore is implemented by repository.PaymentRepo.
type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
	GetByIntentID(ctx context.Context, intentID string) (*model.Payment, error)
	UpdateStatus(ctx context.Context, id string, status model.PaymentStatus) error
}

// PaymentService charges pending bookings through the gateway.
type PaymentService struct {
	payments PaymentStore
	bookings *BookingService
	gateway  PaymentGateway
}

func NewPaymentService(payments PaymentStore, bookings *BookingService, gateway PaymentGateway) *PaymentService {
	return &PaymentService{payments: payments, bookings: bookings, gateway: gateway}
}

// CreateIntent opens a payment for the full amount of a pending booking.
func (s *PaymentService) CreateIntent(ctx context.Context, c Caller, in model.CreatePaymentIntentInput) (*model.PaymentIntent, error) {
	if in.BookingID == "" {
		return nil, validationError("bookingId is required")
	}
	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	if len(currency) != 3 {
		return nil, validationError("currency must be a 3-letter ISO code")
	}
	b, err := s.bookings.Get(ctx, c, in.BookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != model.BookingPending {
		return nil, conflictError("booking is not pending")
	}
	intent, err := s.gateway.CreateIntent(ctx, b.TotalPrice, currency)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	p := &model.Payment{
		BookingID: b.ID,
		UserID:    b.UserID,
		Amount:    b.TotalPrice,
		Currency:  currency,
		Status:    model.PaymentPending,
		IntentID:  intent.ID,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError("payment intent already exists")
		}
		return nil, fmt.Errorf("store payment: %w", err)
	}
	return &model.PaymentIntent{PaymentID: p.ID, PaymentIntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// Confirm settles an intent and confirms its booking when the gateway
// reports success.
func (s *PaymentService) Confirm(ctx context.Context, c Caller, in model.ConfirmPaymentInput) (*model.ConfirmPaymentResult, error) {
	if in.PaymentIntentID == "" {
		return nil, validationError("paymentIntentId is required")
	}
	p, err := s.payments.GetByIntentID(ctx, in.PaymentIntentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, notFoundError("payment not found")
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if err := OwnerOrAdmin(c, p.UserID); err != nil {
		return nil, err
	}
	if p.Status == model.PaymentSucceeded {
		return nil, conflictError("payment already confirmed")
	}

	status, err := s.gateway.Confirm(ctx, p.IntentID)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if err := s.payments.UpdateStatus(ctx, p.ID, status); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	if status != model.PaymentSucceeded {
		b, err := s.bookings.Get(ctx, c, p.BookingID)
		if err != nil {
			return nil, err
		}
		return &model.ConfirmPaymentResult{Success: false, PaymentID: p.ID, Booking: *b}, nil
	}
	b, err := s.bookings.Confirm(ctx, p.BookingID, p.ID)
	if err != nil {
		return nil, err
	}
	return &model.ConfirmPaymentResult{Success: true, PaymentID: p.ID, Booking: *b}, nil
}
