package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"tumaBack/internal/fsm"
	"tumaBack/internal/models"
	"tumaBack/internal/repositories"
)

type PaymentService struct {
	PaymentRepo *repositories.PaymentRepository
	BookingRepo *repositories.BookingRepository
	Currency    string

	// Stripe entry points, replaceable in tests.
	CreateIntent func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	GetIntent    func(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

func NewPaymentService(paymentRepo *repositories.PaymentRepository, bookingRepo *repositories.BookingRepository, currency string) *PaymentService {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &PaymentService{
		PaymentRepo:  paymentRepo,
		BookingRepo:  bookingRepo,
		Currency:     currency,
		CreateIntent: paymentintent.New,
		GetIntent:    paymentintent.Get,
	}
}

// amountToMinorUnits converts a store amount to the minor units the
// payment processor expects. Rounded, not truncated: 10.005 is 1001.
func amountToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateBookingIntent authenticates the caller against the booking
// (owner only), checks the booking is still payable and opens a payment
// intent for its total amount.
func (s *PaymentService) CreateBookingIntent(ctx context.Context, bookingID, customerID int) (models.PaymentIntentResponse, error) {
	b, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.PaymentIntentResponse{}, err
	}
	if b.CustomerID != customerID {
		return models.PaymentIntentResponse{}, models.ErrNotBookingParty
	}
	if b.Status != fsm.StatusPending {
		return models.PaymentIntentResponse{}, models.ErrInvalidTransition
	}
	if b.TotalAmount <= 0 {
		return models.PaymentIntentResponse{}, errors.New("booking has no payable amount")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountToMinorUnits(b.TotalAmount)),
		Currency: stripe.String(s.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("booking_id", fmt.Sprint(b.ID))
	params.AddMetadata("customer_id", fmt.Sprint(customerID))

	pi, err := s.CreateIntent(params)
	if err != nil {
		return models.PaymentIntentResponse{}, fmt.Errorf("create payment intent: %w", err)
	}

	if _, err := s.PaymentRepo.CreatePayment(ctx, models.Payment{
		BookingID: b.ID,
		UserID:    customerID,
		IntentID:  pi.ID,
		Amount:    b.TotalAmount,
		Currency:  s.Currency,
		Status:    models.PaymentStatusPending,
	}); err != nil {
		return models.PaymentIntentResponse{}, err
	}

	return models.PaymentIntentResponse{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       b.TotalAmount,
		Currency:     s.Currency,
	}, nil
}

// ConfirmPayment verifies the intent really succeeded at the processor,
// records it and moves the booking pending -> confirmed through the
// same state machine path as a manual accept.
func (s *PaymentService) ConfirmPayment(ctx context.Context, intentID string, customerID int) (models.Booking, error) {
	payment, err := s.PaymentRepo.GetPaymentByIntentID(ctx, intentID)
	if err != nil {
		return models.Booking{}, err
	}
	if payment.UserID != customerID {
		return models.Booking{}, models.ErrNotBookingParty
	}

	pi, err := s.GetIntent(intentID, nil)
	if err != nil {
		return models.Booking{}, fmt.Errorf("retrieve payment intent: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		if err := s.PaymentRepo.UpdatePaymentStatus(ctx, intentID, models.PaymentStatusFailed); err != nil {
			log.Printf("payment %s: status update failed: %v", intentID, err)
		}
		return models.Booking{}, models.ErrPaymentNotSucceeded
	}

	if err := s.PaymentRepo.UpdatePaymentStatus(ctx, intentID, models.PaymentStatusSucceeded); err != nil {
		return models.Booking{}, err
	}

	err = s.BookingRepo.Transition(ctx, payment.BookingID, fsm.StatusPending, fsm.StatusConfirmed, "", "")
	if err != nil && !errors.Is(err, models.ErrStatusConflict) {
		return models.Booking{}, err
	}
	// ErrStatusConflict here means the booking already left pending
	// (e.g. the provider accepted while the payment was in flight);
	// the payment itself is still recorded.

	return s.BookingRepo.GetBookingByID(ctx, payment.BookingID)
}
