package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tumaBack/internal/fsm"
	"tumaBack/internal/models"
	"tumaBack/internal/repositories"
)

// Booking actions, each mapped to one status transition and one actor.
const (
	ActionAccept   = "accept"
	ActionDecline  = "decline"
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

type BookingService struct {
	BookingRepo *repositories.BookingRepository
	ServiceRepo *repositories.ServiceRepository
	Realtime    RealtimePublisher
	Notifier    *NotificationService
}

func (s *BookingService) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	if b.ServiceID == 0 || b.BookingDate == "" || b.BookingTime == "" {
		return models.Booking{}, errors.New("service_id, booking_date and booking_time are required")
	}
	if b.DurationHours <= 0 {
		b.DurationHours = 1
	}
	svc, err := s.ServiceRepo.GetServiceByID(ctx, b.ServiceID)
	if err != nil {
		return models.Booking{}, err
	}
	b.ProviderID = svc.ProviderID
	if b.ProviderID == b.CustomerID {
		return models.Booking{}, errors.New("cannot book own service")
	}

	created, err := s.BookingRepo.CreateBooking(ctx, b)
	if err != nil {
		return models.Booking{}, err
	}
	// the insert echoes the input struct; re-read to pick up the joined
	// customer/provider summaries before formatting the notification
	full, err := s.BookingRepo.GetBookingByID(ctx, created.ID)
	if err != nil {
		return models.Booking{}, err
	}
	s.notifyStatus(ctx, full, full.ProviderID, "New booking request",
		fmt.Sprintf("%s %s requested %q on %s %s", full.Customer.Name, full.Customer.Surname, svc.Title, full.BookingDate, full.BookingTime))
	return full, nil
}

// transitionFor resolves an action against the booking and the acting
// user: which actor may trigger it and which target status it produces.
// Invalid transitions are rejected here, before any remote mutation.
func transitionFor(b models.Booking, userID int, action string) (string, error) {
	var (
		actorID int
		to      string
	)
	switch action {
	case ActionAccept:
		actorID, to = b.ProviderID, fsm.StatusConfirmed
	case ActionDecline:
		actorID, to = b.ProviderID, fsm.StatusCancelled
		if b.Status != fsm.StatusPending {
			return "", models.ErrInvalidTransition
		}
	case ActionStart:
		actorID, to = b.ProviderID, fsm.StatusInProgress
	case ActionComplete:
		actorID, to = b.ProviderID, fsm.StatusCompleted
	case ActionCancel:
		actorID, to = b.CustomerID, fsm.StatusCancelled
	default:
		return "", fmt.Errorf("unknown booking action %q", action)
	}
	if userID != actorID {
		return "", models.ErrNotBookingParty
	}
	if !fsm.CanTransition(b.Status, to) {
		return "", models.ErrInvalidTransition
	}
	return to, nil
}

// Transition runs one actor-triggered status change. notes is the
// completion note on complete, the reason on decline/cancel, ignored
// otherwise.
func (s *BookingService) Transition(ctx context.Context, bookingID, userID int, action, notes string) (models.Booking, error) {
	b, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	to, err := transitionFor(b, userID, action)
	if err != nil {
		return models.Booking{}, err
	}

	notes = strings.TrimSpace(notes)
	var providerNotes, cancelReason string
	switch action {
	case ActionComplete:
		providerNotes = notes
	case ActionDecline, ActionCancel:
		cancelReason = notes
	}

	if err := s.BookingRepo.Transition(ctx, bookingID, b.Status, to, providerNotes, cancelReason); err != nil {
		return models.Booking{}, err
	}

	updated, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	other, err := updated.OtherParty(userID)
	if err == nil {
		s.notifyStatus(ctx, updated, other, "Booking "+updated.Status,
			fmt.Sprintf("Booking for %q is now %s", updated.ServiceTitle, updated.Status))
	}
	return updated, nil
}

func (s *BookingService) notifyStatus(ctx context.Context, b models.Booking, userID int, title, body string) {
	if s.Realtime != nil {
		s.Realtime.PublishToUser(userID, models.Event{Type: "booking.status", Payload: b})
	}
	if s.Notifier != nil {
		if err := s.Notifier.Push(ctx, userID, title, body, map[string]string{
			"booking_id": fmt.Sprint(b.ID),
			"status":     b.Status,
		}); err != nil {
			log.Printf("booking %d: push to user %d failed: %v", b.ID, userID, err)
		}
	}
}

func (s *BookingService) GetBookingByID(ctx context.Context, bookingID, userID int) (models.Booking, error) {
	b, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if _, err := b.OtherParty(userID); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (s *BookingService) GetBookingsByCustomer(ctx context.Context, customerID int, status string) ([]models.Booking, error) {
	return s.BookingRepo.GetBookingsByCustomer(ctx, customerID, status)
}

func (s *BookingService) GetBookingsByProvider(ctx context.Context, providerID int, status string) ([]models.Booking, error) {
	return s.BookingRepo.GetBookingsByProvider(ctx, providerID, status)
}

func (s *BookingService) UpdateCustomerNotes(ctx context.Context, bookingID, customerID int, notes string) error {
	return s.BookingRepo.UpdateCustomerNotes(ctx, bookingID, customerID, notes)
}

func (s *BookingService) UpdateProviderNotes(ctx context.Context, bookingID, providerID int, notes string) error {
	return s.BookingRepo.UpdateProviderNotes(ctx, bookingID, providerID, notes)
}

func (s *BookingService) UpdateTotalAmount(ctx context.Context, bookingID, providerID int, amount float64) error {
	if amount < 0 {
		return errors.New("amount must not be negative")
	}
	return s.BookingRepo.UpdateTotalAmount(ctx, bookingID, providerID, amount)
}
