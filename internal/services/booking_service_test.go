package services

import (
	"errors"
	"testing"

	"tumaBack/internal/fsm"
	"tumaBack/internal/models"
)

func testBooking(status string) models.Booking {
	return models.Booking{ID: 1, CustomerID: 10, ProviderID: 20, Status: status}
}

func TestTransitionForAccept(t *testing.T) {
	to, err := transitionFor(testBooking(fsm.StatusPending), 20, ActionAccept)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if to != fsm.StatusConfirmed {
		t.Errorf("expected confirmed, got %s", to)
	}
}

func TestTransitionForAcceptOnlyFromPending(t *testing.T) {
	for _, status := range []string{fsm.StatusConfirmed, fsm.StatusInProgress, fsm.StatusCompleted, fsm.StatusCancelled} {
		if _, err := transitionFor(testBooking(status), 20, ActionAccept); !errors.Is(err, models.ErrInvalidTransition) {
			t.Errorf("accept from %s: expected ErrInvalidTransition, got %v", status, err)
		}
	}
}

func TestTransitionForCompleteOnlyFromInProgress(t *testing.T) {
	to, err := transitionFor(testBooking(fsm.StatusInProgress), 20, ActionComplete)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if to != fsm.StatusCompleted {
		t.Errorf("expected completed, got %s", to)
	}
	if _, err := transitionFor(testBooking(fsm.StatusPending), 20, ActionComplete); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("complete from pending: expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionForActorChecks(t *testing.T) {
	// customer cannot accept
	if _, err := transitionFor(testBooking(fsm.StatusPending), 10, ActionAccept); !errors.Is(err, models.ErrNotBookingParty) {
		t.Errorf("expected ErrNotBookingParty, got %v", err)
	}
	// provider cannot cancel on behalf of the customer
	if _, err := transitionFor(testBooking(fsm.StatusPending), 20, ActionCancel); !errors.Is(err, models.ErrNotBookingParty) {
		t.Errorf("expected ErrNotBookingParty, got %v", err)
	}
	// a third party can do nothing
	if _, err := transitionFor(testBooking(fsm.StatusPending), 99, ActionAccept); !errors.Is(err, models.ErrNotBookingParty) {
		t.Errorf("expected ErrNotBookingParty, got %v", err)
	}
}

func TestTransitionForDeclineOnlyFromPending(t *testing.T) {
	to, err := transitionFor(testBooking(fsm.StatusPending), 20, ActionDecline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if to != fsm.StatusCancelled {
		t.Errorf("expected cancelled, got %s", to)
	}
	if _, err := transitionFor(testBooking(fsm.StatusConfirmed), 20, ActionDecline); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("decline from confirmed: expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionForCustomerCancel(t *testing.T) {
	for _, status := range []string{fsm.StatusPending, fsm.StatusConfirmed} {
		to, err := transitionFor(testBooking(status), 10, ActionCancel)
		if err != nil {
			t.Fatalf("cancel from %s: unexpected error: %v", status, err)
		}
		if to != fsm.StatusCancelled {
			t.Errorf("expected cancelled, got %s", to)
		}
	}
	if _, err := transitionFor(testBooking(fsm.StatusInProgress), 10, ActionCancel); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("cancel from in_progress: expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionForUnknownAction(t *testing.T) {
	if _, err := transitionFor(testBooking(fsm.StatusPending), 20, "archive"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestFullLifecycle(t *testing.T) {
	b := testBooking(fsm.StatusPending)
	steps := []struct {
		action string
		user   int
		want   string
	}{
		{ActionAccept, 20, fsm.StatusConfirmed},
		{ActionStart, 20, fsm.StatusInProgress},
		{ActionComplete, 20, fsm.StatusCompleted},
	}
	for _, step := range steps {
		to, err := transitionFor(b, step.user, step.action)
		if err != nil {
			t.Fatalf("%s from %s: unexpected error: %v", step.action, b.Status, err)
		}
		if to != step.want {
			t.Fatalf("%s: expected %s, got %s", step.action, step.want, to)
		}
		b.Status = to
	}
}
