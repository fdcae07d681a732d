package models

import (
	"errors"
	"testing"
)

func TestOtherParty(t *testing.T) {
	b := Booking{CustomerID: 10, ProviderID: 20}

	other, err := b.OtherParty(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other != 20 {
		t.Errorf("expected provider 20, got %d", other)
	}

	other, err = b.OtherParty(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other != 10 {
		t.Errorf("expected customer 10, got %d", other)
	}

	if _, err := b.OtherParty(99); !errors.Is(err, ErrNotBookingParty) {
		t.Errorf("expected ErrNotBookingParty, got %v", err)
	}
}
