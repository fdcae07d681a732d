package models

import (
	"time"
)

type Booking struct {
	ID            int         `json:"id"`
	CustomerID    int         `json:"customer_id"`
	ProviderID    int         `json:"provider_id"`
	ServiceID     int         `json:"service_id"`
	ServiceTitle  string      `json:"service_title,omitempty"`
	Status        string      `json:"status"`
	BookingDate   string      `json:"booking_date"`
	BookingTime   string      `json:"booking_time"`
	DurationHours int         `json:"duration_hours"`
	TotalAmount   float64     `json:"total_amount"`
	Address       string      `json:"address"`
	ContactPhone  string      `json:"contact_phone"`
	ContactEmail  string      `json:"contact_email,omitempty"`
	CustomerNotes string      `json:"customer_notes,omitempty"`
	ProviderNotes string      `json:"provider_notes,omitempty"`
	CancelReason  string      `json:"cancel_reason,omitempty"`
	Customer      UserSummary `json:"customer"`
	Provider      UserSummary `json:"provider"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     *time.Time  `json:"updated_at,omitempty"`
}

// OtherParty returns the counterparty of userID on the booking.
func (b Booking) OtherParty(userID int) (int, error) {
	switch userID {
	case b.CustomerID:
		return b.ProviderID, nil
	case b.ProviderID:
		return b.CustomerID, nil
	default:
		return 0, ErrNotBookingParty
	}
}
