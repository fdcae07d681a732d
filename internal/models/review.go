package models

import (
	"time"
)

type Review struct {
	ID              int         `json:"id"`
	BookingID       int         `json:"booking_id"`
	ServiceID       int         `json:"service_id"`
	ProviderID      int         `json:"provider_id"`
	CustomerID      int         `json:"customer_id"`
	Rating          int         `json:"rating"`
	Quality         *int        `json:"quality,omitempty"`
	Communication   *int        `json:"communication,omitempty"`
	Timeliness      *int        `json:"timeliness,omitempty"`
	Professionalism *int        `json:"professionalism,omitempty"`
	Text            string      `json:"text"`
	Photos          []string    `json:"photos,omitempty"`
	ResponseText    *string     `json:"response_text,omitempty"`
	ResponseAt      *time.Time  `json:"response_at,omitempty"`
	HelpfulCount    int         `json:"helpful_count"`
	Verified        bool        `json:"verified"`
	Customer        UserSummary `json:"customer"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       *time.Time  `json:"updated_at,omitempty"`
}

// RatingSummary is recomputed from the full review set on every read,
// never persisted.
type RatingSummary struct {
	Average         float64     `json:"average"`
	Total           int         `json:"total"`
	Histogram       map[int]int `json:"histogram"`
	Quality         float64     `json:"quality"`
	Communication   float64     `json:"communication"`
	Timeliness      float64     `json:"timeliness"`
	Professionalism float64     `json:"professionalism"`
}
