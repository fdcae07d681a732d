package models

import (
	"time"
)

type Favorite struct {
	ID         int         `json:"id"`
	CustomerID int         `json:"customer_id"`
	ProviderID int         `json:"provider_id"`
	Provider   UserSummary `json:"provider"`
	City       string      `json:"city,omitempty"`
	Rating     float64     `json:"rating"`
	CreatedAt  time.Time   `json:"created_at"`
}
