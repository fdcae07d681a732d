package models

import (
	"time"
)

type Service struct {
	ID          int        `json:"id"`
	ProviderID  int        `json:"provider_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	City        string     `json:"city"`
	PriceFrom   *float64   `json:"price_from"`
	PriceTo     *float64   `json:"price_to"`
	PriceUnit   string     `json:"price_unit"`
	Available   bool       `json:"available"`
	Featured    bool       `json:"featured"`
	ImagePath   *string    `json:"image_path,omitempty"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"review_count"`
	Provider    UserSummary `json:"provider"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ServiceFilter struct {
	Category string
	City     string
	Query    string
	Page     int
	PageSize int
}
