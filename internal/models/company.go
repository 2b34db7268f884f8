package models

import "time"

// Company owns one fee table and one set of booking rules. Companies are
// never hard-deleted; deactivation flips is_active.
type Company struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	TaxNumber    string          `json:"tax_number,omitempty"`
	Address      string          `json:"address,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Email        string          `json:"email,omitempty"`
	ServiceFees  ServiceFeeTable `json:"service_fees"`
	BookingRules BookingRules    `json:"booking_rules"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
