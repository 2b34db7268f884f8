package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is the central workflow entity. Booking facts and the
// computed financial breakdown are fixed at creation; only the workflow
// state mutates afterwards, through allowed transitions.
type Reservation struct {
	ID          string      `json:"id"`
	ServiceType ServiceType `json:"service_type"`
	UserID      string      `json:"user_id"`
	CompanyID   string      `json:"company_id"`

	HotelID         string `json:"hotel_id"`
	HotelName       string `json:"hotel_name"`
	RoomTypeID      string `json:"room_type_id"`
	RoomTypeName    string `json:"room_type_name"`
	CheckInDate     Date   `json:"check_in_date"`
	CheckOutDate    Date   `json:"check_out_date"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"special_requests,omitempty"`

	Nights        int             `json:"nights"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	ServiceFee    decimal.Decimal `json:"service_fee"`
	GrandTotal    decimal.Decimal `json:"grand_total"`

	Status             ReservationStatus `json:"status"`
	RequiresApproval   bool              `json:"requires_approval"`
	ApprovedBy         string            `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time        `json:"approved_at,omitempty"`
	RejectionReason    string            `json:"rejection_reason,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReservationView is a reservation enriched with display fields joined
// from the user and company records.
type ReservationView struct {
	Reservation
	UserName    string `json:"user_name,omitempty"`
	UserEmail   string `json:"user_email,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// ReservationFilter narrows reservation listings. Empty fields match all.
type ReservationFilter struct {
	UserID    string
	CompanyID string
	Status    ReservationStatus
}

// ScopeFilter restricts a filter to what the caller is allowed to see:
// employees see their own reservations, managers their company's, and
// admin/agency roles everything.
func ScopeFilter(id Identity, status ReservationStatus) ReservationFilter {
	f := ReservationFilter{Status: status}
	switch id.Role {
	case RoleEmployee:
		f.UserID = id.ID
	case RoleManager:
		f.CompanyID = id.CompanyID
	}
	return f
}

type DashboardStats struct {
	TotalReservations     int             `json:"total_reservations"`
	PendingApprovals      int             `json:"pending_approvals"`
	ConfirmedReservations int             `json:"confirmed_reservations"`
	CancelledReservations int             `json:"cancelled_reservations"`
	TotalSpent            decimal.Decimal `json:"total_spent"`
}
