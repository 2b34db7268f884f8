package models

import "fmt"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleEmployee    Role = "employee"
	RoleAgencyAdmin Role = "agency_admin"
	RoleAgencyStaff Role = "agency_staff"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee, RoleAgencyAdmin, RoleAgencyStaff:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %s", s)
	}
}

// CanModerate reports whether the role may approve or reject reservations.
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleManager
}

// IsCompanyAdmin reports whether the role may manage companies and fee policies.
func (r Role) IsCompanyAdmin() bool {
	return r == RoleAdmin || r == RoleAgencyAdmin
}

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusConfirmed, StatusCancelled, StatusCompleted:
		return ReservationStatus(s), nil
	default:
		return "", fmt.Errorf("unknown reservation status: %s", s)
	}
}

// IsTerminal reports whether no further transitions are allowed from the status.
// "approved" never rests: approving lands directly on "confirmed".
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

type ServiceType string

const (
	ServiceHotel     ServiceType = "hotel"
	ServiceFlight    ServiceType = "flight"
	ServiceTransfer  ServiceType = "transfer"
	ServiceVisa      ServiceType = "visa"
	ServiceInsurance ServiceType = "insurance"
	ServiceCarRental ServiceType = "car_rental"
)

func ParseServiceType(s string) (ServiceType, error) {
	switch ServiceType(s) {
	case ServiceHotel, ServiceFlight, ServiceTransfer, ServiceVisa, ServiceInsurance, ServiceCarRental:
		return ServiceType(s), nil
	default:
		return "", fmt.Errorf("unknown service type: %s", s)
	}
}

type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)
