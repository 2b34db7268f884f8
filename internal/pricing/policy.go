package pricing

import "tripdesk/internal/models"

// RequiresApproval returns the company's manager-approval rule. Absence of
// a company record never silently auto-confirms: the default is true.
func RequiresApproval(company *models.Company) bool {
	if company == nil {
		return true
	}
	return company.BookingRules.RequiresManagerApproval
}

// InitialStatus maps the approval decision onto the reservation's first
// observable state.
func InitialStatus(requiresApproval bool) models.ReservationStatus {
	if requiresApproval {
		return models.StatusPending
	}
	return models.StatusConfirmed
}
