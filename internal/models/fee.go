package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type FeeKind string

const (
	FeeFixed      FeeKind = "fixed"
	FeePercentage FeeKind = "percentage"
)

// FeePolicy is the configured service fee for one service type.
// A fixed policy charges value + additional_fee regardless of the base
// amount; a percentage policy charges base*value/100 + additional_fee.
type FeePolicy struct {
	Kind          FeeKind         `json:"type"`
	Value         decimal.Decimal `json:"value"`
	AdditionalFee decimal.Decimal `json:"additional_fee"`
	Currency      Currency        `json:"currency"`
}

// UnmarshalJSON tolerates the legacy storage format where a policy was a
// bare number: such values are read as a fixed fee with no additional fee.
func (p *FeePolicy) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = FeePolicy{Kind: FeeFixed, Currency: CurrencyTRY}
		return nil
	}

	if trimmed[0] != '{' {
		var legacy decimal.Decimal
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return fmt.Errorf("malformed fee policy: %w", err)
		}
		*p = FeePolicy{Kind: FeeFixed, Value: legacy, Currency: CurrencyTRY}
		return nil
	}

	type plain FeePolicy
	var parsed plain
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return fmt.Errorf("malformed fee policy: %w", err)
	}
	if parsed.Kind == "" {
		parsed.Kind = FeeFixed
	}
	if parsed.Currency == "" {
		parsed.Currency = CurrencyTRY
	}
	*p = FeePolicy(parsed)
	return nil
}

// ServiceFeeTable maps each service type to its fee policy.
type ServiceFeeTable map[ServiceType]FeePolicy

func DefaultServiceFees() ServiceFeeTable {
	table := make(ServiceFeeTable, 6)
	for _, st := range []ServiceType{ServiceHotel, ServiceFlight, ServiceTransfer, ServiceVisa, ServiceInsurance, ServiceCarRental} {
		table[st] = FeePolicy{Kind: FeeFixed, Currency: CurrencyTRY}
	}
	return table
}

// ForService returns the configured policy for a service type, if any.
func (t ServiceFeeTable) ForService(st ServiceType) (FeePolicy, bool) {
	if t == nil {
		return FeePolicy{}, false
	}
	policy, ok := t[st]
	return policy, ok
}

// BookingRules is the per-company booking policy.
type BookingRules struct {
	HotelMaxStars             int              `json:"hotel_max_stars"`
	HotelMaxPricePerNight     *decimal.Decimal `json:"hotel_max_price_per_night,omitempty"`
	RequiresManagerApproval   bool             `json:"requires_manager_approval"`
	EconomyBookingDaysBefore  int              `json:"economy_booking_days_before"`
	BusinessBookingDaysBefore *int             `json:"business_booking_days_before,omitempty"`
}

func DefaultBookingRules() BookingRules {
	return BookingRules{
		HotelMaxStars:           5,
		RequiresManagerApproval: true,
	}
}
