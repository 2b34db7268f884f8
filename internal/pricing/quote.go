package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"tripdesk/internal/models"
)

var ErrInvalidDateRange = errors.New("check-out date must be after check-in date")

// StayQuote is the raw room cost of a stay before service fees.
type StayQuote struct {
	Nights        int
	PricePerNight decimal.Decimal
	TotalPrice    decimal.Decimal
}

// QuoteStay prices a room for a date range. Fails when the range spans
// zero or negative nights.
func QuoteStay(room models.RoomType, checkIn, checkOut models.Date) (StayQuote, error) {
	nights := checkIn.DaysUntil(checkOut)
	if nights <= 0 {
		return StayQuote{}, ErrInvalidDateRange
	}
	return StayQuote{
		Nights:        nights,
		PricePerNight: room.PricePerNight,
		TotalPrice:    room.PricePerNight.Mul(decimal.NewFromInt(int64(nights))),
	}, nil
}

// Breakdown is the authoritative price of a reservation.
type Breakdown struct {
	StayQuote
	ServiceFee decimal.Decimal
	GrandTotal decimal.Decimal
}

// PriceReservation combines the stay quote with the company's hotel fee
// policy. A nil company or an unconfigured service type yields a zero fee;
// approval policy is evaluated separately.
func PriceReservation(company *models.Company, room models.RoomType, checkIn, checkOut models.Date) (Breakdown, error) {
	quote, err := QuoteStay(room, checkIn, checkOut)
	if err != nil {
		return Breakdown{}, err
	}

	fee := decimal.Zero
	if company != nil {
		if policy, ok := company.ServiceFees.ForService(models.ServiceHotel); ok {
			fee = ResolveFee(policy, quote.TotalPrice)
		}
	}

	return Breakdown{
		StayQuote:  quote,
		ServiceFee: fee,
		GrandTotal: quote.TotalPrice.Add(fee),
	}, nil
}
