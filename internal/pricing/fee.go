package pricing

import (
	"github.com/shopspring/decimal"

	"tripdesk/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ResolveFee computes the monetary fee a policy yields for a base amount.
// Fixed policies ignore the base; percentage policies apply value as a
// percentage of it. The additional fee is added in either case.
func ResolveFee(policy models.FeePolicy, base decimal.Decimal) decimal.Decimal {
	switch policy.Kind {
	case models.FeePercentage:
		return base.Mul(policy.Value).Div(hundred).Add(policy.AdditionalFee)
	default:
		return policy.Value.Add(policy.AdditionalFee)
	}
}
