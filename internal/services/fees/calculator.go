// Package fees computes the fee line items applied to carts and orders.
// The decision of whether to apply them at all lives in the decision
// package; this one only does the arithmetic.
package fees

import (
	"math"

	"feegate/internal/models"
)

// Default fee configuration, used until the admin surface overrides it.
const (
	PercentageFeeName = "Fee"
	StandardFeeName   = "Standard Fee"

	DefaultPercentageRate = 0.15
	DefaultStandardFee    = 54.69
)

// Line is one computed fee: a name and a monetary amount. Fees are
// non-taxable by policy.
type Line struct {
	Name    string
	Amount  float64
	Taxable bool
}

// DefaultSpecs returns the built-in two-fee configuration: the
// percentage fee first, then the fixed standard fee.
func DefaultSpecs() []models.FeeSetting {
	return []models.FeeSetting{
		{Name: PercentageFeeName, Kind: models.FeeKindPercentage, Rate: DefaultPercentageRate, Enabled: true, Position: 0},
		{Name: StandardFeeName, Kind: models.FeeKindFixed, Amount: DefaultStandardFee, Enabled: true, Position: 1},
	}
}

// Compute derives fee lines from the cart's subtotal and shipping total.
// The base amount is subtotal + shipping. Percentage specs emit only
// when the base and rate are positive; fixed specs only when the amount
// is positive. Emission order follows spec order, so the output is
// deterministic.
func Compute(subtotal, shippingTotal float64, specs []models.FeeSetting) []Line {
	base := subtotal + shippingTotal
	lines := make([]Line, 0, len(specs))
	for _, spec := range specs {
		if !spec.Enabled {
			continue
		}
		switch spec.Kind {
		case models.FeeKindPercentage:
			if base > 0 && spec.Rate > 0 {
				lines = append(lines, Line{Name: spec.Name, Amount: base * spec.Rate})
			}
		case models.FeeKindFixed:
			if spec.Amount > 0 {
				lines = append(lines, Line{Name: spec.Name, Amount: spec.Amount})
			}
		}
	}
	return lines
}

// MinorUnits converts a monetary amount to minor-unit precision for the
// storefront API representation.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
