package fees

import (
	"testing"

	"feegate/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		shipping float64
		specs    []models.FeeSetting
		want     []Line
	}{
		{
			name:     "both fees on a regular cart",
			subtotal: 100,
			shipping: 20,
			specs:    DefaultSpecs(),
			want: []Line{
				{Name: "Fee", Amount: 18.0},
				{Name: "Standard Fee", Amount: 54.69},
			},
		},
		{
			name:     "percentage fee suppressed on empty cart",
			subtotal: 0,
			shipping: 0,
			specs:    DefaultSpecs(),
			want: []Line{
				{Name: "Standard Fee", Amount: 54.69},
			},
		},
		{
			name:     "zero rate suppresses percentage fee",
			subtotal: 100,
			shipping: 0,
			specs: []models.FeeSetting{
				{Name: "Fee", Kind: models.FeeKindPercentage, Rate: 0, Enabled: true},
				{Name: "Standard Fee", Kind: models.FeeKindFixed, Amount: 54.69, Enabled: true},
			},
			want: []Line{
				{Name: "Standard Fee", Amount: 54.69},
			},
		},
		{
			name:     "disabled specs emit nothing",
			subtotal: 100,
			shipping: 20,
			specs: []models.FeeSetting{
				{Name: "Fee", Kind: models.FeeKindPercentage, Rate: 0.15, Enabled: false},
				{Name: "Standard Fee", Kind: models.FeeKindFixed, Amount: 54.69, Enabled: false},
			},
			want: []Line{},
		},
		{
			name:     "zero fixed amount suppressed",
			subtotal: 50,
			shipping: 0,
			specs: []models.FeeSetting{
				{Name: "Standard Fee", Kind: models.FeeKindFixed, Amount: 0, Enabled: true},
			},
			want: []Line{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.subtotal, tt.shipping, tt.specs)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeOrderIsStable(t *testing.T) {
	// Percentage fee always precedes the fixed fee, matching the
	// configured position order.
	lines := Compute(10, 5, DefaultSpecs())
	assert.Len(t, lines, 2)
	assert.Equal(t, "Fee", lines[0].Name)
	assert.Equal(t, "Standard Fee", lines[1].Name)
	assert.InDelta(t, 2.25, lines[0].Amount, 1e-9)
}

func TestFeesAreNonTaxable(t *testing.T) {
	for _, line := range Compute(100, 0, DefaultSpecs()) {
		assert.False(t, line.Taxable)
	}
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(5469), MinorUnits(54.69))
	assert.Equal(t, int64(1800), MinorUnits(18.0))
	assert.Equal(t, int64(0), MinorUnits(0))
}
