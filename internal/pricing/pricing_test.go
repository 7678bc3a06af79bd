// internal/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexura/storefront/internal/models"
)

func TestParseDiscountPercent(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"10%", 10},
		{"SAVE 15", 15},
		{"7.5%", 7.5},
		{"", 0},
		{"none", 0},
		{"150%", 100},
		{"0%", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseDiscountPercent(tc.input), "input %q", tc.input)
	}
}

func TestComputeLineSlabSelection(t *testing.T) {
	// Discounted unit price above the threshold picks the high slab.
	high := ComputeLine(Line{
		Product:  &models.Product{Price: 3000, Discount: "10%"},
		Quantity: 1,
	})
	assert.Equal(t, 3000.0, high.Subtotal)
	assert.Equal(t, 300.0, high.Discount)
	assert.Equal(t, 2700.0, high.DiscountedUnitPrice)
	assert.Equal(t, HighTaxRate, high.TaxRate)
	assert.InDelta(t, 486.0, high.Tax, 0.001)

	// Exactly at the threshold stays on the low slab.
	low := ComputeLine(Line{
		Product:  &models.Product{Price: 2500},
		Quantity: 1,
	})
	assert.Equal(t, LowTaxRate, low.TaxRate)
	assert.InDelta(t, 125.0, low.Tax, 0.001)

	// A paisa over crosses into the high slab.
	over := ComputeLine(Line{
		Product:  &models.Product{Price: 2500.01},
		Quantity: 1,
	})
	assert.Equal(t, HighTaxRate, over.TaxRate)
}

func TestComputeLineSlabUsesPerUnitPrice(t *testing.T) {
	// Three units of 1000 total 3000, but the slab is chosen on the unit
	// price, which stays under the threshold.
	lt := ComputeLine(Line{
		Product:  &models.Product{Price: 1000},
		Quantity: 3,
	})
	assert.Equal(t, 3000.0, lt.Subtotal)
	assert.Equal(t, LowTaxRate, lt.TaxRate)
	assert.InDelta(t, 150.0, lt.Tax, 0.001)
}

func TestComputeLineClampedDiscount(t *testing.T) {
	lt := ComputeLine(Line{
		Product:  &models.Product{Price: 2000, Discount: "150%"},
		Quantity: 2,
	})
	assert.Equal(t, 4000.0, lt.Subtotal)
	assert.Equal(t, 4000.0, lt.Discount)
	assert.InDelta(t, 0.0, lt.Tax, 0.001)
}

func TestComputeLineDegenerateInput(t *testing.T) {
	assert.Equal(t, LineTotals{}, ComputeLine(Line{Product: nil, Quantity: 1}))
	assert.Equal(t, LineTotals{}, ComputeLine(Line{Product: &models.Product{Price: 100}, Quantity: 0}))
	assert.Equal(t, LineTotals{}, ComputeLine(Line{Product: &models.Product{Price: 100}, Quantity: -2}))
}

func TestComputeAggregatesLines(t *testing.T) {
	lines := []Line{
		{Product: &models.Product{Price: 3000, Discount: "10%"}, Quantity: 1},
		{Product: &models.Product{Price: 1000}, Quantity: 2},
		{Product: nil, Quantity: 5},
	}

	totals := Compute(lines, models.ShippingStandard)
	assert.Equal(t, 5000.0, totals.Subtotal)
	assert.Equal(t, 300.0, totals.Discount)
	assert.InDelta(t, 486.0+100.0, totals.Tax, 0.001)
	assert.Equal(t, 0.0, totals.ShippingFee)
	assert.InDelta(t, 5000.0-300.0+586.0, totals.GrandTotal, 0.001)
}

func TestComputeExpressSurcharge(t *testing.T) {
	totals := Compute([]Line{
		{Product: &models.Product{Price: 1000}, Quantity: 1},
	}, models.ShippingExpress)

	assert.Equal(t, ExpressFee, totals.ShippingFee)
	assert.InDelta(t, 1000.0+50.0+250.0, totals.GrandTotal, 0.001)
}

func TestShippingFee(t *testing.T) {
	assert.Equal(t, 0.0, ShippingFee(models.ShippingStandard))
	assert.Equal(t, ExpressFee, ShippingFee(models.ShippingExpress))
}
