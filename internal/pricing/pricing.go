// internal/pricing/pricing.go
package pricing

import (
	"regexp"
	"strconv"

	"github.com/nexura/storefront/internal/models"
)

// GST slabs keyed on the discounted unit price, plus the express surcharge.
// Standard shipping is free.
const (
	TaxThreshold = 2500.0
	LowTaxRate   = 0.05
	HighTaxRate  = 0.18
	ExpressFee   = 250.0
	MaxDiscount  = 100.0
)

var discountNoise = regexp.MustCompile(`[^0-9.]`)

// Line pairs a resolved product with the quantity being bought.
type Line struct {
	Product  *models.Product
	Quantity int
}

// LineTotals is the per-line breakdown; Totals aggregates a whole cart.
type LineTotals struct {
	Subtotal            float64
	Discount            float64
	DiscountedUnitPrice float64
	TaxRate             float64
	Tax                 float64
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	Tax         float64 `json:"tax"`
	ShippingFee float64 `json:"shippingFee"`
	GrandTotal  float64 `json:"grandTotal"`
}

// ParseDiscountPercent extracts a percentage from a noisy discount string
// ("10%", "SAVE 15", ""). Empty or unparseable input means no discount.
// The result is clamped to [0, 100].
func ParseDiscountPercent(s string) float64 {
	cleaned := discountNoise.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0
	}
	pct, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || pct < 0 {
		return 0
	}
	if pct > MaxDiscount {
		return MaxDiscount
	}
	return pct
}

// ComputeLine prices a single line. A nil product or non-positive quantity
// yields zero totals, so callers can feed unresolved lines without checks.
func ComputeLine(line Line) LineTotals {
	if line.Product == nil || line.Quantity <= 0 {
		return LineTotals{}
	}

	price := line.Product.Price
	qty := float64(line.Quantity)

	subtotal := price * qty
	discount := subtotal * (ParseDiscountPercent(line.Product.Discount) / 100)

	// Tax slab is chosen per unit after discount; tax itself applies to the
	// discounted line total.
	discountedUnit := price - discount/qty
	rate := LowTaxRate
	if discountedUnit > TaxThreshold {
		rate = HighTaxRate
	}

	return LineTotals{
		Subtotal:            subtotal,
		Discount:            discount,
		DiscountedUnitPrice: discountedUnit,
		TaxRate:             rate,
		Tax:                 (subtotal - discount) * rate,
	}
}

// Compute aggregates all resolvable lines and applies the shipping surcharge.
// Lines whose product cannot be resolved are excluded from every sum.
func Compute(lines []Line, shipping models.ShippingMethod) Totals {
	var t Totals
	for _, line := range lines {
		lt := ComputeLine(line)
		t.Subtotal += lt.Subtotal
		t.Discount += lt.Discount
		t.Tax += lt.Tax
	}

	if shipping == models.ShippingExpress {
		t.ShippingFee = ExpressFee
	}

	t.GrandTotal = t.Subtotal - t.Discount + t.Tax + t.ShippingFee
	return t
}

// ShippingFee returns the surcharge for a tier on its own, for order
// summaries that show it as a separate row.
func ShippingFee(shipping models.ShippingMethod) float64 {
	if shipping == models.ShippingExpress {
		return ExpressFee
	}
	return 0
}
