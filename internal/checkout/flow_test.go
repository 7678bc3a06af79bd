// internal/checkout/flow_test.go
package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexura/storefront/internal/models"
)

func testAddress() models.Address {
	return models.Address{
		Name:    "Home",
		City:    "Pune",
		State:   "MH",
		Zipcode: "411001",
		Mobile:  "9800000000",
	}
}

func TestNewFlowDefaults(t *testing.T) {
	f := NewFlow()
	assert.Equal(t, StepAddress, f.Step())
	assert.Equal(t, models.ShippingStandard, f.Shipping())
	assert.Equal(t, models.PaymentMethodCard, f.PaymentMethod())
	assert.Nil(t, f.Address())
	assert.False(t, f.InFlight())
}

func TestNextRequiresAddress(t *testing.T) {
	f := NewFlow()

	err := f.Next()
	assert.ErrorIs(t, err, ErrNoAddress)
	assert.Equal(t, StepAddress, f.Step())

	f.SelectAddress(testAddress())
	assert.NoError(t, f.Next())
	assert.Equal(t, StepShipping, f.Step())
}

func TestNextStopsAtReview(t *testing.T) {
	f := NewFlow()
	f.SelectAddress(testAddress())

	for i := 0; i < 10; i++ {
		assert.NoError(t, f.Next())
	}
	assert.Equal(t, StepReview, f.Step())
}

func TestBackNeverGoesBelowAddress(t *testing.T) {
	f := NewFlow()
	f.Back()
	assert.Equal(t, StepAddress, f.Step())

	f.SelectAddress(testAddress())
	assert.NoError(t, f.Next())
	f.Back()
	assert.Equal(t, StepAddress, f.Step())
}

func TestSetShippingValidation(t *testing.T) {
	f := NewFlow()
	assert.NoError(t, f.SetShipping(models.ShippingExpress))
	assert.Equal(t, models.ShippingExpress, f.Shipping())

	err := f.SetShipping("drone")
	assert.ErrorIs(t, err, ErrInvalidShipping)
	assert.Equal(t, models.ShippingExpress, f.Shipping())
}

func TestSetPaymentMethodValidation(t *testing.T) {
	f := NewFlow()
	assert.NoError(t, f.SetPaymentMethod(models.PaymentMethodUPI))
	assert.NoError(t, f.SetPaymentMethod(models.PaymentMethodCOD))
	assert.ErrorIs(t, f.SetPaymentMethod("crypto"), ErrInvalidPayment)
}

func TestUpiCannotLeavePaymentStep(t *testing.T) {
	f := NewFlow()
	f.SelectAddress(testAddress())
	assert.NoError(t, f.SetPaymentMethod(models.PaymentMethodUPI))

	assert.NoError(t, f.Next()) // shipping
	assert.NoError(t, f.Next()) // payment
	assert.Equal(t, StepPayment, f.Step())

	err := f.Next()
	assert.ErrorIs(t, err, ErrUpiConfirmOnly)
	assert.Equal(t, StepPayment, f.Step())

	// Confirming from the payment step is the UPI terminal action.
	placement, err := f.BeginPlacement()
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentMethodUPI, placement.Method)
}

func TestBeginPlacementCardRequiresReview(t *testing.T) {
	f := NewFlow()
	f.SelectAddress(testAddress())

	_, err := f.BeginPlacement()
	assert.ErrorIs(t, err, ErrNotReady)

	assert.NoError(t, f.Next())
	assert.NoError(t, f.Next())
	assert.NoError(t, f.Next())
	assert.Equal(t, StepReview, f.Step())

	placement, err := f.BeginPlacement()
	assert.NoError(t, err)
	assert.Equal(t, testAddress(), placement.Address)
}

func TestBeginPlacementRequiresAddress(t *testing.T) {
	f := NewFlow()
	_, err := f.BeginPlacement()
	assert.ErrorIs(t, err, ErrNoAddress)
}

func TestInFlightGuard(t *testing.T) {
	f := NewFlow()
	f.SelectAddress(testAddress())
	assert.NoError(t, f.Next())
	assert.NoError(t, f.Next())
	assert.NoError(t, f.Next())

	_, err := f.BeginPlacement()
	assert.NoError(t, err)
	_, err = f.BeginPlacement()
	assert.ErrorIs(t, err, ErrInFlight)

	// A failed submission releases the guard so the user can retry.
	f.EndPlacement()
	_, err = f.BeginPlacement()
	assert.NoError(t, err)
}

func TestPlacementSnapshotIsImmutable(t *testing.T) {
	f := NewFlow()
	f.SelectAddress(testAddress())
	assert.NoError(t, f.SetShipping(models.ShippingExpress))
	f.SelectCard(models.PaymentCard{Number: "4111111111111111", Name: "A", Expiry: "09/27"})
	assert.NoError(t, f.Next())
	assert.NoError(t, f.Next())
	assert.NoError(t, f.Next())

	placement, err := f.BeginPlacement()
	assert.NoError(t, err)

	// Mutations that land while the submission is in flight must not show
	// through the captured snapshot.
	f.SelectAddress(models.Address{Name: "Other", City: "Delhi", State: "DL", Zipcode: "110001", Mobile: "9111111111"})
	assert.NoError(t, f.SetShipping(models.ShippingStandard))
	f.SelectCard(models.PaymentCard{Number: "5555444433331111", Name: "B", Expiry: "01/29"})
	f.SetUpiID("someone@okhdfc")

	assert.Equal(t, testAddress(), placement.Address)
	assert.Equal(t, models.ShippingExpress, placement.Shipping)
	assert.Equal(t, "4111111111111111", placement.Card.Number)
	assert.Equal(t, "", placement.UpiID)
}
