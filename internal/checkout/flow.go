// internal/checkout/flow.go
package checkout

import (
	"errors"

	"github.com/nexura/storefront/internal/models"
)

// The four linear steps. UPI never reaches StepReview: confirming the
// simulated payment at StepPayment is a terminal action of its own.
type Step int

const (
	StepAddress Step = iota + 1
	StepShipping
	StepPayment
	StepReview
)

var (
	ErrNoAddress       = errors.New("checkout: select a shipping address first")
	ErrNotReady        = errors.New("checkout: order cannot be placed from this step")
	ErrInFlight        = errors.New("checkout: an order submission is already in progress")
	ErrUpiConfirmOnly  = errors.New("checkout: upi payments are confirmed from the payment step")
	ErrInvalidShipping = errors.New("checkout: unknown shipping method")
	ErrInvalidPayment  = errors.New("checkout: unknown payment method")
)

// Flow is one user's checkout session. It is not safe for concurrent use;
// the session store serializes access per user.
type Flow struct {
	step          Step
	address       *models.Address
	shipping      models.ShippingMethod
	paymentMethod models.PaymentMethod
	card          *models.PaymentCard
	upiID         string
	inFlight      bool
}

func NewFlow() *Flow {
	return &Flow{
		step:          StepAddress,
		shipping:      models.ShippingStandard,
		paymentMethod: models.PaymentMethodCard,
	}
}

func (f *Flow) Step() Step                          { return f.step }
func (f *Flow) Address() *models.Address            { return f.address }
func (f *Flow) Shipping() models.ShippingMethod     { return f.shipping }
func (f *Flow) PaymentMethod() models.PaymentMethod { return f.paymentMethod }
func (f *Flow) Card() *models.PaymentCard           { return f.card }
func (f *Flow) UpiID() string                       { return f.upiID }
func (f *Flow) InFlight() bool                      { return f.inFlight }

func (f *Flow) SelectAddress(addr models.Address) {
	a := addr
	f.address = &a
}

func (f *Flow) SetShipping(m models.ShippingMethod) error {
	if m != models.ShippingStandard && m != models.ShippingExpress {
		return ErrInvalidShipping
	}
	f.shipping = m
	return nil
}

func (f *Flow) SetPaymentMethod(m models.PaymentMethod) error {
	switch m {
	case models.PaymentMethodCard, models.PaymentMethodUPI, models.PaymentMethodCOD:
		f.paymentMethod = m
		return nil
	}
	return ErrInvalidPayment
}

func (f *Flow) SelectCard(card models.PaymentCard) {
	c := card
	f.card = &c
}

func (f *Flow) SetUpiID(id string) { f.upiID = id }

// Next advances one step. Leaving the address step requires a selected
// address; every other forward transition is unconditional. UPI stops at
// the payment step and finishes through BeginPlacement there.
func (f *Flow) Next() error {
	if f.step == StepAddress && f.address == nil {
		return ErrNoAddress
	}
	if f.step == StepPayment && f.paymentMethod == models.PaymentMethodUPI {
		return ErrUpiConfirmOnly
	}
	if f.step < StepReview {
		f.step++
	}
	return nil
}

// Back is unconditional; it never moves below the first step.
func (f *Flow) Back() {
	if f.step > StepAddress {
		f.step--
	}
}

// Placement is the view of the flow captured when placement begins. It is
// a copy: later flow mutations never show through, so callers may use it
// without holding the session lock.
type Placement struct {
	Address  models.Address
	Shipping models.ShippingMethod
	Method   models.PaymentMethod
	Card     *models.PaymentCard
	UpiID    string
}

// BeginPlacement validates that an order may be placed from the current
// state, claims the in-flight guard, and returns the placement snapshot.
// Card and COD place from the review step; UPI places from the payment step
// via its confirmation action.
func (f *Flow) BeginPlacement() (*Placement, error) {
	if f.inFlight {
		return nil, ErrInFlight
	}
	if f.address == nil {
		return nil, ErrNoAddress
	}

	switch f.paymentMethod {
	case models.PaymentMethodUPI:
		if f.step != StepPayment {
			return nil, ErrNotReady
		}
	default:
		if f.step != StepReview {
			return nil, ErrNotReady
		}
	}

	f.inFlight = true

	p := &Placement{
		Address:  *f.address,
		Shipping: f.shipping,
		Method:   f.paymentMethod,
		UpiID:    f.upiID,
	}
	if f.card != nil {
		c := *f.card
		p.Card = &c
	}
	return p, nil
}

// EndPlacement releases the in-flight guard so a failed submission can be
// retried. Must run on every placement path, success or failure.
func (f *Flow) EndPlacement() { f.inFlight = false }
