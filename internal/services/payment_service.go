// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/nexura/storefront/internal/config"
	"github.com/nexura/storefront/internal/models"
)

type PaymentService struct {
	cfg *config.Config
}

type ChargeResult struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{cfg: cfg}
}

// ChargeCard charges a saved card through Stripe. Without a configured
// Stripe key the charge is simulated, matching the UPI path.
func (s *PaymentService) ChargeCard(amount float64, card *models.PaymentCard, orderRef string) (*ChargeResult, error) {
	if card == nil {
		return nil, errors.New("no card selected")
	}

	if s.cfg.Payment.StripeSecretKey == "" {
		return simulatedCharge(), nil
	}

	// Stripe wants the amount in the smallest currency unit
	amountInPaise := int64(amount * 100)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInPaise),
		Currency: stripe.String("inr"),
		Confirm:  stripe.Bool(true),
	}
	params.AddMetadata("order_ref", orderRef)
	params.AddMetadata("card_holder", card.Name)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &ChargeResult{
		TransactionID: pi.ID,
		Status:        string(pi.Status),
	}, nil
}

// SimulateUpi mimics a successful UPI collect request. There is no gateway
// roundtrip; the transaction id is minted locally.
func (s *PaymentService) SimulateUpi(upiID string) (*ChargeResult, error) {
	if upiID == "" {
		return nil, errors.New("upi id is required")
	}
	return simulatedCharge(), nil
}

func simulatedCharge() *ChargeResult {
	return &ChargeResult{
		TransactionID: fmt.Sprintf("TXN%d", time.Now().UnixMilli()),
		Status:        "success",
	}
}
