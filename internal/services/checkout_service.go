// internal/services/checkout_service.go
package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nexura/storefront/internal/checkout"
	"github.com/nexura/storefront/internal/models"
	"github.com/nexura/storefront/internal/pricing"
	"github.com/nexura/storefront/internal/utils"
)

// CheckoutService holds one checkout flow per user. The mutex serializes
// all flow access, which also makes the in-flight guard race-free.
type CheckoutService struct {
	mu    sync.Mutex
	flows map[uuid.UUID]*checkout.Flow

	userService    *UserService
	cartService    *CartService
	orderService   *OrderService
	paymentService *PaymentService
}

type SelectAddressRequest struct {
	// Index picks a saved address; Address supplies a new one inline.
	Index   *int               `json:"index,omitempty"`
	Address *AddAddressRequest `json:"address,omitempty"`
}

type SetShippingRequest struct {
	Method models.ShippingMethod `json:"method" validate:"required"`
}

type SetPaymentRequest struct {
	Method    models.PaymentMethod `json:"method" validate:"required"`
	CardIndex *int                 `json:"cardIndex,omitempty"`
	UpiID     string               `json:"upiId,omitempty" validate:"omitempty,upi"`
}

type FlowState struct {
	Step          checkout.Step         `json:"step"`
	Address       *models.Address       `json:"address,omitempty"`
	Shipping      models.ShippingMethod `json:"shipping"`
	PaymentMethod models.PaymentMethod  `json:"paymentMethod"`
	CardSelected  bool                  `json:"cardSelected"`
	UpiID         string                `json:"upiId,omitempty"`
	Items         []models.CartItem     `json:"items"`
	Totals        pricing.Totals        `json:"totals"`
}

func NewCheckoutService(userService *UserService, cartService *CartService, orderService *OrderService, paymentService *PaymentService) *CheckoutService {
	return &CheckoutService{
		flows:          make(map[uuid.UUID]*checkout.Flow),
		userService:    userService,
		cartService:    cartService,
		orderService:   orderService,
		paymentService: paymentService,
	}
}

func (s *CheckoutService) State(userID uuid.UUID) (*FlowState, error) {
	s.mu.Lock()
	flow := s.flowFor(userID)
	state := snapshotFlow(flow)
	s.mu.Unlock()

	items, err := s.cartService.GetCart(userID)
	if err != nil {
		return nil, err
	}

	state.Items = items
	state.Totals = cartTotals(items, state.Shipping)
	return state, nil
}

func (s *CheckoutService) SelectAddress(userID uuid.UUID, req *SelectAddressRequest) (*FlowState, error) {
	var address models.Address

	switch {
	case req.Index != nil:
		user, err := s.userService.GetProfile(userID)
		if err != nil {
			return nil, err
		}
		if *req.Index < 0 || *req.Index >= len(user.Addresses) {
			return nil, errors.New("address not found")
		}
		address = user.Addresses[*req.Index]

	case req.Address != nil:
		if err := utils.ValidateStruct(req.Address); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
		// New addresses are saved to the profile as well
		if _, err := s.userService.AddAddress(userID, req.Address); err != nil {
			return nil, err
		}
		address = models.Address{
			Name:    req.Address.Name,
			City:    req.Address.City,
			State:   req.Address.State,
			Zipcode: req.Address.Zipcode,
			Mobile:  req.Address.Mobile,
		}

	default:
		return nil, errors.New("either index or address is required")
	}

	s.mu.Lock()
	flow := s.flowFor(userID)
	flow.SelectAddress(address)
	s.mu.Unlock()

	return s.State(userID)
}

func (s *CheckoutService) SetShipping(userID uuid.UUID, req *SetShippingRequest) (*FlowState, error) {
	s.mu.Lock()
	flow := s.flowFor(userID)
	err := flow.SetShipping(req.Method)
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return s.State(userID)
}

func (s *CheckoutService) SetPayment(userID uuid.UUID, req *SetPaymentRequest) (*FlowState, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var card *models.PaymentCard
	if req.Method == models.PaymentMethodCard {
		if req.CardIndex == nil {
			return nil, errors.New("card selection is required")
		}
		user, err := s.userService.GetProfile(userID)
		if err != nil {
			return nil, err
		}
		if *req.CardIndex < 0 || *req.CardIndex >= len(user.Cards) {
			return nil, errors.New("card not found")
		}
		c := user.Cards[*req.CardIndex]
		card = &c
	}

	if req.Method == models.PaymentMethodUPI && req.UpiID == "" {
		return nil, errors.New("upi id is required")
	}

	s.mu.Lock()
	flow := s.flowFor(userID)
	err := flow.SetPaymentMethod(req.Method)
	if err == nil {
		if card != nil {
			flow.SelectCard(*card)
		}
		flow.SetUpiID(req.UpiID)
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return s.State(userID)
}

func (s *CheckoutService) Next(userID uuid.UUID) (*FlowState, error) {
	s.mu.Lock()
	flow := s.flowFor(userID)
	err := flow.Next()
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return s.State(userID)
}

func (s *CheckoutService) Back(userID uuid.UUID) (*FlowState, error) {
	s.mu.Lock()
	flow := s.flowFor(userID)
	flow.Back()
	s.mu.Unlock()

	return s.State(userID)
}

// PlaceOrder charges the selected payment method and hands off to the order
// service. Card and COD submit from the review step; UPI submits from the
// payment step, and a successful UPI order is written already paid.
//
// The placement snapshot is taken under the mutex; everything after works
// off the copy, so concurrent flow mutations cannot change an order mid
// submission.
func (s *CheckoutService) PlaceOrder(userID uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	flow := s.flowFor(userID)
	placement, err := flow.BeginPlacement()
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	defer func() {
		s.mu.Lock()
		flow.EndPlacement()
		s.mu.Unlock()
	}()

	user, err := s.userService.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, errors.New("account is blocked")
	}

	items, err := s.cartService.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("cart is empty")
	}

	totals := cartTotals(items, placement.Shipping)

	params := &PlaceOrderParams{
		User:          user,
		Items:         items,
		Address:       placement.Address,
		Shipping:      placement.Shipping,
		PaymentMethod: placement.Method,
		Card:          placement.Card,
		UpiID:         placement.UpiID,
		Status:        models.OrderStatusProcessing,
	}

	switch placement.Method {
	case models.PaymentMethodCard:
		result, err := s.paymentService.ChargeCard(totals.GrandTotal, placement.Card, user.ID.String())
		if err != nil {
			return nil, fmt.Errorf("payment failed: %w", err)
		}
		params.TransactionID = result.TransactionID

	case models.PaymentMethodUPI:
		result, err := s.paymentService.SimulateUpi(placement.UpiID)
		if err != nil {
			return nil, fmt.Errorf("payment failed: %w", err)
		}
		params.TransactionID = result.TransactionID
		params.Status = models.OrderStatusPaid
	}

	order, err := s.orderService.Create(params)
	if err != nil {
		return nil, err
	}

	// The flow is done; the next checkout starts fresh
	s.mu.Lock()
	delete(s.flows, userID)
	s.mu.Unlock()

	return order, nil
}

// flowFor must be called with the mutex held.
func (s *CheckoutService) flowFor(userID uuid.UUID) *checkout.Flow {
	flow, ok := s.flows[userID]
	if !ok {
		flow = checkout.NewFlow()
		s.flows[userID] = flow
	}
	return flow
}

func snapshotFlow(flow *checkout.Flow) *FlowState {
	return &FlowState{
		Step:          flow.Step(),
		Address:       flow.Address(),
		Shipping:      flow.Shipping(),
		PaymentMethod: flow.PaymentMethod(),
		CardSelected:  flow.Card() != nil,
		UpiID:         flow.UpiID(),
	}
}

func cartTotals(items []models.CartItem, shipping models.ShippingMethod) pricing.Totals {
	lines := make([]pricing.Line, 0, len(items))
	for i := range items {
		lines = append(lines, pricing.Line{Product: &items[i].Product, Quantity: items[i].Quantity})
	}
	return pricing.Compute(lines, shipping)
}
