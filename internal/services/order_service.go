// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nexura/storefront/internal/database"
	"github.com/nexura/storefront/internal/models"
	"github.com/nexura/storefront/internal/pricing"
	"github.com/nexura/storefront/internal/utils"
)

// Random order numbers can collide; regenerate a few times before giving up.
const maxOrderIDAttempts = 5

type OrderService struct {
	db                  *gorm.DB
	cartService         *CartService
	notificationService *NotificationService
}

type PlaceOrderParams struct {
	User          *models.User
	Items         []models.CartItem
	Address       models.Address
	Shipping      models.ShippingMethod
	PaymentMethod models.PaymentMethod
	Card          *models.PaymentCard
	UpiID         string
	TransactionID string
	Status        models.OrderStatus
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
	Reason string             `json:"reason,omitempty"`
}

func NewOrderService(db *gorm.DB, cartService *CartService, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		cartService:         cartService,
		notificationService: notificationService,
	}
}

// Create persists the order and clears the cart in one transaction. The
// cart lines are only released once the order row is durable.
func (s *OrderService) Create(params *PlaceOrderParams) (*models.Order, error) {
	if len(params.Items) == 0 {
		return nil, errors.New("cart is empty")
	}

	items := make(models.OrderItemList, 0, len(params.Items))
	lines := make([]pricing.Line, 0, len(params.Items))
	for i := range params.Items {
		item := &params.Items[i]
		items = append(items, models.OrderItem{
			ProductID: item.ProductID.String(),
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			Product:   item.Product,
		})
		lines = append(lines, pricing.Line{Product: &item.Product, Quantity: item.Quantity})
	}

	totals := pricing.Compute(lines, params.Shipping)

	orderID, err := s.uniqueOrderID()
	if err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = models.OrderStatusProcessing
	}

	order := &models.Order{
		OrderID:       orderID,
		UserID:        params.User.ID,
		Items:         items,
		Address:       params.Address,
		Shipping:      params.Shipping,
		PaymentMethod: params.PaymentMethod,
		Card:          maskCard(params.Card),
		UpiID:         params.UpiID,
		TransactionID: params.TransactionID,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Tax:           totals.Tax,
		Total:         totals.GrandTotal,
		Status:        status,
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return s.cartService.ClearCart(tx, params.User.ID)
	})
	if err != nil {
		return nil, err
	}

	// Queue the confirmation email off the request path
	go func(user *models.User, order *models.Order) {
		logEnqueueFailure("order_confirmation", order.OrderID,
			s.notificationService.EnqueueOrderConfirmation(user, order))
	}(params.User, order)

	return order, nil
}

func (s *OrderService) GetUserOrders(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "total", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// GetByOrderID resolves a customer-facing order number. A non-nil userID
// restricts the lookup to that user's orders.
func (s *OrderService) GetByOrderID(orderID string, userID *uuid.UUID) (*models.Order, error) {
	query := s.db.Where("order_id = ?", normalizeOrderID(orderID))
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) RequestCancellation(userID uuid.UUID, orderID string, req *CancelOrderRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	order, err := s.GetByOrderID(orderID, &userID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case models.OrderStatusDelivered:
		return nil, errors.New("delivered orders cannot be cancelled")
	case models.OrderStatusCancelled:
		return nil, errors.New("order is already cancelled")
	case models.OrderStatusCancelRequest:
		return nil, errors.New("cancellation already requested")
	}

	updates := map[string]interface{}{
		"status":        models.OrderStatusCancelRequest,
		"cancel_reason": req.Reason,
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	order.Status = models.OrderStatusCancelRequest
	order.CancelReason = req.Reason
	return order, nil
}

func (s *OrderService) AdminUpdateStatus(orderID string, req *UpdateOrderStatusRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Status.Valid() {
		return nil, errors.New("invalid order status")
	}

	order, err := s.GetByOrderID(orderID, nil)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.OrderStatusCancelled && req.Reason != "" {
		updates["cancel_reason"] = req.Reason
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	order.Status = req.Status

	// Let the customer know their order moved
	var user models.User
	if err := s.db.First(&user, order.UserID).Error; err == nil {
		go func(user models.User, order *models.Order) {
			logEnqueueFailure("order_status", order.OrderID,
				s.notificationService.EnqueueOrderStatusUpdate(&user, order))
		}(user, order)
	}

	return order, nil
}

func (s *OrderService) AdminListOrders(params utils.PaginationParams, status models.OrderStatus) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Preload("User")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if params.Search != "" {
		query = query.Where("order_id LIKE ?", "%"+strings.ToUpper(params.Search)+"%")
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "total", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

func (s *OrderService) uniqueOrderID() (string, error) {
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		orderID, err := utils.GenerateOrderID()
		if err != nil {
			return "", fmt.Errorf("failed to generate order id: %w", err)
		}

		var count int64
		if err := s.db.Model(&models.Order{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check order id: %w", err)
		}
		if count == 0 {
			return orderID, nil
		}
	}
	return "", errors.New("could not generate a unique order id")
}

// maskCard keeps only the last four digits on the order snapshot.
func maskCard(card *models.PaymentCard) *models.PaymentCard {
	if card == nil {
		return nil
	}

	number := card.Number
	if len(number) > 4 {
		number = "**** **** **** " + number[len(number)-4:]
	}

	return &models.PaymentCard{
		Number: number,
		Name:   card.Name,
		Expiry: card.Expiry,
	}
}

// logEnqueueFailure records a lost notification. The order itself already
// succeeded, so the failure is logged rather than surfaced to the caller.
func logEnqueueFailure(kind, orderID string, err error) {
	if err == nil {
		return
	}
	logrus.WithFields(logrus.Fields{
		"email":    kind,
		"order_id": orderID,
	}).WithError(err).Error("Failed to enqueue notification")
}

// normalizeOrderID tolerates the leading "#" being dropped in URLs.
func normalizeOrderID(orderID string) string {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return orderID
	}
	if !strings.HasPrefix(orderID, "#") {
		orderID = "#" + orderID
	}
	return strings.ToUpper(orderID)
}
