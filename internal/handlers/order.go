// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nexura/storefront/internal/i18n"
	"github.com/nexura/storefront/internal/models"
	"github.com/nexura/storefront/internal/services"
	"github.com/nexura/storefront/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	orders, total, err := h.orderService.GetUserOrders(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// GET /orders/:orderId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByOrderID(c.Param("orderId"), &userID)
	if err != nil {
		utils.NotFoundResponse(c, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// GET /track/:orderId
//
// Tracking is public: anyone holding the "#" order number can look the
// order up, so the lookup is not scoped to a user.
func (h *OrderHandler) TrackOrder(c *gin.Context) {
	order, err := h.orderService.GetByOrderID(c.Param("orderId"), nil)
	if err != nil {
		utils.NotFoundResponse(c, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// POST /orders/:orderId/cancel
func (h *OrderHandler) RequestCancellation(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.RequestCancellation(userID, c.Param("orderId"), &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderCancelRequested),
		"order":   order,
	})
}

// GET /admin/orders
func (h *OrderHandler) AdminListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.OrderStatus(c.Query("status"))

	orders, total, err := h.orderService.AdminListOrders(params, status)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// PUT /admin/orders/:orderId/status
func (h *OrderHandler) AdminUpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.AdminUpdateStatus(c.Param("orderId"), &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderStatusUpdated),
		"order":   order,
	})
}
