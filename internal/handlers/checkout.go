// internal/handlers/checkout.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexura/storefront/internal/i18n"
	"github.com/nexura/storefront/internal/services"
	"github.com/nexura/storefront/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// GET /checkout
func (h *CheckoutHandler) State(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.checkoutService.State(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"checkout": state,
	})
}

// POST /checkout/address
func (h *CheckoutHandler) SelectAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	state, err := h.checkoutService.SelectAddress(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"checkout": state,
	})
}

// POST /checkout/shipping
func (h *CheckoutHandler) SetShipping(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SetShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	state, err := h.checkoutService.SetShipping(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"checkout": state,
	})
}

// POST /checkout/payment
func (h *CheckoutHandler) SetPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	state, err := h.checkoutService.SetPayment(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"checkout": state,
	})
}

// POST /checkout/next
func (h *CheckoutHandler) Next(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.checkoutService.Next(userID)
	if err != nil {
		if strings.Contains(err.Error(), "address") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCheckoutAddressRequired), nil)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"checkout": state,
	})
}

// POST /checkout/back
func (h *CheckoutHandler) Back(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.checkoutService.Back(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"checkout": state,
	})
}

// POST /checkout/place-order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, err := h.checkoutService.PlaceOrder(userID)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "in progress"):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCheckoutInFlight))
		case strings.Contains(msg, "payment failed"):
			utils.ErrorResponse(c, 402, "PAYMENT_FAILED", i18n.T(lang, i18n.KeyPaymentFailed), msg)
		case strings.Contains(msg, "cart is empty"):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
		default:
			utils.BadRequestResponse(c, msg, nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderPlaced),
		"order":   order,
	})
}
