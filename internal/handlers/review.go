// internal/handlers/review.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexura/storefront/internal/i18n"
	"github.com/nexura/storefront/internal/services"
	"github.com/nexura/storefront/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// GET /products/:id/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.reviewService.ListReviews(productID)
	if err != nil {
		utils.NotFoundResponse(c, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews": list,
		"count":   len(list),
	})
}

// POST /products/:id/reviews
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.reviewService.AddReview(productID, userID, &req)
	if err != nil {
		h.reviewError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewSubmitted),
		"reviews": product.Reviews,
		"rating":  product.Rating,
	})
}

// PUT /products/:id/reviews/:index
func (h *ReviewHandler) EditReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	index, ok := reviewIndex(c)
	if !ok {
		return
	}

	var req services.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.reviewService.EditReview(productID, userID, index, &req)
	if err != nil {
		h.reviewError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewUpdated),
		"reviews": product.Reviews,
		"rating":  product.Rating,
	})
}

// DELETE /products/:id/reviews/:index
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	index, ok := reviewIndex(c)
	if !ok {
		return
	}

	product, err := h.reviewService.DeleteReview(productID, userID, index)
	if err != nil {
		h.reviewError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewDeleted),
		"reviews": product.Reviews,
		"rating":  product.Rating,
	})
}

// POST /products/:id/reviews/:index/like
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	index, ok := reviewIndex(c)
	if !ok {
		return
	}

	product, err := h.reviewService.ToggleLike(productID, userID, index)
	if err != nil {
		h.reviewError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews": product.Reviews,
	})
}

func (h *ReviewHandler) reviewError(c *gin.Context, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "another user"):
		utils.ForbiddenResponse(c, msg)
	case strings.Contains(msg, "not found"):
		utils.NotFoundResponse(c, "review")
	default:
		utils.BadRequestResponse(c, msg, nil)
	}
}

func reviewIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		utils.BadRequestResponse(c, "Invalid review index", nil)
		return 0, false
	}
	return index, true
}
