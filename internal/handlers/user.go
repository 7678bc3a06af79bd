// internal/handlers/user.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexura/storefront/internal/i18n"
	"github.com/nexura/storefront/internal/services"
	"github.com/nexura/storefront/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

type setBlockedRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

type deleteUserRequest struct {
	Reason string `json:"reason"`
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// PUT /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.userError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    user,
	})
}

// POST /users/me/addresses
func (h *UserHandler) AddAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.AddAddress(userID, &req)
	if err != nil {
		h.userError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyUserAddressAdded),
		"addresses": user.Addresses,
	})
}

// POST /users/me/cards
func (h *UserHandler) AddCard(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.AddCard(userID, &req)
	if err != nil {
		h.userError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserCardAdded),
		"cards":   user.Cards,
	})
}

// GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params))
}

// PUT /admin/users/:id/block
func (h *UserHandler) SetBlocked(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req setBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, err := h.userService.SetBlocked(userID, *req.Blocked)
	if err != nil {
		h.userError(c, err)
		return
	}

	messageKey := i18n.KeyAdminUserUnblocked
	if user.IsBlocked {
		messageKey = i18n.KeyAdminUserBlocked
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, messageKey),
		"user":    user,
	})
}

// DELETE /admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Reason = ""
	}

	if err := h.userService.DeleteUser(userID, req.Reason); err != nil {
		h.userError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminUserDeleted),
	})
}

func (h *UserHandler) userError(c *gin.Context, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		utils.NotFoundResponse(c, "user")
	case strings.Contains(msg, "admin account"):
		utils.ForbiddenResponse(c, msg)
	default:
		utils.BadRequestResponse(c, msg, nil)
	}
}
