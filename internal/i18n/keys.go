// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthAccountDeleted     = "auth.account_deleted"
	KeyAuthAccountBlocked     = "auth.account_blocked"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserBlocked        = "user.blocked"
	KeyUserAddressAdded   = "user.address_added"
	KeyUserCardAdded      = "user.card_added"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Cart
	KeyCartItemAdded   = "cart.item_added"
	KeyCartItemRemoved = "cart.item_removed"
	KeyCartNotFound    = "cart.not_found"
	KeyCartEmpty       = "cart.empty"

	// Checkout
	KeyCheckoutAddressRequired = "checkout.address_required"
	KeyCheckoutNotReady        = "checkout.not_ready"
	KeyCheckoutInFlight        = "checkout.in_flight"

	// Orders
	KeyOrderPlaced          = "order.placed"
	KeyOrderNotFound        = "order.not_found"
	KeyOrderCancelRequested = "order.cancel_requested"
	KeyOrderStatusUpdated   = "order.status_updated"

	// Reviews
	KeyReviewSubmitted = "review.submitted"
	KeyReviewUpdated   = "review.updated"
	KeyReviewDeleted   = "review.deleted"
	KeyReviewNotFound  = "review.not_found"
	KeyReviewNotOwner  = "review.not_owner"

	// Payments
	KeyPaymentSuccess        = "payment.success"
	KeyPaymentFailed         = "payment.failed"
	KeyPaymentMethodRequired = "payment.method_required"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"
	KeyAdminAccessDenied  = "admin.access_denied"
	KeyAdminUserBlocked   = "admin.user_blocked"
	KeyAdminUserUnblocked = "admin.user_unblocked"
	KeyAdminUserDeleted   = "admin.user_deleted"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationEmail    = "validation.invalid_email"
	KeyValidationPassword = "validation.invalid_password"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"

	// Notifications
	KeyNotificationSent   = "notification.sent"
	KeyNotificationFailed = "notification.failed"
)
