package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to localized messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"       // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"  // no permission
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY" // store owner only

	// ==================== Password recovery (RESET_) ====================
	ResetTokenInvalid    = "RESET_TOKEN_INVALID"    // invalid or expired token
	ResetPasswordMismatch = "RESET_PASSWORD_MISMATCH" // confirmation does not match

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Stores (STORE_) ====================
	StoreNotFound   = "STORE_NOT_FOUND"
	StoreSlugExists = "STORE_SLUG_EXISTS"

	// ==================== Hearts (HEART_) ====================
	HeartNotFound = "HEART_NOT_FOUND"

	// ==================== Email (EMAIL_) ====================
	EmailDeliveryFailed = "EMAIL_DELIVERY_FAILED" // mail relay error

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
