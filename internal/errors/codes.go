package errors

// Error code constants returned in the "error" field of failed responses.
// Format: CATEGORY_SPECIFIC_DETAIL. Frontends map these codes to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or tampered token
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email
	AuthUserNotFound       = "AUTH_USER_NOT_FOUND"      // token subject no longer exists

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non-numeric path id
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // value out of range
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing required field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // entity absent
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // unique constraint hit
	ResourceConflict      = "RESOURCE_CONFLICT"       // conflicting state

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"       // review absent or other tenant
	ReviewInvalidRating = "REVIEW_INVALID_RATING"  // rating outside 1-5

	// ==================== Responses (RESPONSE_) ====================
	ResponseNotFound = "RESPONSE_NOT_FOUND" // response absent or other tenant

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // storage failure
)
