package i18n

// Error message keys.
const (
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyValidationFailed   = "error.validation_failed"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyIdempotencyReused  = "error.idempotency_key_reused"

	ErrKeyBundleNotFound     = "error.bundle.not_found"
	ErrKeyBundleExists       = "error.bundle.exists"
	ErrKeyBundleSlugRequired = "error.bundle.slug_required"
	ErrKeyCatalogUnavailable = "error.catalog_unavailable"
	ErrKeyStorageUnavailable = "error.storage_unavailable"
)

// Success message keys.
const (
	SuccessKeyBundleDeleted = "success.bundle_deleted"
)
