package server

// Error codes surfaced in the response envelope
const (
	codeTokenMissing       = "AUTH_TOKEN_MISSING"
	codeTokenInvalid       = "AUTH_TOKEN_INVALID"
	codeAuthUserNotFound   = "AUTH_USER_NOT_FOUND"
	codeForbidden          = "FORBIDDEN"
	codeValidation         = "VALIDATION_ERROR"
	codeDuplicateEmail     = "DUPLICATE_EMAIL"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeUserNotFound       = "USER_NOT_FOUND"
	codeProductNotFound    = "PRODUCT_NOT_FOUND"
	codeInternal           = "INTERNAL_SERVER_ERROR"
)
