package response

import "net/http"

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Accounts ──────────────────────────────────────────────────────
	ErrDuplicateEmail     ErrCode = "DUPLICATE_EMAIL"
	ErrNotRegistered      ErrCode = "NOT_REGISTERED"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"

	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired    ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid     ErrCode = "TOKEN_INVALID"
	ErrPrincipalMissing ErrCode = "PRINCIPAL_MISSING"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrInvalidID  ErrCode = "INVALID_ID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrDuplicatePurchase ErrCode = "DUPLICATE_PURCHASE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

type errEntry struct {
	status  int
	message string
}

// The message is what clients match on; keep it stable.
var errTable = map[ErrCode]errEntry{
	ErrDuplicateEmail:     {http.StatusBadRequest, "User exists already with this email"},
	ErrNotRegistered:      {http.StatusBadRequest, "Signup first"},
	ErrInvalidCredentials: {http.StatusBadRequest, "Enter Valid Password"},

	ErrTokenRequired:    {http.StatusUnauthorized, "Token Not found"},
	ErrTokenInvalid:     {http.StatusUnauthorized, "Invalid token"},
	ErrPrincipalMissing: {http.StatusForbidden, "email missing"},

	ErrForbidden: {http.StatusForbidden, "Unauthorized"},

	ErrValidation: {http.StatusBadRequest, "Validation failed"},
	ErrInvalidID:  {http.StatusBadRequest, "Invalid id"},

	ErrNotFound:          {http.StatusNotFound, "Not Found"},
	ErrDuplicatePurchase: {http.StatusBadRequest, "Already Purchased"},

	ErrRateLimitExceeded: {http.StatusTooManyRequests, "Too many requests, try again later"},

	ErrInternal: {http.StatusInternalServerError, "Internal Error"},
}

// GetMessage returns the human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	if e, ok := errTable[code]; ok {
		return e.message
	}
	return errTable[ErrInternal].message
}

// StatusOf returns the HTTP status for a given error code.
func StatusOf(code ErrCode) int {
	if e, ok := errTable[code]; ok {
		return e.status
	}
	return http.StatusInternalServerError
}
