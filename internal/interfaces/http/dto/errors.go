package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors carry their own codes; these
// cover failures that never reach the application layer.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "PERMISSION_DENIED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps domain and transport error codes to HTTP status
// codes. Codes absent from the map fall through to prefix rules in
// GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	// Transport errors
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeConflict:    http.StatusConflict,
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Identity and token errors
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
	"PERMISSION_DENIED":   http.StatusForbidden,
	"NOT_A_MEMBER":        http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,

	// Resource errors
	"NOT_FOUND":      http.StatusNotFound,
	"UNKNOWN_ENTITY": http.StatusNotFound,
	"USER_NOT_FOUND": http.StatusNotFound,

	// Conflicts
	"ALREADY_EXISTS":           http.StatusConflict,
	"EMAIL_TAKEN":              http.StatusConflict,
	"CONCURRENT_MODIFICATION":  http.StatusConflict,
	"ANIMAL_ALREADY_FOSTERED":  http.StatusConflict,
	"ALREADY_TERMINAL":         http.StatusConflict,
	"APPLICATION_NOT_APPROVED": http.StatusConflict,

	// Input errors
	"INVALID_INPUT":         http.StatusBadRequest,
	"ORGANIZATION_REQUIRED": http.StatusBadRequest,

	// Business rule errors -> 422 Unprocessable Entity
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"APPLICANT_FLAGGED":  http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code. Domain
// validation codes share common prefixes, so unmapped codes fall back to
// 422 when they match one, otherwise 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	for _, prefix := range []string{"INVALID_", "ALREADY_", "EMPTY_"} {
		if strings.HasPrefix(code, prefix) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}
