package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself. Domain codes pass through
// unchanged.
const (
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeServiceUnhealthy = "SERVICE_UNAVAILABLE"
)

// Ledger and report codes
const (
	ErrCodeAmbiguous              = "AMBIGUOUS"
	ErrCodeAlreadyExists          = "ALREADY_EXISTS"
	ErrCodeDuplicateBill          = "DUPLICATE_BILL"
	ErrCodeDuplicateMemo          = "DUPLICATE_MEMO"
	ErrCodeBillNotFound           = "BILL_NOT_FOUND"
	ErrCodeDataError              = "DATA_ERROR"
	ErrCodePartPaymentAlreadyUsed = "PART_PAYMENT_ALREADY_USED"
	ErrCodeForeignKeyViolation    = "FOREIGN_KEY_VIOLATION"
	ErrCodeConcurrencyConflict    = "CONCURRENCY_CONFLICT"
	ErrCodeInvalidState           = "INVALID_STATE"
	ErrCodePrintingDisabled       = "PRINTING_DISABLED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeServiceUnhealthy: http.StatusServiceUnavailable,

	// Lookups
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeBillNotFound: http.StatusNotFound,
	ErrCodeAmbiguous:    http.StatusConflict,

	// Uniqueness and references
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeDuplicateBill:       http.StatusConflict,
	ErrCodeDuplicateMemo:       http.StatusConflict,
	ErrCodeForeignKeyViolation: http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Settlement rule violations
	ErrCodePartPaymentAlreadyUsed: http.StatusUnprocessableEntity,
	ErrCodeDataError:              http.StatusUnprocessableEntity,
	ErrCodeInvalidState:           http.StatusUnprocessableEntity,

	ErrCodePrintingDisabled: http.StatusNotImplemented,
}

// GetHTTPStatus returns the HTTP status code for an error code. Codes not in
// the table that start with INVALID_ are input errors; anything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
