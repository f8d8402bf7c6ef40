package dto

// Response statuses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Response is the envelope of every JSON response. Successful responses carry
// Data; errors carry Code, Message and RequestID.
type Response struct {
	Status    string             `json:"status"`
	Data      any                `json:"data,omitempty"`
	Code      string             `json:"code,omitempty"`
	Message   string             `json:"message,omitempty"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail names one field that failed binding validation
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{Status: StatusOK, Data: data}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Status:    StatusError,
		Code:      code,
		Message:   message,
		RequestID: requestID,
	}
}

// NewValidationErrorResponse creates a validation error response with field details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponse(ErrCodeValidation, message, requestID)
	resp.Details = details
	return resp
}

// PairQuery selects one (supplier, party) pair from query parameters
type PairQuery struct {
	SupplierID int64 `form:"supplier_id" binding:"required,min=1"`
	PartyID    int64 `form:"party_id" binding:"required,min=1"`
}

// IDRequest represents a request with a numeric id path parameter
type IDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// TotalResponse carries a single summed amount
type TotalResponse struct {
	Total int64 `json:"total"`
}
