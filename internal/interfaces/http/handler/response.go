package handler

import "github.com/khata/backend/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Status string `json:"status" example:"ok"`
	Data   T      `json:"data,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Status    string                 `json:"status" example:"error"`
	Code      string                 `json:"code" example:"DUPLICATE_BILL"`
	Message   string                 `json:"message" example:"Bill 1021 already registered on 2024-04-01"`
	RequestID string                 `json:"request_id" example:"3f0c2a4e-8f5e-4b8e-9a51-2b1d6c0e7a10"`
	Details   []dto.ValidationDetail `json:"details,omitempty"`
}
