package dto

import "time"

// APIResponse is the standard envelope for successful API responses.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp,omitempty" example:"2026-09-01T12:01:05.123Z"`
}

// SuccessResponse carries a bare confirmation message.
type SuccessResponse struct {
	Message string `json:"message"`
}
