package dto

import "time"

// APIResponse is the standard envelope for successful responses
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse wraps data in the standard response envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

// PaginationInfo carries page metadata for list responses.
// Page is the 0-based page index the caller requested.
type PaginationInfo struct {
	Page       int   `json:"page" example:"0"`
	PageSize   int   `json:"pageSize" example:"10"`
	TotalItems int64 `json:"totalItems" example:"42"`
	TotalPages int   `json:"totalPages" example:"5"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
