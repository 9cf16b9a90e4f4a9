package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dowadream/errand-service/internal/app/models/dto"
	"github.com/dowadream/errand-service/internal/pkg/apperrors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 0 // page indices are 0-based
)

// ValidatePageRequest checks pagination parameters supplied by a caller.
// Page size must be positive; page indices below zero are rejected rather
// than clamped so callers notice broken arithmetic.
func ValidatePageRequest(page, pageSize int) error {
	if pageSize <= 0 {
		return apperrors.NewBadRequestError("page size must be positive")
	}
	if pageSize > MaxPageSize {
		return apperrors.NewBadRequestError("page size exceeds maximum of " + strconv.Itoa(MaxPageSize))
	}
	if page < 0 {
		return apperrors.NewBadRequestError("page index must not be negative")
	}
	return nil
}

// CalculateOffsetLimit converts a 0-based page index into a SQL offset/limit pair.
func CalculateOffsetLimit(page, pageSize int) (offset uint64, limit uint64) {
	return uint64(page) * uint64(pageSize), uint64(pageSize)
}

// NewPaginationInfo creates the standard PaginationInfo DTO.
// totalItems is the matching row count after filters, before pagination.
func NewPaginationInfo(totalItems int64, page, pageSize int) dto.PaginationInfo {
	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}

	return dto.PaginationInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// ParsePaginationParams extracts pagination parameters from the request,
// falling back to defaults when absent or malformed.
func ParsePaginationParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = DefaultPage
	}

	pageSize, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	return page, pageSize
}
