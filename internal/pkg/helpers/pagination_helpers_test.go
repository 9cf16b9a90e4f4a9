package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dowadream/errand-service/internal/pkg/apperrors"
)

func TestValidatePageRequest(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		wantErr  bool
	}{
		{"first page", 0, 10, false},
		{"later page", 7, 25, false},
		{"max page size", 0, MaxPageSize, false},
		{"zero page size", 0, 0, true},
		{"negative page size", 0, -5, true},
		{"oversized page", 0, MaxPageSize + 1, true},
		{"negative page", -1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePageRequest(tt.page, tt.pageSize)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrBadRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(0, 10)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(10), limit)

	offset, limit = CalculateOffsetLimit(3, 25)
	assert.Equal(t, uint64(75), offset)
	assert.Equal(t, uint64(25), limit)
}

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		page       int
		pageSize   int
		wantPages  int
	}{
		{"exact fit", 30, 0, 10, 3},
		{"partial last page", 31, 1, 10, 4},
		{"single item", 1, 0, 10, 1},
		{"no items", 0, 0, 10, 0},
		{"page past end keeps totals", 5, 9, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.totalItems, tt.page, tt.pageSize)
			assert.Equal(t, tt.totalItems, info.TotalItems)
			assert.Equal(t, tt.page, info.Page)
			assert.Equal(t, tt.pageSize, info.PageSize)
			assert.Equal(t, tt.wantPages, info.TotalPages)
		})
	}
}
