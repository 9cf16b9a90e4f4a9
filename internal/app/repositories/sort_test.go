package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrandSortColumn(t *testing.T) {
	tests := []struct {
		sortBy string
		clause string
		ok     bool
	}{
		{"latest", "e.created_date DESC", true},
		{"highestPrice", "e.price DESC", true},
		{"highestHourlyRate", "e.price / e.estimated_time DESC", true},
		{"closestDeadline", "e.deadline ASC", true},
		{"", "", false},
		{"price", "", false},
		{"Latest", "", false},
	}

	for _, tt := range tests {
		t.Run("sortBy="+tt.sortBy, func(t *testing.T) {
			clause, ok := ErrandSortColumn(tt.sortBy)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.clause, clause)
		})
	}
}

func TestOfferingSortColumn(t *testing.T) {
	tests := []struct {
		sortBy string
		clause string
		ok     bool
	}{
		{"latest", "so.created_date DESC", true},
		{"highestRating", "average_rating DESC", true},
		{"mostTasks", "so.completed_tasks DESC", true},
		{"", "", false},
		{"rating", "", false},
	}

	for _, tt := range tests {
		t.Run("sortBy="+tt.sortBy, func(t *testing.T) {
			clause, ok := OfferingSortColumn(tt.sortBy)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.clause, clause)
		})
	}
}
