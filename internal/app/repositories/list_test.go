package repositories

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func i64Ptr(i int64) *int64   { return &i }

func TestErrandListQueries(t *testing.T) {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	tests := []struct {
		name       string
		filter     ErrandFilter
		orderBy    string
		wantCount  string
		wantSelect string
		wantArgs   []interface{}
	}{
		{
			name:       "no filters",
			filter:     ErrandFilter{Page: 0, PageSize: 10},
			wantCount:  "SELECT COUNT(*) FROM errands e WHERE (1=1)",
			wantSelect: "SELECT " + errandColumns + " FROM errands e WHERE (1=1) LIMIT 10 OFFSET 0",
			wantArgs:   nil,
		},
		{
			name:       "location only",
			filter:     ErrandFilter{Location: strPtr("Seoul"), Page: 0, PageSize: 10},
			wantCount:  "SELECT COUNT(*) FROM errands e WHERE (e.location = $1)",
			wantSelect: "SELECT " + errandColumns + " FROM errands e WHERE (e.location = $1) LIMIT 10 OFFSET 0",
			wantArgs:   []interface{}{"Seoul"},
		},
		{
			name:       "category only",
			filter:     ErrandFilter{CategoryID: i64Ptr(3), Page: 0, PageSize: 10},
			wantCount:  "SELECT COUNT(*) FROM errands e WHERE (e.category_id = $1)",
			wantSelect: "SELECT " + errandColumns + " FROM errands e WHERE (e.category_id = $1) LIMIT 10 OFFSET 0",
			wantArgs:   []interface{}{int64(3)},
		},
		{
			name:       "location and category with sort and paging",
			filter:     ErrandFilter{Location: strPtr("Busan"), CategoryID: i64Ptr(7), Page: 2, PageSize: 5},
			orderBy:    "e.price DESC",
			wantCount:  "SELECT COUNT(*) FROM errands e WHERE (e.location = $1 AND e.category_id = $2)",
			wantSelect: "SELECT " + errandColumns + " FROM errands e WHERE (e.location = $1 AND e.category_id = $2) ORDER BY e.price DESC LIMIT 5 OFFSET 10",
			wantArgs:   []interface{}{"Busan", int64(7)},
		},
		{
			name:       "deadline sort",
			filter:     ErrandFilter{Page: 0, PageSize: 10},
			orderBy:    "e.deadline ASC",
			wantCount:  "SELECT COUNT(*) FROM errands e WHERE (1=1)",
			wantSelect: "SELECT " + errandColumns + " FROM errands e WHERE (1=1) ORDER BY e.deadline ASC LIMIT 10 OFFSET 0",
			wantArgs:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			countQuery, selectQuery := errandListQueries(sb, tt.filter, tt.orderBy)

			countSQL, countArgs, err := countQuery.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, countSQL)
			assert.Equal(t, tt.wantArgs, countArgs)

			selectSQL, selectArgs, err := selectQuery.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSelect, selectSQL)
			assert.Equal(t, tt.wantArgs, selectArgs)
		})
	}
}

func TestOfferingListQueries(t *testing.T) {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	tests := []struct {
		name       string
		filter     OfferingFilter
		orderBy    string
		wantCount  string
		wantSelect string
		wantArgs   []interface{}
	}{
		{
			name:       "no filters",
			filter:     OfferingFilter{Page: 0, PageSize: 10},
			wantCount:  "SELECT COUNT(*) FROM service_offerings so WHERE (1=1)",
			wantSelect: "SELECT " + offeringColumns + " FROM service_offerings so WHERE (1=1) LIMIT 10 OFFSET 0",
			wantArgs:   nil,
		},
		{
			name:       "location and category",
			filter:     OfferingFilter{Location: strPtr("Seoul"), CategoryID: i64Ptr(4), Page: 1, PageSize: 20},
			wantCount:  "SELECT COUNT(*) FROM service_offerings so WHERE (so.location = $1 AND so.category_id = $2)",
			wantSelect: "SELECT " + offeringColumns + " FROM service_offerings so WHERE (so.location = $1 AND so.category_id = $2) LIMIT 20 OFFSET 20",
			wantArgs:   []interface{}{"Seoul", int64(4)},
		},
		{
			name:       "rating sort",
			filter:     OfferingFilter{Page: 0, PageSize: 10},
			orderBy:    "average_rating DESC",
			wantCount:  "SELECT COUNT(*) FROM service_offerings so WHERE (1=1)",
			wantSelect: "SELECT " + offeringColumns + " FROM service_offerings so WHERE (1=1) ORDER BY average_rating DESC LIMIT 10 OFFSET 0",
			wantArgs:   nil,
		},
		{
			name:       "most tasks sort",
			filter:     OfferingFilter{Page: 0, PageSize: 10},
			orderBy:    "so.completed_tasks DESC",
			wantCount:  "SELECT COUNT(*) FROM service_offerings so WHERE (1=1)",
			wantSelect: "SELECT " + offeringColumns + " FROM service_offerings so WHERE (1=1) ORDER BY so.completed_tasks DESC LIMIT 10 OFFSET 0",
			wantArgs:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			countQuery, selectQuery := offeringListQueries(sb, tt.filter, tt.orderBy)

			countSQL, countArgs, err := countQuery.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, countSQL)
			assert.Equal(t, tt.wantArgs, countArgs)

			selectSQL, selectArgs, err := selectQuery.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSelect, selectSQL)
			assert.Equal(t, tt.wantArgs, selectArgs)
		})
	}
}

// The per-row rating column backs the highestRating sort; reviewless
// offerings must rate as zero so they order below any reviewed one.
func TestOfferingColumnsRatingDefaultsToZero(t *testing.T) {
	assert.Contains(t, offeringColumns,
		"COALESCE((SELECT AVG(r.rating) FROM reviews r WHERE r.service_offering_id = so.id), 0) AS average_rating")
}
