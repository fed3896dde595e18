package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retailpulse/backend/internal/query"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		page     int
		limit    int
		expected query.Pagination
	}{
		{
			name:  "exact multiple",
			total: 30, page: 1, limit: 10,
			expected: query.Pagination{
				CurrentPage: 1, TotalPages: 3, TotalRecords: 30,
				RecordsPerPage: 10, HasNextPage: true, HasPreviousPage: false,
			},
		},
		{
			name:  "partial last page",
			total: 25, page: 3, limit: 10,
			expected: query.Pagination{
				CurrentPage: 3, TotalPages: 3, TotalRecords: 25,
				RecordsPerPage: 10, HasNextPage: false, HasPreviousPage: true,
			},
		},
		{
			name:  "middle page has both neighbours",
			total: 25, page: 2, limit: 10,
			expected: query.Pagination{
				CurrentPage: 2, TotalPages: 3, TotalRecords: 25,
				RecordsPerPage: 10, HasNextPage: true, HasPreviousPage: true,
			},
		},
		{
			name:  "empty result set",
			total: 0, page: 1, limit: 10,
			expected: query.Pagination{
				CurrentPage: 1, TotalPages: 0, TotalRecords: 0,
				RecordsPerPage: 10, HasNextPage: false, HasPreviousPage: false,
			},
		},
		{
			name:  "page beyond the last is valid",
			total: 25, page: 99, limit: 10,
			expected: query.Pagination{
				CurrentPage: 99, TotalPages: 3, TotalRecords: 25,
				RecordsPerPage: 10, HasNextPage: false, HasPreviousPage: true,
			},
		},
		{
			name:  "single record",
			total: 1, page: 1, limit: 10,
			expected: query.Pagination{
				CurrentPage: 1, TotalPages: 1, TotalRecords: 1,
				RecordsPerPage: 10, HasNextPage: false, HasPreviousPage: false,
			},
		},
		{
			name:  "limit of one",
			total: 3, page: 2, limit: 1,
			expected: query.Pagination{
				CurrentPage: 2, TotalPages: 3, TotalRecords: 3,
				RecordsPerPage: 1, HasNextPage: true, HasPreviousPage: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, query.Paginate(tt.total, tt.page, tt.limit))
		})
	}
}
