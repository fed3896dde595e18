package query

// Pagination is the navigation envelope returned alongside every result
// page.
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalRecords    int64 `json:"totalRecords"`
	RecordsPerPage  int   `json:"recordsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// Paginate computes page bounds and navigation flags for a result set of
// totalRecords records. The requested page is not clamped against the last
// page: asking for a page past the end is valid and simply has no next page.
func Paginate(totalRecords int64, page, limit int) Pagination {
	totalPages := 0
	if totalRecords > 0 {
		totalPages = int((totalRecords + int64(limit) - 1) / int64(limit))
	}

	return Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalRecords:    totalRecords,
		RecordsPerPage:  limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
