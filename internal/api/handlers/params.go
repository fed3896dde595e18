package handlers

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/retailpulse/backend/internal/query"
)

// Defaults and bounds applied at the normalization boundary.
const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 1000
)

// Accepted date layouts for dateFrom/dateTo.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Sort fields a request may name; anything else falls back to the default.
var sortableParams = map[string]bool{
	query.FieldDate:            true,
	query.FieldTotalAmount:     true,
	query.FieldQuantity:        true,
	query.FieldAge:             true,
	query.FieldCustomerName:    true,
	query.FieldProductCategory: true,
	query.FieldTransactionID:   true,
}

// ParseFilter normalizes raw query parameters into a typed filter. Malformed
// or out-of-range values are recovered by dropping the offending constraint
// to unset, never by rejecting the request: a bad ageMin simply stops
// filtering on age. Inverted ranges (min > max, from > to) drop both ends,
// since the pair is inconsistent rather than either value alone.
func ParseFilter(params url.Values) query.Filter {
	f := query.Filter{
		SearchTerm:      firstOf(params, "searchTerm", "search"),
		CustomerRegion:  stringList(params, "customerRegion"),
		Gender:          stringList(params, "gender"),
		ProductCategory: stringList(params, "productCategory"),
		Tags:            stringList(params, "tags"),
		PaymentMethod:   stringList(params, "paymentMethod"),
		SortOrder:       query.SortDesc,
		Page:            defaultPage,
		Limit:           defaultPageSize,
	}

	f.AgeMin = nonNegativeInt(params.Get("ageMin"))
	f.AgeMax = nonNegativeInt(params.Get("ageMax"))
	if f.AgeMin != nil && f.AgeMax != nil && *f.AgeMin > *f.AgeMax {
		f.AgeMin, f.AgeMax = nil, nil
	}

	f.DateFrom = parseDate(params.Get("dateFrom"))
	f.DateTo = parseDate(params.Get("dateTo"))
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		f.DateFrom, f.DateTo = nil, nil
	}

	f.SortBy = query.FieldDate
	if sortBy := params.Get("sortBy"); sortableParams[sortBy] {
		f.SortBy = sortBy
	}
	if params.Get("sortOrder") == "asc" {
		f.SortOrder = query.SortAsc
	}

	if page, err := strconv.Atoi(params.Get("page")); err == nil && page >= 1 {
		f.Page = page
	}

	// The dashboard sends pageSize; limit is the canonical name and wins.
	limitParam := firstOf(params, "limit", "pageSize")
	if limit, err := strconv.Atoi(limitParam); err == nil && limit >= 1 {
		if limit > maxPageSize {
			limit = maxPageSize
		}
		f.Limit = limit
	}

	return f
}

// firstOf returns the first non-empty value among the named parameters.
func firstOf(params url.Values, names ...string) string {
	for _, name := range names {
		if v := params.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// stringList collects every occurrence of a repeated parameter, dropping
// blanks. A single occurrence yields a one-element selection.
func stringList(params url.Values, name string) []string {
	var values []string
	for _, v := range params[name] {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func nonNegativeInt(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
