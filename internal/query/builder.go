package query

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/retailpulse/backend/pkg/errors"
)

// Filter is the normalized request shape consumed by Build. The parameter
// normalization layer is responsible for defaults and for dropping malformed
// values; Build fails fast on anything normalization should have caught
// rather than coercing.
type Filter struct {
	SearchTerm      string
	CustomerRegion  []string
	Gender          []string
	ProductCategory []string
	Tags            []string
	PaymentMethod   []string
	AgeMin          *int
	AgeMax          *int
	DateFrom        *time.Time
	DateTo          *time.Time
	SortBy          string
	SortOrder       SortOrder
	Page            int
	Limit           int
}

// Fields a request may sort on.
var sortableFields = map[string]bool{
	FieldDate:            true,
	FieldTotalAmount:     true,
	FieldQuantity:        true,
	FieldAge:             true,
	FieldCustomerName:    true,
	FieldProductCategory: true,
	FieldTransactionID:   true,
}

// Build translates a filter into a data query and a structurally identical
// count query (conditions only, no sort or paging).
//
// All active filters conjoin. The search term and the tag selection each
// expand to an internal disjunction; when both are present the two OR groups
// are combined as independent top-level conditions, so a record must satisfy
// both. The original implementation let the later group silently overwrite
// the former; the condition tree makes that collision impossible.
func Build(f Filter) (Query, Query, error) {
	if f.Page < 1 {
		return Query{}, Query{}, apperrors.NewValidationError(fmt.Sprintf("page must be >= 1, got %d", f.Page))
	}
	if f.Limit < 1 {
		return Query{}, Query{}, apperrors.NewValidationError(fmt.Sprintf("limit must be >= 1, got %d", f.Limit))
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = FieldDate
	}
	if !sortableFields[sortBy] {
		return Query{}, Query{}, apperrors.NewValidationError(fmt.Sprintf("cannot sort by %q", sortBy))
	}

	// Ascending only on an explicit "asc"; anything else sorts descending.
	order := SortDesc
	if f.SortOrder == SortAsc {
		order = SortAsc
	}

	var conditions []Condition

	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		conditions = append(conditions, AnyOf{Conditions: []Condition{
			Contains{Field: FieldCustomerName, Term: term},
			Contains{Field: FieldPhoneNumber, Term: term},
		}})
	}

	if len(f.Tags) > 0 {
		tokens := make([]Condition, 0, len(f.Tags))
		for _, tag := range f.Tags {
			tokens = append(tokens, TokenMatch{Field: FieldTags, Token: tag})
		}
		conditions = append(conditions, AnyOf{Conditions: tokens})
	}

	if len(f.CustomerRegion) > 0 {
		conditions = append(conditions, InSet{Field: FieldCustomerRegion, Values: f.CustomerRegion})
	}
	if len(f.Gender) > 0 {
		conditions = append(conditions, InSet{Field: FieldGender, Values: f.Gender})
	}
	if len(f.ProductCategory) > 0 {
		conditions = append(conditions, InSet{Field: FieldProductCategory, Values: f.ProductCategory})
	}
	if len(f.PaymentMethod) > 0 {
		conditions = append(conditions, InSet{Field: FieldPaymentMethod, Values: f.PaymentMethod})
	}

	if f.AgeMin != nil || f.AgeMax != nil {
		conditions = append(conditions, IntRange{Field: FieldAge, Min: f.AgeMin, Max: f.AgeMax})
	}
	if f.DateFrom != nil || f.DateTo != nil {
		conditions = append(conditions, TimeRange{Field: FieldDate, Min: f.DateFrom, Max: f.DateTo})
	}

	data := Query{
		Conditions: conditions,
		SortBy:     sortBy,
		SortOrder:  order,
		Skip:       int64(f.Page-1) * int64(f.Limit),
		Limit:      int64(f.Limit),
	}
	count := Query{Conditions: conditions}

	return data, count, nil
}
