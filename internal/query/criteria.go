// Package query is the core of the sales browser: it translates normalized
// filter requests into structured store queries, derives facet options, and
// computes pagination envelopes. It is store-agnostic; adapters translate the
// condition tree into their native query language.
package query

import "time"

// Field names the condition tree refers to. These are the logical record
// field names; adapters map them onto their storage schema.
const (
	FieldTransactionID   = "transactionId"
	FieldDate            = "date"
	FieldCustomerName    = "customerName"
	FieldPhoneNumber     = "phoneNumber"
	FieldGender          = "gender"
	FieldAge             = "age"
	FieldCustomerRegion  = "customerRegion"
	FieldProductCategory = "productCategory"
	FieldTags            = "tags"
	FieldQuantity        = "quantity"
	FieldTotalAmount     = "totalAmount"
	FieldPaymentMethod   = "paymentMethod"
)

// Condition is one node of a structured predicate tree. Using tagged variants
// instead of string-built predicates keeps user input out of the query
// language and makes the AND/OR composition explicit.
type Condition interface {
	isCondition()
}

// InSet requires the field value to be a member of Values. Exact match, not
// substring.
type InSet struct {
	Field  string
	Values []string
}

// IntRange requires Min <= field <= Max; a nil side leaves the range open on
// that side.
type IntRange struct {
	Field string
	Min   *int
	Max   *int
}

// TimeRange is the inclusive date counterpart of IntRange.
type TimeRange struct {
	Field string
	Min   *time.Time
	Max   *time.Time
}

// Contains requires the field to contain Term as a case-insensitive
// substring.
type Contains struct {
	Field string
	Term  string
}

// TokenMatch requires Token to appear as a whole comma-delimited segment of
// the field value (anchored at a comma or string boundary on both sides),
// case-insensitive. A record tagged "electronics-sale" does not match token
// "sale"; a record tagged "sale, electronics" does.
type TokenMatch struct {
	Field string
	Token string
}

// AnyOf is a disjunction over its conditions. Top-level conditions of a Query
// always conjoin, so an OR only ever exists as an explicit AnyOf node.
type AnyOf struct {
	Conditions []Condition
}

func (InSet) isCondition()      {}
func (IntRange) isCondition()   {}
func (TimeRange) isCondition()  {}
func (Contains) isCondition()   {}
func (TokenMatch) isCondition() {}
func (AnyOf) isCondition()      {}

// SortOrder is the direction of a single-key sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Query is a complete store query: a conjunction of conditions plus sort and
// paging. A count query carries conditions only.
type Query struct {
	Conditions []Condition
	SortBy     string
	SortOrder  SortOrder
	Skip       int64
	Limit      int64
}
