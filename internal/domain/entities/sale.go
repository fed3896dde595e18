package entities

import (
	"strings"
	"time"
)

// Sale represents a single retail transaction record. Records are created
// only by bulk ingestion and are never mutated afterwards.
type Sale struct {
	TransactionID      string    `json:"transactionId" bson:"transactionId"`
	Date               time.Time `json:"date" bson:"date"`
	CustomerID         string    `json:"customerId" bson:"customerId"`
	CustomerName       string    `json:"customerName" bson:"customerName"`
	PhoneNumber        string    `json:"phoneNumber" bson:"phoneNumber"`
	Gender             string    `json:"gender" bson:"gender"`
	Age                int       `json:"age" bson:"age"`
	CustomerRegion     string    `json:"customerRegion" bson:"customerRegion"`
	ProductID          string    `json:"productId" bson:"productId"`
	ProductCategory    string    `json:"productCategory" bson:"productCategory"`
	Tags               string    `json:"tags" bson:"tags"`
	Quantity           int       `json:"quantity" bson:"quantity"`
	TotalAmount        float64   `json:"totalAmount" bson:"totalAmount"`
	DiscountPercentage float64   `json:"discountPercentage" bson:"discountPercentage"`
	PaymentMethod      string    `json:"paymentMethod" bson:"paymentMethod"`
	EmployeeName       string    `json:"employeeName" bson:"employeeName"`
}

// Gender enum values as stored.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// SplitTags decomposes a stored comma-separated tags string into its atomic
// tag values: segments are trimmed and empty segments discarded. Casing is
// preserved as stored.
func SplitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// FacetOptions holds, per filterable field, the sorted distinct values
// observed in the store. Drives the dashboard's filter controls.
type FacetOptions struct {
	CustomerRegion  []string `json:"customerRegion"`
	Gender          []string `json:"gender"`
	ProductCategory []string `json:"productCategory"`
	Tags            []string `json:"tags"`
	PaymentMethod   []string `json:"paymentMethod"`
}

// SalesSummary holds the dashboard's headline totals.
type SalesSummary struct {
	TotalUnits   int64   `json:"totalUnits" bson:"totalUnits"`
	TotalAmount  float64 `json:"totalAmount" bson:"totalAmount"`
	TotalRecords int64   `json:"totalRecords" bson:"totalRecords"`
}
