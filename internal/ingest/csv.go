package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/retailpulse/backend/internal/domain/entities"
)

// Date layouts seen in exported sales data.
var csvDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseFile reads a sales CSV export and returns the parsed records.
//
// Parsing is tolerant: columns are located by header name (case-insensitive,
// spaced or camelCase), rows with an unparseable date are skipped with a
// warning, numeric fields fall back to zero, and a row without a transaction
// ID gets a generated one. Only a structurally broken file is an error.
func ParseFile(path string) ([]entities.Sale, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read CSV header from %s: %w", path, err)
	}

	cols := newColumnIndex(header)

	var sales []entities.Sale
	line := 1
	for {
		record, readErr := reader.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record from %s: %w", path, readErr)
		}
		line++

		dateStr := cols.get(record, "Date")
		date, ok := parseCSVDate(dateStr)
		if !ok {
			log.Warn().Int("line", line).Str("date", dateStr).Msg("skipping record with unparseable date")
			continue
		}

		sale := entities.Sale{
			TransactionID:      cols.get(record, "Transaction ID"),
			Date:               date,
			CustomerID:         cols.get(record, "Customer ID"),
			CustomerName:       cols.get(record, "Customer Name"),
			PhoneNumber:        cols.get(record, "Phone Number"),
			Gender:             cols.get(record, "Gender"),
			Age:                parseInt(cols.get(record, "Age")),
			CustomerRegion:     cols.get(record, "Customer Region"),
			ProductID:          cols.get(record, "Product ID"),
			ProductCategory:    cols.get(record, "Product Category"),
			Tags:               cols.get(record, "Tags"),
			Quantity:           parseInt(cols.get(record, "Quantity")),
			TotalAmount:        parseFloat(cols.get(record, "Total Amount")),
			DiscountPercentage: parseFloat(cols.get(record, "Discount Percentage")),
			PaymentMethod:      cols.get(record, "Payment Method"),
			EmployeeName:       cols.get(record, "Employee Name"),
		}

		if sale.TransactionID == "" {
			sale.TransactionID = uuid.NewString()
		}

		sales = append(sales, sale)
	}

	return sales, nil
}

// columnIndex maps normalized header names to positions.
type columnIndex map[string]int

func newColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, col := range header {
		idx[normalizeHeader(col)] = i
	}
	return idx
}

// get retrieves a field by its canonical column name, or "" when the column
// is absent or the row is short.
func (c columnIndex) get(record []string, name string) string {
	i, ok := c[normalizeHeader(name)]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// normalizeHeader folds "Transaction ID", "transactionId" and
// "transaction_id" onto the same key.
func normalizeHeader(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(name))
}

func parseCSVDate(raw string) (time.Time, bool) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}
