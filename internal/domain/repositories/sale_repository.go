package repositories

import (
	"context"

	"github.com/retailpulse/backend/internal/domain/entities"
	"github.com/retailpulse/backend/internal/query"
)

// SaleRepository defines the interface for sales record data operations.
// The store is append-only: records arrive via bulk ingestion and are never
// updated or deleted.
type SaleRepository interface {
	// Search returns the records matching a data query, sorted and paged.
	Search(ctx context.Context, q query.Query) ([]*entities.Sale, error)

	// Count returns the number of records matching a count query.
	Count(ctx context.Context, q query.Query) (int64, error)

	// Distinct enumerates the distinct stored values of a field.
	Distinct(ctx context.Context, field string) ([]string, error)

	// Summary computes the headline totals over all records.
	Summary(ctx context.Context) (*entities.SalesSummary, error)

	// CountAll returns the total number of stored records.
	CountAll(ctx context.Context) (int64, error)

	// BulkInsert inserts a batch of records.
	BulkInsert(ctx context.Context, sales []entities.Sale) error
}
