package ingest

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/backend/internal/domain/repositories"
)

// Importer bulk-loads a sales CSV export into the store. A run against a
// non-empty store is a no-op, so re-running the import is always safe; the
// browse API depends on never seeing a partially duplicated dataset.
type Importer struct {
	repo      repositories.SaleRepository
	batchSize int
}

// NewImporter creates a new importer. batchSize bounds the size of each
// insert batch; values below 1 fall back to 10000.
func NewImporter(repo repositories.SaleRepository, batchSize int) *Importer {
	if batchSize < 1 {
		batchSize = 10000
	}
	return &Importer{repo: repo, batchSize: batchSize}
}

// Run imports the CSV file at path unless the store already has records.
func (i *Importer) Run(ctx context.Context, path string) error {
	count, err := i.repo.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("existing", count).Msg("store already has records, skipping import")
		return nil
	}

	sales, err := ParseFile(path)
	if err != nil {
		return err
	}
	if len(sales) == 0 {
		log.Warn().Str("path", path).Msg("no importable records found")
		return nil
	}

	for start := 0; start < len(sales); start += i.batchSize {
		end := start + i.batchSize
		if end > len(sales) {
			end = len(sales)
		}
		if err := i.repo.BulkInsert(ctx, sales[start:end]); err != nil {
			return err
		}
		log.Info().Int("from", start).Int("to", end).Msg("imported batch")
	}

	log.Info().Int("records", len(sales)).Msg("import complete")
	return nil
}
