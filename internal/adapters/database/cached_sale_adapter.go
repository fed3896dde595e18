package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/backend/internal/domain/entities"
	"github.com/retailpulse/backend/internal/domain/providers"
	"github.com/retailpulse/backend/internal/domain/repositories"
	"github.com/retailpulse/backend/internal/query"
)

// CachedSaleAdapter wraps a SaleRepository with caching for the read-mostly
// lookups (facet distincts, summary totals). Search queries go straight to
// the store; their parameter space is too wide to cache usefully.
type CachedSaleAdapter struct {
	adapter repositories.SaleRepository
	cache   providers.CacheProvider
}

// NewCachedSaleAdapter creates a new cached sale adapter
func NewCachedSaleAdapter(adapter repositories.SaleRepository, cache providers.CacheProvider) repositories.SaleRepository {
	return &CachedSaleAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	distinctTTL = 300
	summaryTTL  = 300
)

func distinctCacheKey(field string) string {
	return fmt.Sprintf("sales:distinct:%s", field)
}

const summaryCacheKey = "sales:summary"

// Search delegates to the underlying adapter.
func (a *CachedSaleAdapter) Search(ctx context.Context, q query.Query) ([]*entities.Sale, error) {
	return a.adapter.Search(ctx, q)
}

// Count delegates to the underlying adapter.
func (a *CachedSaleAdapter) Count(ctx context.Context, q query.Query) (int64, error) {
	return a.adapter.Count(ctx, q)
}

// Distinct enumerates distinct field values with caching.
func (a *CachedSaleAdapter) Distinct(ctx context.Context, field string) ([]string, error) {
	cacheKey := distinctCacheKey(field)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var values []string
		if err := json.Unmarshal(cached, &values); err == nil {
			return values, nil
		}
		log.Warn().Str("field", field).Msg("failed to unmarshal cached distinct values")
	}

	values, err := a.adapter.Distinct(ctx, field)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(values); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, distinctTTL); err != nil {
				log.Warn().Err(err).Str("field", field).Msg("failed to cache distinct values")
			}
		}
	}()

	return values, nil
}

// Summary computes the headline totals with caching.
func (a *CachedSaleAdapter) Summary(ctx context.Context) (*entities.SalesSummary, error) {
	if cached, err := a.cache.Get(ctx, summaryCacheKey); err == nil {
		var summary entities.SalesSummary
		if err := json.Unmarshal(cached, &summary); err == nil {
			return &summary, nil
		}
		log.Warn().Msg("failed to unmarshal cached sales summary")
	}

	summary, err := a.adapter.Summary(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(summary); err == nil {
			if err := a.cache.Set(bgCtx, summaryCacheKey, data, summaryTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache sales summary")
			}
		}
	}()

	return summary, nil
}

// CountAll delegates to the underlying adapter.
func (a *CachedSaleAdapter) CountAll(ctx context.Context) (int64, error) {
	return a.adapter.CountAll(ctx)
}

// BulkInsert inserts records and invalidates the derived-value caches.
func (a *CachedSaleAdapter) BulkInsert(ctx context.Context, sales []entities.Sale) error {
	if err := a.adapter.BulkInsert(ctx, sales); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.DeletePattern(bgCtx, "sales:distinct:*"); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate distinct caches")
		}
		if err := a.cache.Delete(bgCtx, summaryCacheKey); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate summary cache")
		}
	}()

	return nil
}
