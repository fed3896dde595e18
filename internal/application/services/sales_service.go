package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/retailpulse/backend/internal/domain/entities"
	"github.com/retailpulse/backend/internal/domain/repositories"
	"github.com/retailpulse/backend/internal/query"
)

// SearchResult is the browse endpoint's response body: one page of records
// plus the pagination envelope. The envelope is always well formed, zero
// matches included.
type SearchResult struct {
	Sales      []*entities.Sale `json:"sales"`
	Pagination query.Pagination `json:"pagination"`
}

// SalesService handles business logic for browsing sales records
type SalesService struct {
	repo   repositories.SaleRepository
	facets *query.FacetResolver
}

// NewSalesService creates a new sales service
func NewSalesService(repo repositories.SaleRepository) *SalesService {
	return &SalesService{
		repo:   repo,
		facets: query.NewFacetResolver(repo),
	}
}

// Search runs a normalized filter request against the store. The page query
// and the count query are independent and issued concurrently; if either
// fails the whole request fails.
func (s *SalesService) Search(ctx context.Context, f query.Filter) (*SearchResult, error) {
	dataQuery, countQuery, err := query.Build(f)
	if err != nil {
		return nil, err
	}

	var (
		sales []*entities.Sale
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sales, err = s.repo.Search(gctx, dataQuery)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.repo.Count(gctx, countQuery)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if sales == nil {
		sales = []*entities.Sale{}
	}

	return &SearchResult{
		Sales:      sales,
		Pagination: query.Paginate(total, f.Page, f.Limit),
	}, nil
}

// FacetOptions derives the selectable filter values for the dashboard's
// filter controls.
func (s *SalesService) FacetOptions(ctx context.Context) (*entities.FacetOptions, error) {
	return s.facets.Resolve(ctx)
}

// Summary returns the headline totals for the dashboard's summary cards.
func (s *SalesService) Summary(ctx context.Context) (*entities.SalesSummary, error) {
	return s.repo.Summary(ctx)
}
