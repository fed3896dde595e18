package query

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/retailpulse/backend/internal/domain/entities"
)

// DistinctProvider enumerates the distinct stored values of a record field.
type DistinctProvider interface {
	Distinct(ctx context.Context, field string) ([]string, error)
}

// FacetResolver derives the selectable filter values per field from the
// store. Results are computed fresh per call; the store is read-only within a
// session so no invalidation protocol is needed here.
type FacetResolver struct {
	store DistinctProvider
}

// NewFacetResolver creates a facet resolver backed by the given store.
func NewFacetResolver(store DistinctProvider) *FacetResolver {
	return &FacetResolver{store: store}
}

// Resolve fetches the distinct values of every filterable field. The five
// lookups are independent and run concurrently; if any fails the whole
// resolution fails.
//
// The tags facet is built from the raw comma-separated strings: each is
// decomposed into atomic tags, deduplicated case-sensitively as stored, and
// the union sorted. Every other facet is the sorted distinct non-empty
// values of its field.
func (r *FacetResolver) Resolve(ctx context.Context) (*entities.FacetOptions, error) {
	options := &entities.FacetOptions{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		options.CustomerRegion, err = r.distinctSorted(gctx, FieldCustomerRegion)
		return err
	})
	g.Go(func() (err error) {
		options.Gender, err = r.distinctSorted(gctx, FieldGender)
		return err
	})
	g.Go(func() (err error) {
		options.ProductCategory, err = r.distinctSorted(gctx, FieldProductCategory)
		return err
	})
	g.Go(func() (err error) {
		options.PaymentMethod, err = r.distinctSorted(gctx, FieldPaymentMethod)
		return err
	})
	g.Go(func() error {
		raw, err := r.store.Distinct(gctx, FieldTags)
		if err != nil {
			return err
		}
		options.Tags = decomposeTags(raw)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return options, nil
}

func (r *FacetResolver) distinctSorted(ctx context.Context, field string) ([]string, error) {
	values, err := r.store.Distinct(ctx, field)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out, nil
}

// decomposeTags splits every raw tags string into atomic tags and returns
// the sorted union. Duplicates collapse, including duplicates within a
// single record.
func decomposeTags(raw []string) []string {
	seen := make(map[string]struct{})
	for _, s := range raw {
		for _, tag := range entities.SplitTags(s) {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
