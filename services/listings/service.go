// Package listings supplies candidate listings for a watchlist criterion.
// Supply is synthetic by default; a remote feed can be layered on top and
// the service degrades back to synthetic data when the feed is unreachable.
package listings

import (
	"context"
	"log"

	"github.com/sourcegraph/conc/iter"

	"flipsniper/models"
)

// Supplier is a source of candidate listings for one marketplace.
type Supplier interface {
	Fetch(ctx context.Context, criterion models.WatchCriterion, source models.Marketplace) ([]models.Listing, error)
}

var (
	_ Supplier = (*Generator)(nil)
	_ Supplier = (*FeedClient)(nil)
)

// Service aggregates listing supply across marketplaces. When a primary
// supplier (the remote feed) is configured it is tried first per
// marketplace; any failure falls back to the synthetic generator so the
// results view never surfaces a hard error.
type Service struct {
	primary  Supplier // may be nil
	fallback Supplier
}

// NewService builds a listings service. primary may be nil, in which case
// only the fallback supplier is used.
func NewService(primary, fallback Supplier) *Service {
	return &Service{primary: primary, fallback: fallback}
}

// Search fetches candidates from every marketplace concurrently and merges
// them in the canonical marketplace order, so the merged sequence is
// deterministic for a given supply. The criterion's own marketplace is
// queried first-class alongside the others; narrowing to one source is the
// ranker's marketplace filter stage, not a supply concern.
func (s *Service) Search(ctx context.Context, criterion models.WatchCriterion) ([]models.Listing, error) {
	sources := models.Marketplaces

	perSource, err := iter.MapErr(sources, func(source *models.Marketplace) ([]models.Listing, error) {
		return s.fetchWithFallback(ctx, criterion, *source)
	})
	if err != nil {
		return nil, err
	}

	merged := make([]models.Listing, 0)
	for _, batch := range perSource {
		merged = append(merged, batch...)
	}

	log.Printf("[listings] search keyword=%q merged %d candidates across %d marketplaces", criterion.Keyword, len(merged), len(sources))
	return merged, nil
}

func (s *Service) fetchWithFallback(ctx context.Context, criterion models.WatchCriterion, source models.Marketplace) ([]models.Listing, error) {
	if s.primary != nil {
		fetched, err := s.primary.Fetch(ctx, criterion, source)
		if err == nil {
			return fetched, nil
		}
		log.Printf("[listings] feed fetch failed for source=%s: %v - falling back to synthetic supply", source, err)
	}
	return s.fallback.Fetch(ctx, criterion, source)
}
