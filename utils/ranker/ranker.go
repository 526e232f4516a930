package ranker

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"

	"flipsniper/models"
)

const (
	// priceWeight and recencyWeight combine the two relevance components.
	priceWeight   = 0.7
	recencyWeight = 0.3

	// defaultMaxPrice is the relevance denominator when the criterion
	// carries no usable max price. Keeps the score defined for every input.
	defaultMaxPrice = 1000
)

// Rank filters and orders candidate listings for presentation. It is a pure
// function of its inputs: now is the single wall-clock reading used for
// relevance scoring, captured once by the caller so repeated invocations
// with identical arguments produce identical output.
//
// Stages run in a fixed order: marketplace, price band, distance, condition,
// location, then a stable sort per filters.SortOption. Each filter stage only
// removes listings. Input listings are never mutated; the result is a new
// slice.
func Rank(listings []models.Listing, criterion models.WatchCriterion, filters models.FilterState, now time.Time) []models.Listing {
	if len(listings) == 0 {
		return []models.Listing{}
	}

	kept := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if !structurallySound(l) {
			log.Printf("[ranker] skipping malformed listing id=%q price=%d distance=%.1f", l.ID, l.Price, l.Distance)
			continue
		}
		kept = append(kept, l)
	}

	kept = filterMarketplace(kept, filters.MarketplaceFilter)
	kept = filterPrice(kept, filters.PriceRange)
	kept = filterDistance(kept, filters.MaxDistance)
	kept = filterByValue(kept, filters.Conditions, func(l models.Listing) string { return l.Condition })
	kept = filterByValue(kept, filters.Locations, func(l models.Listing) string { return l.Location })

	sortListings(kept, filters.SortOption, criterion, now)

	return kept
}

// structurallySound reports whether a listing satisfies the minimal shape the
// pipeline relies on. Offending records are skipped rather than surfaced as
// errors so the results view degrades instead of breaking.
func structurallySound(l models.Listing) bool {
	return l.Price >= 0 && l.Distance >= 0 && !l.Date.IsZero()
}

func filterMarketplace(listings []models.Listing, marketplace string) []models.Listing {
	if marketplace == "" || marketplace == models.MarketplaceAll {
		return listings
	}
	out := listings[:0]
	for _, l := range listings {
		if l.Source == marketplace {
			out = append(out, l)
		}
	}
	return out
}

func filterPrice(listings []models.Listing, r models.PriceRange) []models.Listing {
	out := listings[:0]
	for _, l := range listings {
		if l.Price >= r.Low && l.Price <= r.High {
			out = append(out, l)
		}
	}
	return out
}

func filterDistance(listings []models.Listing, maxDistance float64) []models.Listing {
	out := listings[:0]
	for _, l := range listings {
		if l.Distance <= maxDistance {
			out = append(out, l)
		}
	}
	return out
}

// filterByValue keeps listings whose extracted value is a member of accepted.
// An empty accepted set means no restriction.
func filterByValue(listings []models.Listing, accepted []string, value func(models.Listing) string) []models.Listing {
	if len(accepted) == 0 {
		return listings
	}
	wanted := make(map[string]struct{}, len(accepted))
	for _, v := range accepted {
		wanted[foldValue(v)] = struct{}{}
	}
	out := listings[:0]
	for _, l := range listings {
		if _, ok := wanted[foldValue(value(l))]; ok {
			out = append(out, l)
		}
	}
	return out
}

// foldValue normalises a condition or location for comparison: trimmed,
// lowercased, diacritics stripped so "São Paulo" matches "sao paulo".
func foldValue(value string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(value)))
}

func sortListings(listings []models.Listing, option models.SortOption, criterion models.WatchCriterion, now time.Time) {
	switch option {
	case models.SortNewest:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Date.After(listings[j].Date)
		})
	case models.SortOldest:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Date.Before(listings[j].Date)
		})
	case models.SortPriceHigh:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Price > listings[j].Price
		})
	case models.SortPriceLow:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Price < listings[j].Price
		})
	case models.SortDistance:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Distance < listings[j].Distance
		})
	default: // relevance
		denominator := float64(criterion.MaxPrice)
		if denominator <= 0 {
			denominator = defaultMaxPrice
		}
		nowMillis := float64(now.UnixMilli())
		scores := make([]float64, len(listings))
		for i, l := range listings {
			scores[i] = relevanceScore(l, denominator, nowMillis)
		}
		indexed := make([]int, len(listings))
		for i := range indexed {
			indexed[i] = i
		}
		sort.SliceStable(indexed, func(i, j int) bool {
			return scores[indexed[i]] > scores[indexed[j]]
		})
		ordered := make([]models.Listing, len(listings))
		for pos, idx := range indexed {
			ordered[pos] = listings[idx]
		}
		copy(listings, ordered)
	}
}

// relevanceScore combines price undervaluation and recency. A lower price
// relative to the criterion's max and a more recent date both raise the
// score. The date term is a raw epoch-millisecond ratio, kept as-is from the
// original heuristic rather than normalised.
func relevanceScore(l models.Listing, maxPrice, nowMillis float64) float64 {
	priceTerm := (1 - float64(l.Price)/maxPrice) * priceWeight
	recencyTerm := 0.0
	if nowMillis > 0 {
		recencyTerm = float64(l.Date.UnixMilli()) / nowMillis * recencyWeight
	}
	return priceTerm + recencyTerm
}
