package models

// SortOption selects the ordering applied to ranked listings.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortOldest    SortOption = "oldest"
	SortPriceHigh SortOption = "price-high"
	SortPriceLow  SortOption = "price-low"
	SortDistance  SortOption = "distance"
	SortRelevance SortOption = "relevance"
)

// KnownSortOption reports whether the value is a supported sort option.
func KnownSortOption(value string) bool {
	switch SortOption(value) {
	case SortNewest, SortOldest, SortPriceHigh, SortPriceLow, SortDistance, SortRelevance:
		return true
	}
	return false
}

// MarketplaceAll disables marketplace filtering.
const MarketplaceAll = "all"

// PriceRange is a closed interval of whole-unit prices, bounds inclusive.
type PriceRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// FilterState captures the UI-session filter and sort settings applied to a
// result set. It is never persisted. Empty Conditions or Locations mean
// "no restriction", not "reject all".
type FilterState struct {
	MarketplaceFilter string     `json:"marketplaceFilter"`
	SortOption        SortOption `json:"sortOption"`
	PriceRange        PriceRange `json:"priceRange"`
	MaxDistance       float64    `json:"maxDistance"`
	Conditions        []string   `json:"conditions,omitempty"`
	Locations         []string   `json:"locations,omitempty"`
}

// DefaultFilterState returns the filter settings a fresh results view uses:
// every marketplace, a wide-open price band and distance, relevance ordering.
func DefaultFilterState() FilterState {
	return FilterState{
		MarketplaceFilter: MarketplaceAll,
		SortOption:        SortRelevance,
		PriceRange:        PriceRange{Low: 0, High: 10000},
		MaxDistance:       100,
	}
}
