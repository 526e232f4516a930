package models

import "time"

// Marketplace identifies one of the supported listing sources.
type Marketplace string

const (
	MarketplaceCraigslist Marketplace = "craigslist"
	MarketplaceFacebook   Marketplace = "facebook"
	MarketplaceOfferUp    Marketplace = "offerup"
)

// Marketplaces lists the supported sources in presentation order.
var Marketplaces = []Marketplace{MarketplaceCraigslist, MarketplaceFacebook, MarketplaceOfferUp}

// KnownMarketplace reports whether the value is one of the supported sources.
func KnownMarketplace(value string) bool {
	switch Marketplace(value) {
	case MarketplaceCraigslist, MarketplaceFacebook, MarketplaceOfferUp:
		return true
	}
	return false
}

// CategoryAll matches every listing category.
const CategoryAll = "all"

// Categories is the closed set of watchable listing categories.
var Categories = []string{
	"electronics", "furniture", "clothing", "vehicles", "toys",
	"sports", "collectibles", "tools", "jewelry", "books",
}

// KnownCategory reports whether the value is a watchable category or "all".
func KnownCategory(value string) bool {
	if value == CategoryAll {
		return true
	}
	for _, c := range Categories {
		if c == value {
			return true
		}
	}
	return false
}

const (
	// MaxRadiusMiles bounds the search radius of a criterion.
	MaxRadiusMiles = 100
	// DefaultRadiusMiles is used when a criterion omits the radius.
	DefaultRadiusMiles = 1
	// MaxCriteriaPerMarketplace caps active criteria per user and marketplace.
	MaxCriteriaPerMarketplace = 5
)

// WatchCriterion is a saved search a user wants matching listings for.
type WatchCriterion struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Keyword     string      `json:"keyword"`
	MinPrice    int         `json:"minPrice"`
	MaxPrice    int         `json:"maxPrice"`
	Zip         string      `json:"zip"`
	Radius      int         `json:"radius"`
	Marketplace Marketplace `json:"marketplace"`
	Category    string      `json:"category"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// WatchCriterionUpsert captures the data required to create or replace a criterion.
// Every field except the ID is replaceable on update.
type WatchCriterionUpsert struct {
	UserID      string      `json:"userId"`
	Keyword     string      `json:"keyword"`
	MinPrice    int         `json:"minPrice"`
	MaxPrice    int         `json:"maxPrice"`
	Zip         string      `json:"zip"`
	Radius      int         `json:"radius"`
	Marketplace Marketplace `json:"marketplace"`
	Category    string      `json:"category"`
}
