package ranker

import (
	"testing"
	"time"

	"flipsniper/models"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleListings() []models.Listing {
	return []models.Listing{
		{ID: "a", Title: "iPhone 12", Price: 100, Distance: 5, Date: day("2024-01-10"), Source: "craigslist", Condition: "Good", Location: "Brooklyn"},
		{ID: "b", Title: "iPhone 12 Pro", Price: 300, Distance: 2, Date: day("2024-01-12"), Source: "facebook", Condition: "New", Location: "Queens"},
	}
}

func openFilters(sortOption models.SortOption) models.FilterState {
	return models.FilterState{
		MarketplaceFilter: models.MarketplaceAll,
		SortOption:        sortOption,
		PriceRange:        models.PriceRange{Low: 0, High: 1000},
		MaxDistance:       20,
	}
}

var testNow = day("2024-01-15")

func TestRankPriceLowOrdering(t *testing.T) {
	criterion := models.WatchCriterion{MaxPrice: 500}

	ranked := Rank(sampleListings(), criterion, openFilters(models.SortPriceLow), testNow)

	if len(ranked) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(ranked))
	}
	if ranked[0].Price != 100 || ranked[1].Price != 300 {
		t.Fatalf("expected [100 300], got [%d %d]", ranked[0].Price, ranked[1].Price)
	}
}

func TestRankDistanceOrdering(t *testing.T) {
	ranked := Rank(sampleListings(), models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortDistance), testNow)

	if len(ranked) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(ranked))
	}
	if ranked[0].Source != "facebook" {
		t.Fatalf("expected facebook listing (distance 2) first, got %q", ranked[0].Source)
	}
	if ranked[0].Distance != 2 || ranked[1].Distance != 5 {
		t.Fatalf("expected distances [2 5], got [%.0f %.0f]", ranked[0].Distance, ranked[1].Distance)
	}
}

func TestRankMarketplaceFilter(t *testing.T) {
	filters := openFilters(models.SortRelevance)
	filters.MarketplaceFilter = "craigslist"

	ranked := Rank(sampleListings(), models.WatchCriterion{MaxPrice: 500}, filters, testNow)

	if len(ranked) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(ranked))
	}
	if ranked[0].Price != 100 {
		t.Fatalf("expected the craigslist listing (price 100), got price %d", ranked[0].Price)
	}
}

func TestRankPriceBoundsInclusive(t *testing.T) {
	listings := []models.Listing{
		{ID: "low", Price: 50, Distance: 1, Date: day("2024-01-01"), Source: "offerup"},
		{ID: "mid", Price: 100, Distance: 1, Date: day("2024-01-02"), Source: "offerup"},
		{ID: "high", Price: 200, Distance: 1, Date: day("2024-01-03"), Source: "offerup"},
		{ID: "over", Price: 201, Distance: 1, Date: day("2024-01-04"), Source: "offerup"},
	}
	filters := openFilters(models.SortOldest)
	filters.PriceRange = models.PriceRange{Low: 50, High: 200}

	ranked := Rank(listings, models.WatchCriterion{MaxPrice: 500}, filters, testNow)

	if len(ranked) != 3 {
		t.Fatalf("expected exact-boundary prices to be retained, got %d listings", len(ranked))
	}
	for _, l := range ranked {
		if l.ID == "over" {
			t.Fatalf("listing above the price band survived filtering")
		}
	}
}

func TestRankDistanceBoundInclusive(t *testing.T) {
	listings := []models.Listing{
		{ID: "edge", Price: 10, Distance: 20, Date: day("2024-01-01"), Source: "offerup"},
		{ID: "far", Price: 10, Distance: 20.5, Date: day("2024-01-01"), Source: "offerup"},
	}

	ranked := Rank(listings, models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortDistance), testNow)

	if len(ranked) != 1 || ranked[0].ID != "edge" {
		t.Fatalf("expected only the listing at exactly max distance, got %+v", ranked)
	}
}

func TestRankConditionAndLocationFilters(t *testing.T) {
	listings := []models.Listing{
		{ID: "a", Price: 10, Distance: 1, Date: day("2024-01-01"), Source: "offerup", Condition: "New", Location: "Brooklyn"},
		{ID: "b", Price: 10, Distance: 1, Date: day("2024-01-01"), Source: "offerup", Condition: "Fair", Location: "Queens"},
		{ID: "c", Price: 10, Distance: 1, Date: day("2024-01-01"), Source: "offerup", Condition: "New", Location: "Queens"},
	}

	filters := openFilters(models.SortOldest)
	filters.Conditions = []string{"New"}
	filters.Locations = []string{"Queens"}

	ranked := Rank(listings, models.WatchCriterion{MaxPrice: 500}, filters, testNow)
	if len(ranked) != 1 || ranked[0].ID != "c" {
		t.Fatalf("expected only listing c, got %+v", ranked)
	}

	// Empty sets mean no restriction, never "reject all".
	ranked = Rank(listings, models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortOldest), testNow)
	if len(ranked) != 3 {
		t.Fatalf("expected empty condition/location sets to keep all listings, got %d", len(ranked))
	}
}

func TestRankLocationFilterFoldsAccents(t *testing.T) {
	listings := []models.Listing{
		{ID: "a", Price: 10, Distance: 1, Date: day("2024-01-01"), Source: "offerup", Location: "São Paulo"},
		{ID: "b", Price: 10, Distance: 1, Date: day("2024-01-01"), Source: "offerup", Location: "Santos"},
	}

	filters := openFilters(models.SortOldest)
	filters.Locations = []string{"sao paulo"}

	ranked := Rank(listings, models.WatchCriterion{MaxPrice: 500}, filters, testNow)
	if len(ranked) != 1 || ranked[0].ID != "a" {
		t.Fatalf("expected accent-folded location match, got %+v", ranked)
	}
}

func TestRankNewestAndOldest(t *testing.T) {
	ranked := Rank(sampleListings(), models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortNewest), testNow)
	if ranked[0].ID != "b" || ranked[1].ID != "a" {
		t.Fatalf("newest: expected [b a], got [%s %s]", ranked[0].ID, ranked[1].ID)
	}

	ranked = Rank(sampleListings(), models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortOldest), testNow)
	if ranked[0].ID != "a" || ranked[1].ID != "b" {
		t.Fatalf("oldest: expected [a b], got [%s %s]", ranked[0].ID, ranked[1].ID)
	}
}

func TestRankStableOnEqualKeys(t *testing.T) {
	// Four listings with identical prices; price sorts must keep input order.
	listings := []models.Listing{
		{ID: "first", Price: 100, Distance: 1, Date: day("2024-01-01"), Source: "offerup"},
		{ID: "second", Price: 100, Distance: 2, Date: day("2024-01-02"), Source: "offerup"},
		{ID: "third", Price: 100, Distance: 3, Date: day("2024-01-03"), Source: "offerup"},
		{ID: "fourth", Price: 100, Distance: 4, Date: day("2024-01-04"), Source: "offerup"},
	}

	for _, option := range []models.SortOption{models.SortPriceLow, models.SortPriceHigh} {
		ranked := Rank(listings, models.WatchCriterion{MaxPrice: 500}, openFilters(option), testNow)
		for i, want := range []string{"first", "second", "third", "fourth"} {
			if ranked[i].ID != want {
				t.Fatalf("sort %s: expected stable order at %d (%s), got %s", option, i, want, ranked[i].ID)
			}
		}
	}
}

func TestRankRelevanceOrdering(t *testing.T) {
	// Equal dates, so ordering is decided purely by the price term.
	listings := []models.Listing{
		{ID: "pricey", Price: 450, Distance: 1, Date: day("2024-01-10"), Source: "offerup"},
		{ID: "cheap", Price: 50, Distance: 9, Date: day("2024-01-10"), Source: "offerup"},
	}

	ranked := Rank(listings, models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortRelevance), testNow)
	if ranked[0].ID != "cheap" {
		t.Fatalf("expected undervalued listing first, got %q", ranked[0].ID)
	}
}

func TestRankRelevanceRecencyBreaksPriceTies(t *testing.T) {
	listings := []models.Listing{
		{ID: "older", Price: 100, Distance: 1, Date: day("2023-06-01"), Source: "offerup"},
		{ID: "newer", Price: 100, Distance: 1, Date: day("2024-01-14"), Source: "offerup"},
	}

	ranked := Rank(listings, models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortRelevance), testNow)
	if ranked[0].ID != "newer" {
		t.Fatalf("expected more recent listing first, got %q", ranked[0].ID)
	}
}

func TestRankRelevanceDefaultDenominator(t *testing.T) {
	listings := sampleListings()

	for _, maxPrice := range []int{0, -5} {
		ranked := Rank(listings, models.WatchCriterion{MaxPrice: maxPrice}, openFilters(models.SortRelevance), testNow)
		if len(ranked) != 2 {
			t.Fatalf("maxPrice=%d: expected 2 listings, got %d", maxPrice, len(ranked))
		}
		// With denominator 1000 and near-equal recency, the cheaper
		// listing still wins.
		if ranked[0].ID != "a" {
			t.Fatalf("maxPrice=%d: expected cheaper listing first, got %q", maxPrice, ranked[0].ID)
		}
	}
}

func TestRankIdempotent(t *testing.T) {
	criterion := models.WatchCriterion{MaxPrice: 500}
	filters := openFilters(models.SortRelevance)

	first := Rank(sampleListings(), criterion, filters, testNow)
	second := Rank(sampleListings(), criterion, filters, testNow)

	if len(first) != len(second) {
		t.Fatalf("expected identical lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("expected identical order at %d: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	listings := sampleListings()
	Rank(listings, models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortPriceHigh), testNow)

	if listings[0].ID != "a" || listings[1].ID != "b" {
		t.Fatalf("input slice was reordered: [%s %s]", listings[0].ID, listings[1].ID)
	}
}

func TestRankEmptyInput(t *testing.T) {
	ranked := Rank(nil, models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortRelevance), testNow)
	if len(ranked) != 0 {
		t.Fatalf("expected empty output for empty input, got %d", len(ranked))
	}
}

func TestRankSkipsMalformedListings(t *testing.T) {
	listings := []models.Listing{
		{ID: "ok", Price: 10, Distance: 1, Date: day("2024-01-01"), Source: "offerup"},
		{ID: "negative-price", Price: -1, Distance: 1, Date: day("2024-01-01"), Source: "offerup"},
		{ID: "negative-distance", Price: 10, Distance: -2, Date: day("2024-01-01"), Source: "offerup"},
		{ID: "no-date", Price: 10, Distance: 1, Source: "offerup"},
	}

	ranked := Rank(listings, models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortOldest), testNow)
	if len(ranked) != 1 || ranked[0].ID != "ok" {
		t.Fatalf("expected malformed records to be skipped, got %+v", ranked)
	}
}

func TestRankFilterMonotonicity(t *testing.T) {
	// Every output listing must come from the input; no stage may add records.
	listings := sampleListings()
	filters := openFilters(models.SortRelevance)
	filters.Conditions = []string{"New", "Good"}
	filters.Locations = []string{"Brooklyn", "Queens"}

	ranked := Rank(listings, models.WatchCriterion{MaxPrice: 500}, filters, testNow)
	if len(ranked) > len(listings) {
		t.Fatalf("output larger than input: %d > %d", len(ranked), len(listings))
	}
	inputIDs := map[string]bool{}
	for _, l := range listings {
		inputIDs[l.ID] = true
	}
	for _, l := range ranked {
		if !inputIDs[l.ID] {
			t.Fatalf("output contains listing %q not present in input", l.ID)
		}
	}
}

func TestRankUnknownSourceRoundTrips(t *testing.T) {
	listings := []models.Listing{
		{ID: "m", Price: 10, Distance: 1, Date: day("2024-01-02"), Source: "mercari", Condition: "Mint"},
		{ID: "c", Price: 20, Distance: 1, Date: day("2024-01-01"), Source: "craigslist", Condition: "Good"},
	}

	ranked := Rank(listings, models.WatchCriterion{MaxPrice: 500}, openFilters(models.SortNewest), testNow)
	if len(ranked) != 2 || ranked[0].Source != "mercari" {
		t.Fatalf("expected unrecognised source to survive and sort, got %+v", ranked)
	}
}
