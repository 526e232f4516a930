package listings

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"flipsniper/models"
)

// Title fragments combined with the criterion keyword to synthesize
// plausible listing titles.
var (
	titlePrefixes = []string{"", "Like New", "Barely Used", "Great Deal", "Must Go", "OBO", "Mint"}
	titleSuffixes = []string{"", "- pickup only", "- cash only", "w/ extras", "(moving sale)", "- priced to sell"}

	// locationPool stands in for reverse-geocoded neighborhoods around the
	// searcher's zip until a real geo source is wired up.
	locationPool = []string{
		"Downtown", "Riverside", "Oak Park", "Maplewood", "Eastside",
		"Westgate", "Harbor View", "Cedar Hills", "Lakeshore", "Old Town",
	}
)

const freshListingWindowDays = 14

// Generator produces synthetic listings for a criterion. Output is
// deterministic per (criterion, source, day) so a user sees a stable result
// set across reloads within the same day.
type Generator struct {
	perSource int
	now       func() time.Time
}

// NewGenerator returns a generator that yields perSource listings per
// marketplace query.
func NewGenerator(perSource int, now func() time.Time) *Generator {
	if perSource <= 0 {
		perSource = 12
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{perSource: perSource, now: now}
}

// Fetch implements Supplier with synthetic data. It never fails.
func (g *Generator) Fetch(_ context.Context, criterion models.WatchCriterion, source models.Marketplace) ([]models.Listing, error) {
	now := g.now().UTC()
	rng := rand.New(rand.NewSource(seedFor(criterion, source, now)))

	out := make([]models.Listing, 0, g.perSource)
	for i := 0; i < g.perSource; i++ {
		out = append(out, g.synthesize(rng, criterion, source, now, i))
	}
	return out, nil
}

func (g *Generator) synthesize(rng *rand.Rand, criterion models.WatchCriterion, source models.Marketplace, now time.Time, ordinal int) models.Listing {
	price := priceWithin(rng, criterion.MinPrice, criterion.MaxPrice)

	// A small share of listings lands outside the radius so the distance
	// filter has something to do.
	radius := float64(criterion.Radius)
	if radius <= 0 {
		radius = models.DefaultRadiusMiles
	}
	distance := rng.Float64() * radius
	if rng.Intn(10) == 0 {
		distance = radius + rng.Float64()*radius
	}

	ageDays := rng.Intn(freshListingWindowDays)
	date := now.AddDate(0, 0, -ageDays).Truncate(24 * time.Hour)

	return models.Listing{
		ID:        fmt.Sprintf("%s-%s-%d", source, date.Format("20060102"), ordinal),
		Title:     buildTitle(rng, criterion.Keyword),
		Price:     price,
		Location:  locationPool[rng.Intn(len(locationPool))],
		Distance:  roundTenth(distance),
		Date:      date,
		Source:    string(source),
		Condition: models.Conditions[rng.Intn(len(models.Conditions))],
	}
}

// priceWithin spreads prices across the criterion band, with the occasional
// listing priced above it the way real sellers overshoot.
func priceWithin(rng *rand.Rand, minPrice, maxPrice int) int {
	if maxPrice <= 0 {
		maxPrice = 1000
	}
	if minPrice < 0 {
		minPrice = 0
	}
	if minPrice >= maxPrice {
		return maxPrice
	}
	price := minPrice + rng.Intn(maxPrice-minPrice+1)
	if rng.Intn(12) == 0 {
		price = maxPrice + rng.Intn(maxPrice/4+1)
	}
	return price
}

func buildTitle(rng *rand.Rand, keyword string) string {
	parts := []string{
		titlePrefixes[rng.Intn(len(titlePrefixes))],
		strings.TrimSpace(keyword),
		titleSuffixes[rng.Intn(len(titleSuffixes))],
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// seedFor derives a stable seed from the criterion identity, the source, and
// the calendar day.
func seedFor(criterion models.WatchCriterion, source models.Marketplace, now time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%s", strings.ToLower(strings.TrimSpace(criterion.Keyword)), criterion.Zip, source, now.Format("2006-01-02"))
	return int64(h.Sum64())
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
