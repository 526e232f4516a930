package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"flipsniper/models"
	listingssvc "flipsniper/services/listings"
	"flipsniper/services/watchlist"
	"flipsniper/utils/format"
	"flipsniper/utils/ranker"
)

type listingSupplier interface {
	Search(ctx context.Context, criterion models.WatchCriterion) ([]models.Listing, error)
}

var _ listingSupplier = (*listingssvc.Service)(nil)

type criterionSource interface {
	Get(id string) (*models.WatchCriterion, error)
}

// SearchHandler serves ranked listings for a saved criterion. Filter and
// sort settings arrive as query parameters and map onto a FilterState; the
// wall clock is read once per request so a single response is internally
// consistent.
type SearchHandler struct {
	Criteria criterionSource
	Supplier listingSupplier
	now      func() time.Time
}

func NewSearchHandler(criteria criterionSource, supplier listingSupplier) *SearchHandler {
	return &SearchHandler{Criteria: criteria, Supplier: supplier, now: time.Now}
}

// WithClock overrides the handler clock. Intended for tests.
func (h *SearchHandler) WithClock(now func() time.Time) *SearchHandler {
	h.now = now
	return h
}

// ListingView pairs a listing with its presentation extras.
type ListingView struct {
	models.Listing
	PriceLabel string       `json:"priceLabel"`
	Badge      format.Badge `json:"badge"`
}

type searchResponse struct {
	Criterion *models.WatchCriterion `json:"criterion"`
	Filters   models.FilterState     `json:"filters"`
	Count     int                    `json:"count"`
	Listings  []ListingView          `json:"listings"`
}

// Listings resolves the criterion, gathers candidates, and responds with the
// filtered, sorted, presentation-ready sequence.
func (h *SearchHandler) Listings(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	criterion, err := h.Criteria.Get(id)
	if err != nil {
		if errors.Is(err, watchlist.ErrNotFound) {
			http.Error(w, "watchlist item not found", http.StatusNotFound)
			return
		}
		log.Printf("[search-handler] criterion lookup failed for id=%s: %v", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	filters, err := filtersFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	candidates, err := h.Supplier.Search(r.Context(), *criterion)
	if err != nil {
		log.Printf("[search-handler] supply failed for criterion=%s: %v", id, err)
		http.Error(w, "failed to gather listings", http.StatusBadGateway)
		return
	}

	ranked := ranker.Rank(candidates, *criterion, filters, h.now())

	views := make([]ListingView, len(ranked))
	for i, l := range ranked {
		views[i] = ListingView{
			Listing:    l,
			PriceLabel: format.Currency(l.Price),
			Badge:      format.MarketplaceBadge(l.Source),
		}
	}

	log.Printf("[search-handler] criterion=%s sort=%s returned %d of %d candidates", id, filters.SortOption, len(ranked), len(candidates))
	writeJSON(w, searchResponse{
		Criterion: criterion,
		Filters:   filters,
		Count:     len(views),
		Listings:  views,
	})
}

type queryError struct{ msg string }

func (e *queryError) Error() string { return e.msg }

// filtersFromQuery builds a FilterState from query parameters, starting from
// the defaults so omitted parameters never restrict results.
func filtersFromQuery(r *http.Request) (models.FilterState, error) {
	filters := models.DefaultFilterState()
	q := r.URL.Query()

	if v := q.Get("marketplace"); v != "" {
		if v != models.MarketplaceAll && !models.KnownMarketplace(v) {
			return filters, &queryError{msg: "unknown marketplace filter " + strconv.Quote(v)}
		}
		filters.MarketplaceFilter = v
	}
	if v := q.Get("sort"); v != "" {
		if !models.KnownSortOption(v) {
			return filters, &queryError{msg: "unknown sort option " + strconv.Quote(v)}
		}
		filters.SortOption = models.SortOption(v)
	}
	if v := q.Get("minPrice"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return filters, &queryError{msg: "minPrice must be a non-negative integer"}
		}
		filters.PriceRange.Low = parsed
	}
	if v := q.Get("maxPrice"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return filters, &queryError{msg: "maxPrice must be a non-negative integer"}
		}
		filters.PriceRange.High = parsed
	}
	if filters.PriceRange.Low > filters.PriceRange.High {
		return filters, &queryError{msg: "minPrice must not exceed maxPrice"}
	}
	if v := q.Get("maxDistance"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			return filters, &queryError{msg: "maxDistance must be a non-negative number"}
		}
		filters.MaxDistance = parsed
	}
	filters.Conditions = splitCSV(q.Get("conditions"))
	filters.Locations = splitCSV(q.Get("locations"))

	return filters, nil
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
