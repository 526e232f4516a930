package watchlist

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"flipsniper/models"
	"flipsniper/utils"
)

var (
	ErrNotFound              = errors.New("watchlist item not found")
	ErrMarketplaceCapReached = fmt.Errorf("a marketplace allows at most %d active watchlist items", models.MaxCriteriaPerMarketplace)
)

// ValidationError describes a criterion field rejected at input time.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type repository interface {
	Insert(c models.WatchCriterion) error
	Get(id string) (*models.WatchCriterion, error)
	ListByUser(userID string) ([]models.WatchCriterion, error)
	Update(c models.WatchCriterion) error
	Delete(id string) error
	CountByUserAndMarketplace(userID string, marketplace models.Marketplace) (int, error)
}

// Service owns the lifecycle of watchlist criteria: validation, the
// per-marketplace cap, and persistence.
type Service struct {
	repo repository
	now  func() time.Time
}

// NewService returns a watchlist service backed by the given repository.
func NewService(repo repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates the submission, enforces the per-marketplace cap, and
// stores a new criterion with a fresh ID.
func (s *Service) Create(upsert models.WatchCriterionUpsert) (*models.WatchCriterion, error) {
	normalized, err := normalize(upsert)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByUserAndMarketplace(normalized.UserID, normalized.Marketplace)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxCriteriaPerMarketplace {
		return nil, ErrMarketplaceCapReached
	}

	now := s.now().UTC()
	criterion := models.WatchCriterion{
		ID:          uuid.NewString(),
		UserID:      normalized.UserID,
		Keyword:     normalized.Keyword,
		MinPrice:    normalized.MinPrice,
		MaxPrice:    normalized.MaxPrice,
		Zip:         normalized.Zip,
		Radius:      normalized.Radius,
		Marketplace: normalized.Marketplace,
		Category:    normalized.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(criterion); err != nil {
		return nil, err
	}

	log.Printf("[watchlist] created item id=%s user=%s keyword=%q marketplace=%s", criterion.ID, criterion.UserID, criterion.Keyword, criterion.Marketplace)
	return &criterion, nil
}

// Get returns the criterion with the given ID.
func (s *Service) Get(id string) (*models.WatchCriterion, error) {
	criterion, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if criterion == nil {
		return nil, ErrNotFound
	}
	return criterion, nil
}

// List returns all criteria owned by the user.
func (s *Service) List(userID string) ([]models.WatchCriterion, error) {
	return s.repo.ListByUser(userID)
}

// Update replaces every field of an existing criterion except its ID and
// owner. Switching marketplace re-checks the cap on the target marketplace.
func (s *Service) Update(id string, upsert models.WatchCriterionUpsert) (*models.WatchCriterion, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	upsert.UserID = existing.UserID
	normalized, err := normalize(upsert)
	if err != nil {
		return nil, err
	}

	if normalized.Marketplace != existing.Marketplace {
		count, err := s.repo.CountByUserAndMarketplace(existing.UserID, normalized.Marketplace)
		if err != nil {
			return nil, err
		}
		if count >= models.MaxCriteriaPerMarketplace {
			return nil, ErrMarketplaceCapReached
		}
	}

	updated := *existing
	updated.Keyword = normalized.Keyword
	updated.MinPrice = normalized.MinPrice
	updated.MaxPrice = normalized.MaxPrice
	updated.Zip = normalized.Zip
	updated.Radius = normalized.Radius
	updated.Marketplace = normalized.Marketplace
	updated.Category = normalized.Category
	updated.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	log.Printf("[watchlist] updated item id=%s keyword=%q", updated.ID, updated.Keyword)
	return &updated, nil
}

// Delete removes the criterion with the given ID.
func (s *Service) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	log.Printf("[watchlist] deleted item id=%s", id)
	return nil
}

// normalize validates a submission and applies field defaults.
func normalize(upsert models.WatchCriterionUpsert) (models.WatchCriterionUpsert, error) {
	out := upsert
	out.Keyword = strings.TrimSpace(upsert.Keyword)
	out.Zip = strings.TrimSpace(upsert.Zip)
	out.Category = strings.TrimSpace(strings.ToLower(upsert.Category))

	if out.UserID == "" {
		out.UserID = models.DefaultUserID
	}
	if out.Keyword == "" {
		return out, &ValidationError{Field: "keyword", Reason: "must not be empty"}
	}
	if out.MinPrice < 0 {
		return out, &ValidationError{Field: "minPrice", Reason: "must not be negative"}
	}
	if out.MaxPrice <= 0 {
		return out, &ValidationError{Field: "maxPrice", Reason: "must be positive"}
	}
	if out.MinPrice > out.MaxPrice {
		return out, &ValidationError{Field: "minPrice", Reason: "must not exceed maxPrice"}
	}
	if !utils.ValidateZip(out.Zip) {
		return out, &ValidationError{Field: "zip", Reason: "must be exactly 5 digits"}
	}
	if out.Radius == 0 {
		out.Radius = models.DefaultRadiusMiles
	}
	if out.Radius < 0 || out.Radius > models.MaxRadiusMiles {
		return out, &ValidationError{Field: "radius", Reason: fmt.Sprintf("must be between 0 and %d miles", models.MaxRadiusMiles)}
	}
	if !models.KnownMarketplace(string(out.Marketplace)) {
		return out, &ValidationError{Field: "marketplace", Reason: "must be craigslist, facebook, or offerup"}
	}
	if out.Category == "" {
		out.Category = models.CategoryAll
	}
	if !models.KnownCategory(out.Category) {
		return out, &ValidationError{Field: "category", Reason: "unknown category"}
	}
	return out, nil
}
