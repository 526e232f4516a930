package database

import (
	"database/sql"
	"fmt"

	"flipsniper/models"
)

// WatchlistRepository provides access to persisted watchlist criteria.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a repository bound to the given connection.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

const criterionColumns = "id, user_id, keyword, min_price, max_price, zip, radius, marketplace, category, created_at, updated_at"

// Insert stores a new criterion.
func (r *WatchlistRepository) Insert(c models.WatchCriterion) error {
	_, err := r.db.Exec(
		`INSERT INTO watchlist_items (`+criterionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Keyword, c.MinPrice, c.MaxPrice, c.Zip, c.Radius, string(c.Marketplace), c.Category, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert watchlist item: %w", err)
	}
	return nil
}

// Get returns the criterion with the given ID, or nil when absent.
func (r *WatchlistRepository) Get(id string) (*models.WatchCriterion, error) {
	row := r.db.QueryRow(`SELECT `+criterionColumns+` FROM watchlist_items WHERE id = ?`, id)
	c, err := scanCriterion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get watchlist item: %w", err)
	}
	return c, nil
}

// ListByUser returns the user's criteria ordered by creation time.
func (r *WatchlistRepository) ListByUser(userID string) ([]models.WatchCriterion, error) {
	rows, err := r.db.Query(
		`SELECT `+criterionColumns+` FROM watchlist_items WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist items: %w", err)
	}
	defer rows.Close()

	items := make([]models.WatchCriterion, 0)
	for rows.Next() {
		c, err := scanCriterion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan watchlist item: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist items: %w", err)
	}
	return items, nil
}

// Update replaces every mutable field of the criterion. The ID never changes.
func (r *WatchlistRepository) Update(c models.WatchCriterion) error {
	res, err := r.db.Exec(
		`UPDATE watchlist_items
		 SET keyword = ?, min_price = ?, max_price = ?, zip = ?, radius = ?, marketplace = ?, category = ?, updated_at = ?
		 WHERE id = ?`,
		c.Keyword, c.MinPrice, c.MaxPrice, c.Zip, c.Radius, string(c.Marketplace), c.Category, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update watchlist item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update watchlist item: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the criterion with the given ID.
func (r *WatchlistRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM watchlist_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByUserAndMarketplace returns how many active criteria the user holds
// for one marketplace. Used to enforce the per-marketplace cap.
func (r *WatchlistRepository) CountByUserAndMarketplace(userID string, marketplace models.Marketplace) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM watchlist_items WHERE user_id = ? AND marketplace = ?`,
		userID, string(marketplace),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count watchlist items: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCriterion(row rowScanner) (*models.WatchCriterion, error) {
	var c models.WatchCriterion
	var marketplace string
	err := row.Scan(
		&c.ID, &c.UserID, &c.Keyword, &c.MinPrice, &c.MaxPrice, &c.Zip,
		&c.Radius, &marketplace, &c.Category, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Marketplace = models.Marketplace(marketplace)
	return &c, nil
}
