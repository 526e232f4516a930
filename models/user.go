package models

import "time"

const (
	// DefaultUserID represents the single-profile watchlist owner used
	// before accounts are linked to a hosted identity provider.
	DefaultUserID = "default"
	// DefaultUserName is used when creating the initial profile.
	DefaultUserName = "Primary Profile"
)

// User models a FlipSniper profile capable of owning watchlist criteria.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
