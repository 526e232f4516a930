// Package config loads runtime configuration from environment variables.
// Required values fail fast at startup; everything else has a sane default.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the FlipSniper backend.
type Config struct {
	Port              string
	DatabasePath      string
	UsersDir          string
	ListingFeedURL    string // optional; empty means synthetic supply only
	ListingsPerSource int    // synthetic listings generated per marketplace query
	LogPath           string // optional; empty logs to stderr
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/flipsniper.db"
	}

	usersDir := os.Getenv("USERS_DIR")
	if usersDir == "" {
		usersDir = "data/users"
	}

	perSource := 12
	if s := os.Getenv("LISTINGS_PER_SOURCE"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("LISTINGS_PER_SOURCE must be a positive integer, got %q", s)
		}
		perSource = v
	}

	return &Config{
		Port:              port,
		DatabasePath:      dbPath,
		UsersDir:          usersDir,
		ListingFeedURL:    os.Getenv("LISTING_FEED_URL"),
		ListingsPerSource: perSource,
		LogPath:           os.Getenv("LOG_PATH"),
	}, nil
}
