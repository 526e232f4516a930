// Package users manages FlipSniper profiles. Profiles stand in for the
// hosted identity provider: they own watchlist criteria but carry no
// credentials. State is a single JSON document on disk.
package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"flipsniper/models"
)

const storeFileName = "users.json"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDefaultUser   = errors.New("the default profile cannot be deleted")
	ErrEmptyUserName = errors.New("profile name must not be empty")
)

// Service stores profiles in a JSON file under the configured directory.
type Service struct {
	fs   afero.Fs
	path string

	mu    sync.RWMutex
	users map[string]models.User
}

// NewService creates a user service persisting under dir on the real
// filesystem. The default profile is created on first start.
func NewService(dir string) (*Service, error) {
	return NewServiceWithFs(afero.NewOsFs(), dir)
}

// NewServiceWithFs is NewService with an injectable filesystem, used by
// tests with an in-memory fs.
func NewServiceWithFs(fs afero.Fs, dir string) (*Service, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create users directory: %w", err)
	}

	s := &Service{
		fs:    fs,
		path:  filepath.Join(dir, storeFileName),
		users: make(map[string]models.User),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	if _, ok := s.users[models.DefaultUserID]; !ok {
		now := time.Now().UTC()
		s.users[models.DefaultUserID] = models.User{
			ID:        models.DefaultUserID,
			Name:      models.DefaultUserName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.persist(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// List returns every profile ordered by creation time.
func (s *Service) List() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Exists reports whether a profile with the given ID is present.
func (s *Service) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok
}

// Get returns the profile with the given ID.
func (s *Service) Get(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// Create adds a new profile with the given display name.
func (s *Service) Create(name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyUserName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[user.ID] = user

	if err := s.persist(); err != nil {
		delete(s.users, user.ID)
		return nil, err
	}
	return &user, nil
}

// Rename changes a profile's display name.
func (s *Service) Rename(id, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyUserName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	user.Name = name
	user.UpdatedAt = time.Now().UTC()
	s.users[id] = user

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a profile. The default profile is protected.
func (s *Service) Delete(id string) error {
	if id == models.DefaultUserID {
		return ErrDefaultUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)

	if err := s.persist(); err != nil {
		s.users[id] = removed
		return err
	}
	return nil
}

func (s *Service) load() error {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("check users store: %w", err)
	}
	if !exists {
		return nil
	}

	raw, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("read users store: %w", err)
	}

	var stored []models.User
	if err := json.Unmarshal(raw, &stored); err != nil {
		return fmt.Errorf("parse users store: %w", err)
	}
	for _, u := range stored {
		s.users[u.ID] = u
	}
	return nil
}

func (s *Service) persist() error {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users store: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, raw, 0644); err != nil {
		return fmt.Errorf("write users store: %w", err)
	}
	return nil
}
