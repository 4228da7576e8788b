package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/admitdesk/admitdesk/internal/platform/kvstore"
)

const storageKey = "settings"

var ErrCorruptData = errors.New("stored settings are unreadable")

// Settings holds per-installation preferences.
type Settings struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	Language             string `json:"language"`
	Theme                string `json:"theme"`
}

// Defaults mirror the legacy first-run values.
func Defaults() Settings {
	return Settings{
		NotificationsEnabled: true,
		Language:             "en",
		Theme:                "light",
	}
}

// Store persists the settings object under a single key. A missing or
// unreadable key falls back to defaults.
type Store struct {
	kv kvstore.Store

	mu      sync.Mutex
	current Settings
	loaded  bool
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(storageKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			s.current = Defaults()
			s.loaded = true
			return nil
		}
		return err
	}
	var loaded Settings
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	s.current = loaded
	s.loaded = true
	return nil
}

func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return Defaults()
	}
	return s.current
}

// Update replaces the settings and persists them, rolling back in memory
// if the write fails.
func (s *Store) Update(next Settings) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current
	s.current = next
	s.loaded = true

	raw, err := json.Marshal(next)
	if err != nil {
		s.current = prev
		return Settings{}, err
	}
	if err := s.kv.Set(storageKey, raw); err != nil {
		s.current = prev
		return Settings{}, err
	}
	return next, nil
}

// Reset restores defaults and removes the stored key.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Defaults()
	s.loaded = true
	return s.kv.Remove(storageKey)
}
