package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/admitdesk/admitdesk/internal/platform/kvstore"
)

const (
	usersKey = "users"
	// currentKey mirrors the legacy single-device layout, where the
	// signed-in account was persisted separately from the roster.
	currentKey = "user"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailTaken  = errors.New("email already registered")
	ErrCorruptData = errors.New("stored user data is unreadable")
)

// Repository is the account-store surface the service consumes.
type Repository interface {
	Load() error
	Add(u *User) (*User, error)
	Get(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(u *User) (*User, error)
	SetCurrent(u *User) error
	ClearCurrent() error
	Current() (*User, error)
}

// Store keeps the user roster in memory and rewrites the backing key on
// every mutation. Email lookup is case-insensitive.
type Store struct {
	kv kvstore.Store

	mu    sync.Mutex
	users []*User
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(usersKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			s.users = nil
			return nil
		}
		return err
	}
	var items []*User
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	s.users = items
	return nil
}

// Reset discards the roster and the signed-in marker.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	if err := s.kv.Remove(usersKey); err != nil {
		return err
	}
	return s.kv.Remove(currentKey)
}

func (s *Store) persistLocked() error {
	raw, err := json.Marshal(s.users)
	if err != nil {
		return err
	}
	return s.kv.Set(usersKey, raw)
}

// Add stores a new account, rejecting an email already on the roster.
func (s *Store) Add(u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, ErrEmailTaken
		}
	}
	copied := *u
	s.users = append(s.users, &copied)
	if err := s.persistLocked(); err != nil {
		s.users = s.users[:len(s.users)-1]
		return nil, err
	}
	out := copied
	return &out, nil
}

func (s *Store) Get(id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) GetByEmail(email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces the stored record matching u.ID.
func (s *Store) Update(u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.users {
		if existing.ID != u.ID {
			continue
		}
		prev := s.users[i]
		copied := *u
		s.users[i] = &copied
		if err := s.persistLocked(); err != nil {
			s.users[i] = prev
			return nil, err
		}
		out := copied
		return &out, nil
	}
	return nil, ErrNotFound
}

// SetCurrent persists the signed-in account under its legacy key.
func (s *Store) SetCurrent(u *User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.kv.Set(currentKey, raw)
}

func (s *Store) ClearCurrent() error {
	return s.kv.Remove(currentKey)
}

// Current returns the signed-in account, or ErrNotFound when nobody is
// signed in.
func (s *Store) Current() (*User, error) {
	raw, err := s.kv.Get(currentKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return &u, nil
}
