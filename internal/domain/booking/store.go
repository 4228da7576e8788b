package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/admitdesk/admitdesk/internal/platform/kvstore"
)

const storageKey = "appointments"

var (
	ErrNotFound          = errors.New("appointment not found")
	ErrCorruptData       = errors.New("stored appointments are unreadable")
	ErrInvalidStatus     = errors.New("invalid appointment status")
	ErrInvalidTransition = errors.New("status transition not permitted")
)

// Store is the authoritative in-memory mirror of the appointments
// collection, persisted as one JSON array under a single storage key. Every
// mutation rewrites the whole collection; a failed write rolls the in-memory
// state back so readers never observe an unpersisted change as success.
type Store struct {
	kv kvstore.Store

	mu           sync.Mutex
	appointments []*Appointment
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Load rehydrates the collection from storage. An absent key initializes an
// empty collection; an unparseable payload is reported as ErrCorruptData and
// the caller decides whether to reset or surface the failure.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(storageKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			s.appointments = nil
			return nil
		}
		return fmt.Errorf("load appointments: %w", err)
	}

	var appointments []*Appointment
	if err := json.Unmarshal(data, &appointments); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	s.appointments = appointments
	return nil
}

// Reset discards the persisted collection and empties the in-memory mirror.
// Used as the degrade-to-empty policy after a corrupt load.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Remove(storageKey); err != nil {
		return fmt.Errorf("reset appointments: %w", err)
	}
	s.appointments = nil
	return nil
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.appointments)
	if err != nil {
		return fmt.Errorf("encode appointments: %w", err)
	}
	if err := s.kv.Set(storageKey, data); err != nil {
		return fmt.Errorf("persist appointments: %w", err)
	}
	return nil
}

// Add assigns a fresh id, stamps creation time, starts the appointment at
// pending, and persists the grown collection.
func (s *Store) Add(input AppointmentInput) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &Appointment{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Department:    input.Department,
		PreferredDate: input.PreferredDate,
		Remarks:       input.Remarks,
		UserID:        input.UserID,
		Status:        StatusPending,
		Timestamp:     time.Now().UTC(),
		Mode:          input.Mode,
	}

	s.appointments = append(s.appointments, a)
	if err := s.persistLocked(); err != nil {
		s.appointments = s.appointments[:len(s.appointments)-1]
		return nil, err
	}
	return a, nil
}

// Get returns the appointment with the given id.
func (s *Store) Get(id string) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateStatus replaces the status of one appointment, optionally setting
// its assigned date, and persists the collection. Only enum membership is
// checked here; transition legality is the service's policy.
func (s *Store) UpdateStatus(id, status string, assignedDate *time.Time) (*Appointment, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.appointments {
		if a.ID != id {
			continue
		}
		prevStatus, prevAssigned := a.Status, a.AssignedDate
		a.Status = status
		if assignedDate != nil {
			a.AssignedDate = assignedDate
		}
		if err := s.persistLocked(); err != nil {
			a.Status, a.AssignedDate = prevStatus, prevAssigned
			return nil, err
		}
		copied := *a
		return &copied, nil
	}
	return nil, ErrNotFound
}

// Delete removes the appointment with the given id. Deleting an absent id is
// a no-op, not an error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.appointments {
		if a.ID == id {
			prev := s.appointments
			s.appointments = append(append([]*Appointment{}, prev[:i]...), prev[i+1:]...)
			if err := s.persistLocked(); err != nil {
				s.appointments = prev
				return err
			}
			return nil
		}
	}
	return nil
}

// List returns the full collection in insertion order.
func (s *Store) List() []*Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(*Appointment) bool { return true })
}

// ListByUser returns the appointments submitted by one user, in insertion
// order. Purely in-memory; storage is not touched.
func (s *Store) ListByUser(userID string) []*Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(a *Appointment) bool { return a.UserID == userID })
}

// ListByStatus returns the appointments currently in the given status.
func (s *Store) ListByStatus(status string) []*Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(a *Appointment) bool { return a.Status == status })
}

// CountByStatus tallies the collection for dashboard badges.
func (s *Store) CountByStatus() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int)
	for _, a := range s.appointments {
		counts[a.Status]++
	}
	return counts
}

func (s *Store) snapshotLocked(keep func(*Appointment) bool) []*Appointment {
	result := []*Appointment{}
	for _, a := range s.appointments {
		if keep(a) {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result
}
