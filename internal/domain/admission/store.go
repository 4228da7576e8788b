package admission

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/admitdesk/admitdesk/internal/platform/kvstore"
)

const storageKey = "admissions"

var (
	ErrNotFound          = errors.New("admission not found")
	ErrCorruptData       = errors.New("stored admission data is unreadable")
	ErrInvalidStatus     = errors.New("invalid admission status")
	ErrInvalidTransition = errors.New("admission status transition not allowed")
)

// Repository is the record-store surface the service consumes.
type Repository interface {
	Load() error
	Add(input AdmissionInput) (*Admission, error)
	Get(id string) (*Admission, error)
	UpdateStatus(id, status string) (*Admission, error)
	Delete(id string) error
	List() []*Admission
	ListByUser(userID string) []*Admission
	ListByStatus(status string) []*Admission
	CountByStatus() map[string]int
}

// Store keeps the full admissions collection in memory and rewrites the
// backing key on every mutation. Duplicate applications (same email or
// phone) are retained; de-duplication is a review-time concern.
type Store struct {
	kv kvstore.Store

	mu         sync.Mutex
	admissions []*Admission
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Load reads the collection from storage. A missing key yields an empty
// collection; unparseable data is reported as ErrCorruptData.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(storageKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			s.admissions = nil
			return nil
		}
		return err
	}
	var items []*Admission
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	s.admissions = items
	return nil
}

// Reset discards the collection in memory and in storage.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admissions = nil
	return s.kv.Remove(storageKey)
}

func (s *Store) persistLocked() error {
	raw, err := json.Marshal(s.admissions)
	if err != nil {
		return err
	}
	return s.kv.Set(storageKey, raw)
}

// Add appends a new pending application and persists the collection. The
// in-memory slice is rolled back if the write fails.
func (s *Store) Add(input AdmissionInput) (*Admission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &Admission{
		ID:                uuid.New().String(),
		FullName:          input.FullName,
		Email:             input.Email,
		Phone:             input.Phone,
		CourseInterested:  input.CourseInterested,
		Address:           input.Address,
		Remarks:           input.Remarks,
		PreviousEducation: input.PreviousEducation,
		PercentageOrGPA:   input.PercentageOrGPA,
		GuardianName:      input.GuardianName,
		GuardianPhone:     input.GuardianPhone,
		UserID:            input.UserID,
		Status:            StatusPending,
		Timestamp:         time.Now().UTC(),
	}
	s.admissions = append(s.admissions, a)
	if err := s.persistLocked(); err != nil {
		s.admissions = s.admissions[:len(s.admissions)-1]
		return nil, err
	}
	copied := *a
	return &copied, nil
}

func (s *Store) Get(id string) (*Admission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.admissions {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateStatus records a review decision. The previous status is restored
// if the write fails.
func (s *Store) UpdateStatus(id, status string) (*Admission, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.admissions {
		if a.ID != id {
			continue
		}
		prev := a.Status
		a.Status = status
		if err := s.persistLocked(); err != nil {
			a.Status = prev
			return nil, err
		}
		copied := *a
		return &copied, nil
	}
	return nil, ErrNotFound
}

// Delete removes the application if present. Deleting an unknown id is a
// no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.admissions {
		if a.ID != id {
			continue
		}
		prev := s.admissions
		s.admissions = append(append([]*Admission{}, prev[:i]...), prev[i+1:]...)
		if err := s.persistLocked(); err != nil {
			s.admissions = prev
			return err
		}
		return nil
	}
	return nil
}

func (s *Store) List() []*Admission {
	return s.snapshot(func(*Admission) bool { return true })
}

func (s *Store) ListByUser(userID string) []*Admission {
	return s.snapshot(func(a *Admission) bool { return a.UserID == userID })
}

func (s *Store) ListByStatus(status string) []*Admission {
	return s.snapshot(func(a *Admission) bool { return a.Status == status })
}

func (s *Store) CountByStatus() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, a := range s.admissions {
		counts[a.Status]++
	}
	return counts
}

// snapshot returns copies in insertion order.
func (s *Store) snapshot(keep func(*Admission) bool) []*Admission {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Admission, 0, len(s.admissions))
	for _, a := range s.admissions {
		if keep(a) {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out
}
