package admission

import (
	"errors"
	"fmt"

	"github.com/admitdesk/admitdesk/internal/platform/validate"
)

var ErrNotOwner = errors.New("admission does not belong to the requester")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit validates an application and records it as pending. Repeat
// submissions by the same applicant are accepted.
func (s *Service) Submit(input AdmissionInput) (*Admission, error) {
	if err := validate.Required("fullName", input.FullName); err != nil {
		return nil, err
	}
	if err := validate.Required("courseInterested", input.CourseInterested); err != nil {
		return nil, err
	}
	if err := validate.Required("address", input.Address); err != nil {
		return nil, err
	}
	if err := validate.Email(input.Email); err != nil {
		return nil, err
	}
	if err := validate.Phone(input.Phone); err != nil {
		return nil, err
	}
	if input.GuardianPhone != "" {
		if err := validate.Phone(input.GuardianPhone); err != nil {
			return nil, err
		}
	}
	return s.repo.Add(input)
}

// Get returns the application, enforcing ownership for non-admin callers
// at the handler.
func (s *Service) Get(id string) (*Admission, error) {
	return s.repo.Get(id)
}

// Decide records the review outcome. Decisions are final: deciding an
// already-decided application fails.
func (s *Service) Decide(id, status string) (*Admission, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	current, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}
	return s.repo.UpdateStatus(id, status)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

func (s *Service) List() []*Admission {
	return s.repo.List()
}

func (s *Service) ListForUser(userID string) []*Admission {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListByStatus(status string) []*Admission {
	return s.repo.ListByStatus(status)
}

func (s *Service) Stats() map[string]int {
	return s.repo.CountByStatus()
}
