package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/admitdesk/admitdesk/internal/platform/validate"
)

var ErrNotOwner = errors.New("appointment does not belong to the requester")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the request, adjusts a weekend preferred date to the next
// weekday, and adds the appointment starting at pending.
func (s *Service) Create(input AppointmentInput) (*Appointment, error) {
	if err := validate.Required("name", input.Name); err != nil {
		return nil, err
	}
	if err := validate.Required("department", input.Department); err != nil {
		return nil, err
	}
	if err := validate.Email(input.Email); err != nil {
		return nil, err
	}
	if err := validate.Phone(input.Phone); err != nil {
		return nil, err
	}
	if input.PreferredDate.IsZero() {
		return nil, fmt.Errorf("%w: preferredDate is required", validate.ErrValidation)
	}
	input.PreferredDate = NextWeekday(input.PreferredDate)
	return s.repo.Add(input)
}

func (s *Service) Get(id string) (*Appointment, error) {
	return s.repo.Get(id)
}

// UpdateStatus applies an admin status change, enforcing the lifecycle
// before the store is touched. Confirming without an explicit slot assigns
// the current time, matching the dashboard's one-tap confirm.
func (s *Service) UpdateStatus(id, status string, assignedDate *time.Time) (*Appointment, error) {
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
	if status == StatusConfirmed && assignedDate == nil {
		now := time.Now().UTC()
		assignedDate = &now
	}
	return s.repo.UpdateStatus(id, status, assignedDate)
}

// Cancel is the requester-side transition: the owner may cancel an
// appointment at any point before it is finalized.
func (s *Service) Cancel(id, requesterID string) (*Appointment, error) {
	current, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if current.UserID == "" || current.UserID != requesterID {
		return nil, ErrNotOwner
	}
	if !CanTransition(current.Status, StatusCancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, StatusCancelled)
	}
	return s.repo.UpdateStatus(id, StatusCancelled, nil)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

func (s *Service) List() []*Appointment {
	return s.repo.List()
}

func (s *Service) ListForUser(userID string) []*Appointment {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListByStatus(status string) []*Appointment {
	return s.repo.ListByStatus(status)
}

// Stats returns per-status counts for the admin dashboard badges.
func (s *Service) Stats() map[string]int {
	return s.repo.CountByStatus()
}
