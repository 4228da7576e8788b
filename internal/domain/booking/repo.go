package booking

import "time"

// Repository is the record-store surface the service consumes. *Store is the
// production implementation; tests may substitute their own.
type Repository interface {
	Load() error
	Add(input AppointmentInput) (*Appointment, error)
	Get(id string) (*Appointment, error)
	UpdateStatus(id, status string, assignedDate *time.Time) (*Appointment, error)
	Delete(id string) error
	List() []*Appointment
	ListByUser(userID string) []*Appointment
	ListByStatus(status string) []*Appointment
	CountByStatus() map[string]int
}
