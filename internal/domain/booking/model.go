package booking

import "time"

// Appointment statuses. The admin-driven seven-value lifecycle is canonical;
// the legacy three-value flow (pending/confirmed/cancelled) is a subset.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusAttended  = "attended"
	StatusMissed    = "missed"
)

// Appointment is a counselling appointment request. Field names round-trip
// with the historically stored JSON layout, so renames here would orphan
// existing data.
type Appointment struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Department    string     `json:"department"`
	PreferredDate time.Time  `json:"preferredDate"`
	Remarks       string     `json:"remarks"`
	UserID        string     `json:"userId,omitempty"`
	Status        string     `json:"status"`
	Timestamp     time.Time  `json:"timestamp"`
	AssignedDate  *time.Time `json:"assignedDate,omitempty"`
	Mode          string     `json:"mode,omitempty"` // "online" or "in_person"
	CounselorName string     `json:"counselorName,omitempty"`
}

// AppointmentInput carries the caller-supplied fields; id, timestamp and
// status are assigned by the store.
type AppointmentInput struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Department    string    `json:"department"`
	PreferredDate time.Time `json:"preferredDate"`
	Remarks       string    `json:"remarks"`
	UserID        string    `json:"userId,omitempty"`
	Mode          string    `json:"mode,omitempty"`
}

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusApproved:  true,
	StatusRejected:  true,
	StatusConfirmed: true,
	StatusCancelled: true,
	StatusAttended:  true,
	StatusMissed:    true,
}

// ValidStatus reports whether s is one of the seven appointment statuses.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	day := t.Weekday()
	return day >= time.Monday && day <= time.Friday
}

// NextWeekday advances a weekend date to the following Monday. Weekday
// dates are returned unchanged.
func NextWeekday(t time.Time) time.Time {
	for !IsWeekday(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
