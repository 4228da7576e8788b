package admission

import "time"

// Admission statuses. Applications are reviewed once: approval and
// rejection are both final.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Admission is a submitted application. Field names round-trip with the
// historically stored JSON layout.
type Admission struct {
	ID                string    `json:"id"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	CourseInterested  string    `json:"courseInterested"`
	Address           string    `json:"address"`
	Remarks           string    `json:"remarks,omitempty"`
	PreviousEducation string    `json:"previousEducation,omitempty"`
	PercentageOrGPA   string    `json:"percentageOrGPA,omitempty"`
	GuardianName      string    `json:"guardianName,omitempty"`
	GuardianPhone     string    `json:"guardianPhone,omitempty"`
	UserID            string    `json:"userId,omitempty"`
	Status            string    `json:"status"`
	Timestamp         time.Time `json:"timestamp"`
}

// AdmissionInput carries the applicant-supplied fields; id, timestamp and
// status are assigned by the store.
type AdmissionInput struct {
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	CourseInterested  string `json:"courseInterested"`
	Address           string `json:"address"`
	Remarks           string `json:"remarks,omitempty"`
	PreviousEducation string `json:"previousEducation,omitempty"`
	PercentageOrGPA   string `json:"percentageOrGPA,omitempty"`
	GuardianName      string `json:"guardianName,omitempty"`
	GuardianPhone     string `json:"guardianPhone,omitempty"`
	UserID            string `json:"userId,omitempty"`
}

var validStatuses = map[string]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// ValidStatus reports whether s is one of the three admission statuses.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// CanTransition reports whether an application may move from one status to
// another. Only a pending application may be decided.
func CanTransition(from, to string) bool {
	return from == StatusPending && (to == StatusApproved || to == StatusRejected)
}
