package notification

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/admitdesk/admitdesk/internal/domain/booking"
)

var ErrNotMissed = errors.New("appointment is not missed")

// Reminder is the nudge sent to a student who missed an appointment. The
// mailto link pre-fills the follow-up email for the counsellor.
type Reminder struct {
	AppointmentID string `json:"appointmentId"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	MailtoURL     string `json:"mailtoUrl"`
}

const emailSignature = "Gojan School of Business and Technology"

// BuildReminder assembles the reminder payload for a missed appointment.
func BuildReminder(a *booking.Appointment) (*Reminder, error) {
	if a.Status != booking.StatusMissed {
		return nil, fmt.Errorf("%w: %s", ErrNotMissed, a.Status)
	}

	emailBody := fmt.Sprintf(
		"Dear %s,\n\n"+
			"You missed your counselling appointment scheduled for %s with the %s department.\n\n"+
			"Please reschedule your appointment at your earliest convenience.\n\n"+
			"Best regards,\n%s",
		a.Name, a.PreferredDate.Format("1/2/2006"), a.Department, emailSignature)

	q := url.Values{}
	q.Set("subject", "Missed Appointment - Please Reschedule")
	q.Set("body", emailBody)

	return &Reminder{
		AppointmentID: a.ID,
		Title:         "Missed Appointment Reminder",
		Body:          fmt.Sprintf("You missed your appointment with %s. Please reschedule.", a.Department),
		MailtoURL:     "mailto:" + a.Email + "?" + q.Encode(),
	}, nil
}
