package booking

// allowedTransitions encodes the appointment lifecycle: admin triage from
// pending, date assignment on confirm, attendance marking from confirmed.
// A requester may cancel any appointment that is not yet finalized.
// rejected, cancelled, attended and missed are terminal.
var allowedTransitions = map[string]map[string]bool{
	StatusPending: {
		StatusApproved:  true,
		StatusRejected:  true,
		StatusCancelled: true,
	},
	StatusApproved: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusConfirmed: true, // reschedule with a new assigned date
		StatusAttended:  true,
		StatusMissed:    true,
		StatusCancelled: true,
	},
}

// CanTransition reports whether an appointment may move from one status to
// another. Unknown statuses never transition.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

// Terminal reports whether no further transition is defined from status.
func Terminal(status string) bool {
	return validStatuses[status] && len(allowedTransitions[status]) == 0
}
