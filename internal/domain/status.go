package domain

// DerivedStatus is the display-only completion status computed from a
// timesheet's total hours. It is never persisted; the backend keeps its own
// free-form status field which may drift from this one.
type DerivedStatus string

const (
	StatusCompleted  DerivedStatus = "completed"
	StatusIncomplete DerivedStatus = "incomplete"
	StatusMissing    DerivedStatus = "missing"
)

// TargetWeekHours is the weekly total at which a timesheet counts as complete.
const TargetWeekHours = 40

// Classify derives the completion status from total hours:
// exactly 40 is completed, anything strictly between 0 and 40 is incomplete,
// everything else (including 0 and negatives) is missing.
func Classify(totalHours float64) DerivedStatus {
	switch {
	case totalHours == TargetWeekHours:
		return StatusCompleted
	case totalHours > 0 && totalHours < TargetWeekHours:
		return StatusIncomplete
	default:
		return StatusMissing
	}
}

// Label returns the uppercase badge text for the status.
func (s DerivedStatus) Label() string {
	switch s {
	case StatusCompleted:
		return "COMPLETED"
	case StatusIncomplete:
		return "INCOMPLETE"
	case StatusMissing:
		return "MISSING"
	default:
		return "UNKNOWN"
	}
}

// ActionLabel returns the row action offered for a timesheet in this state.
func (s DerivedStatus) ActionLabel() string {
	switch s {
	case StatusCompleted:
		return "View"
	case StatusIncomplete:
		return "Update"
	case StatusMissing:
		return "Create"
	default:
		return "View"
	}
}

// DerivedStatuses lists all derived status values, in display order.
var DerivedStatuses = []DerivedStatus{StatusCompleted, StatusIncomplete, StatusMissing}

// ParseDerivedStatus matches a user-supplied string against the known
// statuses. The empty string and "all" mean no filter.
func ParseDerivedStatus(s string) (DerivedStatus, bool) {
	switch DerivedStatus(s) {
	case StatusCompleted, StatusIncomplete, StatusMissing:
		return DerivedStatus(s), true
	}
	return "", false
}
