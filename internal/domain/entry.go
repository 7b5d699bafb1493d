package domain

// DefaultEntryHours is the hours value pre-filled when a new entry is created.
const DefaultEntryHours = 8

// Hour bounds enforced by the increment/decrement controls.
// Direct input is deliberately not clamped.
const (
	MinEntryHours = 0
	MaxEntryHours = 24
)

// TimeEntry is a single unit of logged work inside a timesheet week.
// It is owned exclusively by its parent Timesheet.
type TimeEntry struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"` // calendar date, YYYY-MM-DD
	Description string  `json:"description"`
	Project     string  `json:"project"`
	TypeOfWork  string  `json:"typeOfWork"`
	Hours       float64 `json:"hours"`
}

// WorkTypes are the selectable type-of-work values, first one is the default.
var WorkTypes = []string{
	"Bug fixes",
	"Feature Development",
	"Code Review",
	"Testing",
	"Documentation",
	"Meeting",
}

// ClampHours bounds h to the range the +/- controls allow.
func ClampHours(h float64) float64 {
	if h < MinEntryHours {
		return MinEntryHours
	}
	if h > MaxEntryHours {
		return MaxEntryHours
	}
	return h
}
