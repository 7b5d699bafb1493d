package domain

// Timesheet is one user's week of time entries. ID is zero until the
// backend assigns one; until then the timesheet is a client-side draft.
type Timesheet struct {
	ID           int64       `json:"id,omitempty"`
	UserID       int64       `json:"userId,omitempty"`
	WeekStarting string      `json:"weekStarting"` // YYYY-MM-DD, a Monday
	WeekEnding   string      `json:"weekEnding"`   // WeekStarting + 6 days
	TotalHours   float64     `json:"totalHours"`
	Status       string      `json:"status"` // stored free-form status, not the derived one
	Entries      []TimeEntry `json:"entries"`
}

// DraftStatus is the stored status given to client-side drafts.
const DraftStatus = "draft"

// IsDraft reports whether the timesheet has not been persisted yet.
func (t *Timesheet) IsDraft() bool {
	return t.ID == 0
}

// Recalculate rewrites TotalHours from the entry set. TotalHours is a pure
// derivation and must never be adjusted incrementally; every mutation path
// calls this to keep the invariant.
func (t *Timesheet) Recalculate() {
	t.TotalHours = SumHours(t.Entries)
}

// Clone returns a deep copy with its own entry slice. Hand the copy, not
// the live timesheet, to anything running on another goroutine.
func (t *Timesheet) Clone() *Timesheet {
	c := *t
	c.Entries = append([]TimeEntry(nil), t.Entries...)
	return &c
}

// DerivedStatus classifies the timesheet from its total hours.
func (t *Timesheet) DerivedStatus() DerivedStatus {
	return Classify(t.TotalHours)
}

// FindEntry returns a pointer to the entry with the given id, or nil.
func (t *Timesheet) FindEntry(id string) *TimeEntry {
	for i := range t.Entries {
		if t.Entries[i].ID == id {
			return &t.Entries[i]
		}
	}
	return nil
}

// User is the authenticated account a session belongs to.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
