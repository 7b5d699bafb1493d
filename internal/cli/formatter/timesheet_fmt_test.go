package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tentwenty/ticktock/internal/domain"
)

func weekOf(id int64, hours float64) *domain.Timesheet {
	return &domain.Timesheet{
		ID:           id,
		WeekStarting: "2024-06-03",
		WeekEnding:   "2024-06-09",
		TotalHours:   hours,
		Entries: []domain.TimeEntry{
			{ID: "e1", Date: "2024-06-03", Description: "fix login", Project: "TenTwenty App", TypeOfWork: "Bug fixes", Hours: hours},
		},
	}
}

func TestFormatTimesheetTable(t *testing.T) {
	out := FormatTimesheetTable([]*domain.Timesheet{weekOf(4, 40), weekOf(5, 16)}, 5)

	assert.Contains(t, out, "DATE RANGE")
	assert.Contains(t, out, "3 - 9 June, 2024")
	assert.Contains(t, out, "COMPLETED")
	assert.Contains(t, out, "INCOMPLETE")
	assert.Contains(t, out, "View")
	assert.Contains(t, out, "Update")
	// Absolute row numbering continues from startIndex.
	assert.Contains(t, out, "6")
	assert.Contains(t, out, "7")
}

func TestFormatListFooter(t *testing.T) {
	out := FormatListFooter(2, 3, 5, 12)
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, "5 of 12")

	// Empty collections still read as one page.
	out = FormatListFooter(1, 0, 0, 0)
	assert.Contains(t, out, "Page 1 of 1")
}

func TestFormatWeek(t *testing.T) {
	ts := weekOf(4, 16)
	ts.Entries = append(ts.Entries, domain.TimeEntry{
		ID: "e2", Date: "2024-06-04", Description: "standup notes", Project: "Internal", Hours: 1,
	})

	out := FormatWeek(ts)
	assert.Contains(t, out, "3 - 9 JUNE, 2024")
	assert.Contains(t, out, "Jun 3")
	assert.Contains(t, out, "Jun 4")
	assert.Contains(t, out, "fix login")
	assert.Contains(t, out, "Bug fixes")
	assert.Contains(t, out, "16h/40h")
}

func TestFormatWeek_Empty(t *testing.T) {
	ts := &domain.Timesheet{WeekStarting: "2024-06-03", WeekEnding: "2024-06-09"}
	out := FormatWeek(ts)
	assert.Contains(t, out, "No entries this week.")
}
