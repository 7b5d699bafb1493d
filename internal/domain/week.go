package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used throughout.
const DateLayout = "2006-01-02"

// WeekWindowFor returns the Monday and Sunday bounding the week that
// contains now. A Sunday belongs to the week that started the previous
// Monday, so the window never starts in the future.
func WeekWindowFor(now time.Time) (start, end time.Time) {
	offset := 1 - int(now.Weekday()) // Weekday: 0=Sunday .. 6=Saturday
	if now.Weekday() == time.Sunday {
		offset = -6
	}
	y, m, d := now.Date()
	start = time.Date(y, m, d+offset, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// CurrentWeek returns the current week window as wire-format date strings.
func CurrentWeek(now time.Time) (weekStarting, weekEnding string) {
	start, end := WeekWindowFor(now)
	return start.Format(DateLayout), end.Format(DateLayout)
}

// NewDraft builds an unpersisted timesheet for the week containing now.
func NewDraft(userID int64, now time.Time) *Timesheet {
	ws, we := CurrentWeek(now)
	return &Timesheet{
		UserID:       userID,
		WeekStarting: ws,
		WeekEnding:   we,
		Status:       DraftStatus,
		Entries:      []TimeEntry{},
	}
}

// FormatDateRange renders a week window as "D - D Month, YYYY", the exact
// string the date-range filter compares against. Month and year come from
// the week start. Unparseable input falls back to the raw strings.
func FormatDateRange(weekStarting, weekEnding string) string {
	start, err1 := time.Parse(DateLayout, weekStarting)
	end, err2 := time.Parse(DateLayout, weekEnding)
	if err1 != nil || err2 != nil {
		return weekStarting + " - " + weekEnding
	}
	return fmt.Sprintf("%d - %d %s, %d", start.Day(), end.Day(), start.Month().String(), start.Year())
}

// FormatEntryDate renders an entry date as a short header like "Jun 3".
func FormatEntryDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}

// WeekDates lists the seven calendar dates of a week window. Used by the
// editor to offer "add entry" slots for days with no entries yet.
func WeekDates(weekStarting string) []string {
	start, err := time.Parse(DateLayout, weekStarting)
	if err != nil {
		return nil
	}
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates
}
