package testutil

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tentwenty/ticktock/internal/domain"
)

var testIDCounter atomic.Int64

func nextID() int64 {
	return 1000 + testIDCounter.Add(1)
}

// User fixtures

type UserOption func(*domain.User)

func WithUserID(id int64) UserOption {
	return func(u *domain.User) { u.ID = id }
}

func WithEmail(email string) UserOption {
	return func(u *domain.User) { u.Email = email }
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:    nextID(),
		Name:  name,
		Email: "test@example.com",
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Timesheet fixtures

type TimesheetOption func(*domain.Timesheet)

func WithTimesheetID(id int64) TimesheetOption {
	return func(ts *domain.Timesheet) { ts.ID = id }
}

func WithOwner(userID int64) TimesheetOption {
	return func(ts *domain.Timesheet) { ts.UserID = userID }
}

func WithWeek(weekStarting string) TimesheetOption {
	return func(ts *domain.Timesheet) {
		ts.WeekStarting = weekStarting
		if start, err := time.Parse(domain.DateLayout, weekStarting); err == nil {
			ts.WeekEnding = start.AddDate(0, 0, 6).Format(domain.DateLayout)
		}
	}
}

func WithEntry(date, description string, hours float64) TimesheetOption {
	return func(ts *domain.Timesheet) {
		ts.Entries = append(ts.Entries, domain.TimeEntry{
			ID:          uuid.New().String(),
			Date:        date,
			Description: description,
			Project:     "TenTwenty App",
			TypeOfWork:  domain.WorkTypes[0],
			Hours:       hours,
		})
		ts.Recalculate()
	}
}

// NewTestTimesheet builds a persisted timesheet for the week containing
// 2024-06-05 unless overridden.
func NewTestTimesheet(opts ...TimesheetOption) *domain.Timesheet {
	ts := &domain.Timesheet{
		ID:           nextID(),
		UserID:       1,
		WeekStarting: "2024-06-03",
		WeekEnding:   "2024-06-09",
		Status:       "submitted",
		Entries:      []domain.TimeEntry{},
	}
	for _, opt := range opts {
		opt(ts)
	}
	ts.Recalculate()
	return ts
}
