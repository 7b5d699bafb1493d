package service

import (
	"context"
	"errors"
	"time"

	"github.com/tentwenty/ticktock/internal/domain"
)

// fakeTimesheets is an in-memory TimesheetService with injectable failures.
type fakeTimesheets struct {
	sheets []*domain.Timesheet
	nextID int64

	listErr   error
	getErr    error
	createErr error
	updateErr error

	updateCalls int
	lastUpdated *domain.Timesheet

	// updateHook runs inside Update with the raw payload, before it is
	// recorded. Lets tests read the payload the way the HTTP client would.
	updateHook func(*domain.Timesheet)
}

func newFakeTimesheets(sheets ...*domain.Timesheet) *fakeTimesheets {
	return &fakeTimesheets{sheets: sheets, nextID: 100}
}

func (f *fakeTimesheets) List(_ context.Context, userID int64) ([]*domain.Timesheet, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if userID == 0 {
		return f.sheets, nil
	}
	var out []*domain.Timesheet
	for _, ts := range f.sheets {
		if ts.UserID == userID {
			out = append(out, ts)
		}
	}
	return out, nil
}

func (f *fakeTimesheets) Get(_ context.Context, id int64) (*domain.Timesheet, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, ts := range f.sheets {
		if ts.ID == id {
			copied := *ts
			return &copied, nil
		}
	}
	return nil, errors.New("timesheet not found")
}

func (f *fakeTimesheets) Create(_ context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *ts
	f.nextID++
	created.ID = f.nextID
	f.sheets = append(f.sheets, &created)
	return &created, nil
}

func (f *fakeTimesheets) Update(_ context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateHook != nil {
		f.updateHook(ts)
	}
	copied := *ts
	f.lastUpdated = &copied
	return &copied, nil
}

func (f *fakeTimesheets) Delete(_ context.Context, id int64) error {
	for i, ts := range f.sheets {
		if ts.ID == id {
			f.sheets = append(f.sheets[:i], f.sheets[i+1:]...)
			return nil
		}
	}
	return errors.New("timesheet not found")
}

// fixedClock pins the editor to a Wednesday so week windows are stable.
func fixedClock() time.Time {
	return time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
}

func sheetWithHours(id, userID int64, week string, hours ...float64) *domain.Timesheet {
	start, _ := time.Parse(domain.DateLayout, week)
	ts := &domain.Timesheet{
		ID:           id,
		UserID:       userID,
		WeekStarting: week,
		WeekEnding:   start.AddDate(0, 0, 6).Format(domain.DateLayout),
		Status:       "submitted",
	}
	for i, h := range hours {
		ts.Entries = append(ts.Entries, domain.TimeEntry{
			ID:          ts.WeekStarting + "-e" + string(rune('a'+i)),
			Date:        week,
			Description: "work",
			Project:     "TenTwenty App",
			Hours:       h,
		})
	}
	ts.Recalculate()
	return ts
}
