package cli

import (
	"context"
	"errors"
	"time"

	"github.com/tentwenty/ticktock/internal/domain"
	"github.com/tentwenty/ticktock/internal/testutil"
)

// fakeAuth is an in-memory AuthService.
type fakeAuth struct {
	user     *domain.User
	loginErr error
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) (*domain.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.user = testutil.NewTestUser("Test User", testutil.WithEmail(email), testutil.WithUserID(7))
	return f.user, nil
}

func (f *fakeAuth) Profile(_ context.Context) (*domain.User, error) {
	if f.user == nil {
		return nil, errors.New("not logged in")
	}
	return f.user, nil
}

func (f *fakeAuth) Logout() { f.user = nil }

func (f *fakeAuth) CurrentUser() *domain.User { return f.user }

// fakeBackend is an in-memory TimesheetService with injectable failures.
type fakeBackend struct {
	sheets []*domain.Timesheet
	nextID int64

	listErr   error
	getErr    error
	updateErr error

	updateCalls int
	lastUpdated *domain.Timesheet
	deleted     []int64
}

func newFakeBackend(sheets ...*domain.Timesheet) *fakeBackend {
	return &fakeBackend{sheets: sheets, nextID: 500}
}

func (f *fakeBackend) List(_ context.Context, userID int64) ([]*domain.Timesheet, error) {
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

func (f *fakeBackend) Get(_ context.Context, id int64) (*domain.Timesheet, error) {
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

func (f *fakeBackend) Create(_ context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	created := *ts
	f.nextID++
	created.ID = f.nextID
	f.sheets = append(f.sheets, &created)
	return &created, nil
}

func (f *fakeBackend) Update(_ context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	copied := *ts
	f.lastUpdated = &copied
	return &copied, nil
}

func (f *fakeBackend) Delete(_ context.Context, id int64) error {
	for i, ts := range f.sheets {
		if ts.ID == id {
			f.sheets = append(f.sheets[:i], f.sheets[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return errors.New("timesheet not found")
}

// testApp wires an App against the fakes, interactive by default.
func testApp(auth *fakeAuth, backend *fakeBackend) *App {
	return &App{
		Auth:          auth,
		Timesheets:    backend,
		IsInteractive: func() bool { return true },
	}
}

// pinClock pins the TUI's week to one containing 2024-06-05 for the test.
func pinClock() func() {
	orig := timeNow
	timeNow = func() time.Time {
		return time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	}
	return func() { timeNow = orig }
}
