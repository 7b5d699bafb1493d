package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tentwenty/ticktock/internal/api"
	"github.com/tentwenty/ticktock/internal/domain"
	"github.com/tentwenty/ticktock/internal/service"
	"github.com/tentwenty/ticktock/internal/teatest"
	"github.com/tentwenty/ticktock/internal/testutil"
)

func newDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newAppModel(app))
	d.Resize(120, 40)
	d.DrainInit()
	return d
}

func threeWeeksBackend() *fakeBackend {
	return newFakeBackend(
		testutil.NewTestTimesheet(testutil.WithTimesheetID(4), testutil.WithOwner(7),
			testutil.WithEntry("2024-06-03", "api work", 40)),
		testutil.NewTestTimesheet(testutil.WithTimesheetID(5), testutil.WithOwner(7),
			testutil.WithWeek("2024-05-27"), testutil.WithEntry("2024-05-27", "reviews", 16)),
		testutil.NewTestTimesheet(testutil.WithTimesheetID(6), testutil.WithOwner(7),
			testutil.WithWeek("2024-05-20")),
	)
}

func loggedInAuth() *fakeAuth {
	return &fakeAuth{user: testutil.NewTestUser("Jane", testutil.WithUserID(7))}
}

func TestTUI_StartsOnLoginWithoutSession(t *testing.T) {
	d := newDriver(t, testApp(&fakeAuth{}, newFakeBackend()))
	assert.Contains(t, d.View(), "SIGN IN")
	assert.Contains(t, d.View(), "Email")
}

func TestTUI_StartsOnListWithSession(t *testing.T) {
	d := newDriver(t, testApp(loggedInAuth(), threeWeeksBackend()))
	view := d.View()
	assert.Contains(t, view, "Timesheets")
	assert.Contains(t, view, "DATE RANGE")
	assert.Contains(t, view, "COMPLETED")
	assert.Contains(t, view, "Jane")
}

func TestTUI_ListStatusFilterCycles(t *testing.T) {
	d := newDriver(t, testApp(loggedInAuth(), threeWeeksBackend()))

	d.Press('f') // all -> completed
	view := d.View()
	assert.Contains(t, view, "COMPLETED")
	assert.NotContains(t, view, "INCOMPLETE")

	d.Press('f') // completed -> incomplete
	view = d.View()
	assert.Contains(t, view, "INCOMPLETE")
	assert.NotContains(t, view, "COMPLETED")

	d.Press('f') // -> missing
	d.Press('f') // -> all
	view = d.View()
	assert.Contains(t, view, "COMPLETED")
	assert.Contains(t, view, "INCOMPLETE")
}

func TestTUI_ListShowsEmptyStateWhenFiltersMatchNothing(t *testing.T) {
	backend := newFakeBackend(
		testutil.NewTestTimesheet(testutil.WithTimesheetID(4), testutil.WithOwner(7),
			testutil.WithEntry("2024-06-03", "api work", 16)),
	)
	d := newDriver(t, testApp(loggedInAuth(), backend))

	d.Press('f') // completed: no rows match
	assert.Contains(t, d.View(), "No timesheets match")
}

func TestTUI_OpenWeekFromList(t *testing.T) {
	d := newDriver(t, testApp(loggedInAuth(), threeWeeksBackend()))

	d.PressEnter()
	view := d.View()
	assert.Contains(t, view, "api work")
	assert.Contains(t, view, "Jun 3")
	assert.Contains(t, view, "40h/40h")

	// Esc returns to the list.
	d.PressEsc()
	assert.Contains(t, d.View(), "DATE RANGE")
}

func TestTUI_WeekAdjustHoursPersists(t *testing.T) {
	backend := threeWeeksBackend()
	d := newDriver(t, testApp(loggedInAuth(), backend))

	d.PressEnter() // open week 4 (40h entry)
	d.Press('-')   // 40 -> 39
	assert.Contains(t, d.View(), "39h")
	require.NotNil(t, backend.lastUpdated)
	assert.Equal(t, 39.0, backend.lastUpdated.TotalHours)

	d.Press('+')
	assert.Equal(t, 40.0, backend.lastUpdated.TotalHours)
}

func TestTUI_WeekAdjustHoursClampsAtBounds(t *testing.T) {
	backend := newFakeBackend(
		testutil.NewTestTimesheet(testutil.WithTimesheetID(4), testutil.WithOwner(7),
			testutil.WithEntry("2024-06-03", "cap day", 24)),
	)
	d := newDriver(t, testApp(loggedInAuth(), backend))

	d.PressEnter()
	d.Press('+') // already at 24, stays
	require.NotNil(t, backend.lastUpdated)
	assert.Equal(t, 24.0, backend.lastUpdated.Entries[0].Hours)
}

func TestTUI_WeekDeleteEntry(t *testing.T) {
	backend := newFakeBackend(
		testutil.NewTestTimesheet(testutil.WithTimesheetID(4), testutil.WithOwner(7),
			testutil.WithEntry("2024-06-03", "api work", 8),
			testutil.WithEntry("2024-06-04", "reviews", 4)),
	)
	d := newDriver(t, testApp(loggedInAuth(), backend))

	d.PressEnter()
	d.Press('x')
	view := d.View()
	assert.NotContains(t, view, "api work")
	assert.Contains(t, view, "reviews")
	require.NotNil(t, backend.lastUpdated)
	assert.Len(t, backend.lastUpdated.Entries, 1)
}

func TestTUI_AddEntryFormOpensAndCancels(t *testing.T) {
	d := newDriver(t, testApp(loggedInAuth(), threeWeeksBackend()))

	d.PressEnter() // week view
	d.Press('a')
	assert.Contains(t, d.View(), "Date")

	d.PressEsc() // cancel back to the week
	assert.Contains(t, d.View(), "api work")
}

func TestTUI_SessionExpiredDropsToLogin(t *testing.T) {
	backend := threeWeeksBackend()
	backend.listErr = api.ErrUnauthorized
	d := newDriver(t, testApp(loggedInAuth(), backend))

	view := d.View()
	assert.Contains(t, view, "SIGN IN")
	assert.Contains(t, view, "Session expired")
}

func TestTUI_DeleteTimesheetConfirm(t *testing.T) {
	backend := threeWeeksBackend()
	d := newDriver(t, testApp(loggedInAuth(), backend))

	d.Press('x')
	assert.Contains(t, d.View(), "Delete the week of")

	// Default answer is Yes; confirm deletes and refreshes the list.
	d.PressEnter()
	assert.Equal(t, []int64{4}, backend.deleted)
	assert.NotContains(t, d.View(), "3 - 9 June, 2024")
}

// drainCmd executes a command tree outside a running program, collecting
// the leaf messages.
func drainCmd(cmd tea.Cmd) []tea.Msg {
	var msgs []tea.Msg
	var exec func(c tea.Cmd)
	exec = func(c tea.Cmd) {
		if c == nil {
			return
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				exec(sub)
			}
			return
		}
		msgs = append(msgs, msg)
	}
	exec(cmd)
	return msgs
}

func TestEntryForm_MutatesBeforeSaveAndSavesSnapshot(t *testing.T) {
	backend := newFakeBackend(
		testutil.NewTestTimesheet(testutil.WithTimesheetID(4), testutil.WithOwner(7),
			testutil.WithEntry("2024-06-03", "api work", 8)),
	)
	app := testApp(loggedInAuth(), backend)
	state := &SharedState{App: app}
	editor := service.NewEditor(app.Timesheets)
	require.NoError(t, editor.Resolve(context.Background(), service.ResolveRequest{TimesheetID: 4}))

	f := &entryFormFields{
		date:        "2024-06-04",
		project:     "TenTwenty App",
		typeOfWork:  domain.WorkTypes[0],
		description: "reviews",
		hours:       "6",
	}
	cmd := applyEntryForm(state, editor, "", f)

	// The entry landed on the caller's goroutine, before the command ran.
	assert.Equal(t, 14.0, editor.Sheet().TotalHours)
	assert.Nil(t, backend.lastUpdated)

	// Edits made while the save is still pending must not leak into it.
	require.True(t, editor.DeleteEntry(editor.Sheet().Entries[0].ID))

	msgs := drainCmd(cmd)
	require.NotNil(t, backend.lastUpdated)
	assert.Len(t, backend.lastUpdated.Entries, 2)
	assert.Equal(t, 14.0, backend.lastUpdated.TotalHours)

	var sawConfirm, sawSaved bool
	for _, msg := range msgs {
		switch msg := msg.(type) {
		case statusLineMsg:
			sawConfirm = true
			assert.Contains(t, msg.text, "Added")
		case weekSavedMsg:
			sawSaved = true
			assert.NoError(t, msg.err)
		}
	}
	assert.True(t, sawConfirm)
	assert.True(t, sawSaved)
}

func TestEntryForm_ValidationFailureSkipsSave(t *testing.T) {
	backend := newFakeBackend(
		testutil.NewTestTimesheet(testutil.WithTimesheetID(4), testutil.WithOwner(7)),
	)
	app := testApp(loggedInAuth(), backend)
	state := &SharedState{App: app}
	editor := service.NewEditor(app.Timesheets)
	require.NoError(t, editor.Resolve(context.Background(), service.ResolveRequest{TimesheetID: 4}))

	f := &entryFormFields{date: "2024-06-03", hours: "6"}
	msgs := drainCmd(applyEntryForm(state, editor, "", f))

	assert.Zero(t, backend.updateCalls)
	assert.Empty(t, editor.Sheet().Entries)
	require.Len(t, msgs, 1)
	_, ok := msgs[0].(statusLineMsg)
	assert.True(t, ok)
}

func TestTUI_QuitKeys(t *testing.T) {
	d := newDriver(t, testApp(loggedInAuth(), threeWeeksBackend()))
	d.Press('q')
	assert.True(t, d.Quitting)
}
