package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tentwenty/ticktock/internal/domain"
)

// EditorState tracks where the editor is in its lifecycle.
type EditorState int

const (
	EditorLoading EditorState = iota
	EditorReady
	EditorSaving
	EditorError
)

// EntryFields are the mutable fields of a time entry as collected from a
// form. ID and date are never changed through these.
type EntryFields struct {
	Description string
	Project     string
	TypeOfWork  string
	Hours       float64
}

// ResolveRequest selects which timesheet the editor should load, checked
// in order: explicit timesheet id, then user id, then a caller-provided
// seed (e.g. the row the user opened from the list).
type ResolveRequest struct {
	TimesheetID int64
	UserID      int64
	Seed        *domain.Timesheet
}

// Editor owns the in-memory edit state of a single timesheet week.
//
// Mutations are optimistic: they apply to local state synchronously and
// totals are recomputed before any network call. Persist failures keep the
// local state as the source of truth; nothing is rolled back.
type Editor struct {
	timesheets TimesheetService
	now        func() time.Time

	state   EditorState
	sheet   *domain.Timesheet
	lastErr error
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithClock overrides the editor's notion of now, for tests.
func WithClock(now func() time.Time) EditorOption {
	return func(e *Editor) { e.now = now }
}

func NewEditor(timesheets TimesheetService, opts ...EditorOption) *Editor {
	e := &Editor{
		timesheets: timesheets,
		now:        time.Now,
		state:      EditorLoading,
	}
	for _, opt := range opts {
		opt(e)
	}
	// The editor always holds a sheet; Resolve replaces this placeholder
	// draft, so mutations before (or without) Resolve cannot panic.
	e.sheet = domain.NewDraft(0, e.now())
	return e
}

func (e *Editor) State() EditorState { return e.state }

// Err returns the most recent load/save error, cleared by the next
// successful operation. An errored editor stays usable.
func (e *Editor) Err() error { return e.lastErr }

// Sheet returns the timesheet under edit. It is never nil: a fresh editor
// holds an anonymous draft until Resolve installs the real sheet.
func (e *Editor) Sheet() *domain.Timesheet { return e.sheet }

// Groups returns the current entries bucketed by date for display.
func (e *Editor) Groups() []domain.DateGroup {
	if e.sheet == nil {
		return nil
	}
	return domain.GroupEntries(e.sheet.Entries)
}

// Resolve loads the active timesheet per the request priority. On fetch
// failure the editor transitions to EditorError but still installs a safe
// empty draft, so callers always have something to render and edit.
func (e *Editor) Resolve(ctx context.Context, req ResolveRequest) error {
	e.state = EditorLoading

	sheet, err := e.resolveSheet(ctx, req)
	if err != nil {
		e.sheet = domain.NewDraft(req.UserID, e.now())
		e.state = EditorError
		e.lastErr = err
		return err
	}

	if sheet.Entries == nil {
		sheet.Entries = []domain.TimeEntry{}
	}
	sheet.Recalculate()
	e.sheet = sheet
	e.state = EditorReady
	e.lastErr = nil
	return nil
}

func (e *Editor) resolveSheet(ctx context.Context, req ResolveRequest) (*domain.Timesheet, error) {
	switch {
	case req.TimesheetID != 0:
		return e.timesheets.Get(ctx, req.TimesheetID)

	case req.UserID != 0:
		sheets, err := e.timesheets.List(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		if len(sheets) > 0 {
			return sheets[0], nil
		}
		return domain.NewDraft(req.UserID, e.now()), nil

	case req.Seed != nil:
		seed := *req.Seed
		seed.Entries = append([]domain.TimeEntry(nil), req.Seed.Entries...)
		return &seed, nil

	default:
		return domain.NewDraft(0, e.now()), nil
	}
}

// AddEntry appends a new entry for the given date and recomputes totals.
// Project and description are required; a validation failure performs no
// state change. The entry id is generated here and never reused.
func (e *Editor) AddEntry(date string, f EntryFields) (*domain.TimeEntry, error) {
	if err := domain.ValidateEntryFields(f.Project, f.Description); err != nil {
		return nil, err
	}

	entry := domain.TimeEntry{
		ID:          uuid.New().String(),
		Date:        date,
		Description: f.Description,
		Project:     f.Project,
		TypeOfWork:  f.TypeOfWork,
		Hours:       f.Hours,
	}
	e.sheet.Entries = append(e.sheet.Entries, entry)
	e.sheet.Recalculate()
	return &e.sheet.Entries[len(e.sheet.Entries)-1], nil
}

// UpdateEntry replaces the mutable fields of the matching entry, leaving
// id and date unchanged. Returns false (no-op) when the id is unknown.
func (e *Editor) UpdateEntry(id string, f EntryFields) (bool, error) {
	entry := e.sheet.FindEntry(id)
	if entry == nil {
		return false, nil
	}
	if err := domain.ValidateEntryFields(f.Project, f.Description); err != nil {
		return false, err
	}

	entry.Description = f.Description
	entry.Project = f.Project
	entry.TypeOfWork = f.TypeOfWork
	entry.Hours = f.Hours
	e.sheet.Recalculate()
	return true, nil
}

// DeleteEntry removes the matching entry and recomputes totals.
// Returns false when the id is unknown.
func (e *Editor) DeleteEntry(id string) bool {
	for i := range e.sheet.Entries {
		if e.sheet.Entries[i].ID == id {
			e.sheet.Entries = append(e.sheet.Entries[:i], e.sheet.Entries[i+1:]...)
			e.sheet.Recalculate()
			return true
		}
	}
	return false
}

// BeginSave marks the editor saving and returns a deep copy of the sheet
// for the network call. The snapshot must be taken on the goroutine that
// owns the editor; the request itself may then run in the background
// without sharing entry memory with edits made while it is in flight.
func (e *Editor) BeginSave() *domain.Timesheet {
	e.state = EditorSaving
	return e.sheet.Clone()
}

// FinishSave records the outcome of a save started with BeginSave. A
// failed save keeps local state untouched. Must run on the goroutine that
// owns the editor.
func (e *Editor) FinishSave(updated *domain.Timesheet, err error) error {
	if err != nil {
		e.state = EditorError
		e.lastErr = err
		return err
	}

	// Adopt server-issued fields but keep the local entry set authoritative.
	if updated != nil {
		e.sheet.Status = updated.Status
	}
	e.state = EditorReady
	e.lastErr = nil
	return nil
}

// Persist pushes the full current state to the backend when the timesheet
// has a server id. Drafts are left client-only; they only reach the server
// through an explicit Create.
func (e *Editor) Persist(ctx context.Context) error {
	if e.sheet.IsDraft() {
		return nil
	}
	updated, err := e.timesheets.Update(ctx, e.BeginSave())
	return e.FinishSave(updated, err)
}

// Create posts a draft to the backend and adopts the assigned id. It is
// only reachable from an explicit "create timesheet" action; entry
// mutations never escalate a draft on their own.
func (e *Editor) Create(ctx context.Context) error {
	if !e.sheet.IsDraft() {
		return nil
	}

	e.state = EditorSaving
	created, err := e.timesheets.Create(ctx, e.sheet.Clone())
	if err != nil {
		e.state = EditorError
		e.lastErr = err
		return err
	}
	e.AdoptCreated(created)
	return nil
}

// AdoptCreated installs the identity the server assigned to a draft posted
// from a snapshot. Must run on the goroutine that owns the editor.
func (e *Editor) AdoptCreated(created *domain.Timesheet) {
	e.sheet.ID = created.ID
	if created.UserID != 0 {
		e.sheet.UserID = created.UserID
	}
	e.sheet.Status = created.Status
	e.state = EditorReady
	e.lastErr = nil
}
