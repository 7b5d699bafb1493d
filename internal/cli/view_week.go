package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tentwenty/ticktock/internal/api"
	"github.com/tentwenty/ticktock/internal/cli/formatter"
	"github.com/tentwenty/ticktock/internal/domain"
	"github.com/tentwenty/ticktock/internal/service"
)

// weekLoadedMsg signals that the editor finished resolving its timesheet.
// seq drops responses from superseded loads.
type weekLoadedMsg struct {
	seq int
	err error
}

// weekSavedMsg carries the outcome of a background save issued from a
// BeginSave snapshot.
type weekSavedMsg struct {
	updated *domain.Timesheet
	err     error
}

// weekCreatedMsg carries the outcome of posting a draft to the server.
type weekCreatedMsg struct {
	created *domain.Timesheet
	err     error
}

// weekRow is a flattened line in the entry list: a date header or an entry.
type weekRow struct {
	isHeader bool
	date     string
	entryID  string
}

// weekView is the weekly entry editor. All entry mutations are optimistic:
// they hit the in-memory editor first and a save runs in the background.
type weekView struct {
	state   *SharedState
	editor  *service.Editor
	req     service.ResolveRequest
	rows    []weekRow
	cursor  int
	loading bool
	loadSeq int
	vp      viewport.Model
	saving  bool
}

func newWeekView(state *SharedState, req service.ResolveRequest) *weekView {
	vp := viewport.New(0, 0)
	return &weekView{
		state:   state,
		editor:  service.NewEditor(state.App.Timesheets),
		req:     req,
		loading: true,
		vp:      vp,
	}
}

func (v *weekView) ID() ViewID { return ViewWeek }

func (v *weekView) Title() string {
	if sheet := v.editor.Sheet(); sheet != nil {
		return domain.FormatDateRange(sheet.WeekStarting, sheet.WeekEnding)
	}
	return "Week"
}

func (v *weekView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add entry")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", "hours")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create on server")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (v *weekView) Init() tea.Cmd {
	return v.load()
}

func (v *weekView) load() tea.Cmd {
	v.loading = true
	v.loadSeq++
	seq := v.loadSeq
	editor, req := v.editor, v.req
	return func() tea.Msg {
		err := editor.Resolve(context.Background(), req)
		return weekLoadedMsg{seq: seq, err: err}
	}
}

// save persists the current state in the background. The snapshot is
// taken here, on the update loop; the request must never share entry
// memory with edits made while it is on the wire. Failures surface in
// the status bar; local state stays untouched either way.
func (v *weekView) save() tea.Cmd {
	if v.editor.Sheet().IsDraft() {
		return nil
	}
	v.saving = true
	snapshot := v.editor.BeginSave()
	timesheets := v.state.App.Timesheets
	return func() tea.Msg {
		updated, err := timesheets.Update(context.Background(), snapshot)
		return weekSavedMsg{updated: updated, err: err}
	}
}

func (v *weekView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case weekLoadedMsg:
		if msg.seq != v.loadSeq {
			return v, nil
		}
		v.loading = false
		v.rebuildRows()
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return v, func() tea.Msg { return sessionExpiredMsg{} }
			}
			return v, statusLine(formatter.StyleRed.Render(msg.err.Error()))
		}
		return v, nil

	case weekSavedMsg:
		v.saving = false
		if err := v.editor.FinishSave(msg.updated, msg.err); err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return v, func() tea.Msg { return sessionExpiredMsg{} }
			}
			return v, statusLine(formatter.StyleRed.Render("Save failed: " + err.Error()))
		}
		return v, nil

	case weekCreatedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return v, func() tea.Msg { return sessionExpiredMsg{} }
			}
			return v, statusLine(formatter.StyleRed.Render("Create failed: " + msg.err.Error()))
		}
		v.editor.AdoptCreated(msg.created)
		return v, statusLine(formatter.StyleGreen.Render(
			fmt.Sprintf("✔ Created timesheet %d", msg.created.ID)))

	case refreshViewMsg:
		// Entry forms mutate the shared editor directly; just re-render.
		// Reloading here would throw away unsaved draft edits.
		v.rebuildRows()
		return v, nil

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight() - 3
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *weekView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.loading {
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		v.moveCursor(-1)
	case "down", "j":
		v.moveCursor(1)
	case "a":
		return v, pushView(newEntryFormView(v.state, v.editor, v.selectedDate(), ""))
	case "enter", "e":
		if id := v.selectedEntryID(); id != "" {
			return v, pushView(newEntryFormView(v.state, v.editor, "", id))
		}
	case "x":
		if id := v.selectedEntryID(); id != "" {
			if v.editor.DeleteEntry(id) {
				v.rebuildRows()
				return v, v.save()
			}
		}
	case "+", "=":
		return v, v.adjustHours(1)
	case "-":
		return v, v.adjustHours(-1)
	case "c":
		if v.editor.Sheet().IsDraft() {
			return v, v.create()
		}
	case "s":
		return v, v.save()
	case "r":
		return v, v.load()
	}
	return v, nil
}

// adjustHours bumps the selected entry's hours, clamped to the 0-24 range.
func (v *weekView) adjustHours(delta float64) tea.Cmd {
	id := v.selectedEntryID()
	if id == "" {
		return nil
	}
	entry := v.editor.Sheet().FindEntry(id)
	if entry == nil {
		return nil
	}
	_, err := v.editor.UpdateEntry(id, service.EntryFields{
		Description: entry.Description,
		Project:     entry.Project,
		TypeOfWork:  entry.TypeOfWork,
		Hours:       domain.ClampHours(entry.Hours + delta),
	})
	if err != nil {
		return statusLine(formatter.StyleRed.Render(err.Error()))
	}
	return v.save()
}

// create posts the draft from a snapshot; the server identity is adopted
// back on the update loop when weekCreatedMsg arrives.
func (v *weekView) create() tea.Cmd {
	snapshot := v.editor.Sheet().Clone()
	timesheets := v.state.App.Timesheets
	return func() tea.Msg {
		created, err := timesheets.Create(context.Background(), snapshot)
		return weekCreatedMsg{created: created, err: err}
	}
}

// rebuildRows flattens the editor's date groups into cursorable lines.
func (v *weekView) rebuildRows() {
	v.rows = v.rows[:0]
	for _, g := range v.editor.Groups() {
		v.rows = append(v.rows, weekRow{isHeader: true, date: g.Date})
		for _, e := range g.Entries {
			v.rows = append(v.rows, weekRow{date: g.Date, entryID: e.ID})
		}
	}
	if v.cursor >= len(v.rows) {
		v.cursor = len(v.rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	// Land on an entry, never a date header.
	for v.cursor < len(v.rows) && v.rows[v.cursor].isHeader {
		v.cursor++
	}
	if v.cursor >= len(v.rows) {
		for v.cursor > 0 && (v.cursor >= len(v.rows) || v.rows[v.cursor].isHeader) {
			v.cursor--
		}
	}
}

// moveCursor skips date headers so the cursor always lands on an entry.
func (v *weekView) moveCursor(dir int) {
	i := v.cursor + dir
	for i >= 0 && i < len(v.rows) && v.rows[i].isHeader {
		i += dir
	}
	if i >= 0 && i < len(v.rows) {
		v.cursor = i
	}
}

func (v *weekView) selectedEntryID() string {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return ""
	}
	return v.rows[v.cursor].entryID
}

// selectedDate is the date new entries default to: the cursor's date, or
// the week start on an empty week.
func (v *weekView) selectedDate() string {
	if v.cursor >= 0 && v.cursor < len(v.rows) {
		return v.rows[v.cursor].date
	}
	if sheet := v.editor.Sheet(); sheet != nil {
		return sheet.WeekStarting
	}
	return ""
}

func (v *weekView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading week...")
	}

	sheet := v.editor.Sheet()

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(formatter.StatusPill(domain.Classify(sheet.TotalHours)))
	b.WriteString("  ")
	b.WriteString(formatter.WeekProgress(sheet.TotalHours, 20))
	if sheet.IsDraft() {
		b.WriteString("  " + formatter.StyleYellow.Render("DRAFT"))
	}
	if v.saving {
		b.WriteString("  " + formatter.Dim("saving..."))
	}
	b.WriteString("\n\n")

	if len(v.rows) == 0 {
		b.WriteString("  " + formatter.Dim("No entries yet. Press a to add one.") + "\n")
		return b.String()
	}

	for i, row := range v.rows {
		if row.isHeader {
			b.WriteString("  " + formatter.Bold(domain.FormatEntryDate(row.date)) + "\n")
			continue
		}
		entry := sheet.FindEntry(row.entryID)
		if entry == nil {
			continue
		}
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		line := fmt.Sprintf("%s  %s  %s  %s",
			cursor,
			formatter.StyleFg.Render(formatter.FormatHours(entry.Hours)),
			entry.Description,
			formatter.Dim(entry.Project))
		if entry.TypeOfWork != "" {
			line += " " + formatter.Dim("· "+entry.TypeOfWork)
		}
		b.WriteString(line + "\n")
	}

	content := b.String()
	if v.vp.Height > 0 && strings.Count(content, "\n") > v.vp.Height {
		v.vp.SetContent(content)
		return v.vp.View()
	}
	return content
}
