package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tentwenty/ticktock/internal/api"
	"github.com/tentwenty/ticktock/internal/cli/formatter"
	"github.com/tentwenty/ticktock/internal/domain"
	"github.com/tentwenty/ticktock/internal/service"
)

// listLoadedMsg signals that timesheet data has been loaded. seq guards
// against a stale response overwriting a newer load.
type listLoadedMsg struct {
	seq    int
	sheets []*domain.Timesheet
	err    error
}

// timesheetListView shows the paginated, filterable timesheet table.
type timesheetListView struct {
	state   *SharedState
	list    *service.TimesheetList
	cursor  int
	loading bool
	loadSeq int
	err     error
	spin    spinner.Model
}

func newTimesheetListView(state *SharedState) *timesheetListView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return &timesheetListView{
		state:   state,
		list:    service.NewTimesheetList(),
		loading: true,
		spin:    sp,
	}
}

func (v *timesheetListView) ID() ViewID    { return ViewTimesheetList }
func (v *timesheetListView) Title() string { return "Timesheets" }

func (v *timesheetListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open week")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "week filter")),
		key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "page")),
		key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "page size")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new week")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *timesheetListView) Init() tea.Cmd {
	return tea.Batch(v.load(), v.spin.Tick)
}

// load fetches the user's timesheets. Each call bumps loadSeq so responses
// from superseded loads are dropped.
func (v *timesheetListView) load() tea.Cmd {
	v.loading = true
	v.loadSeq++
	seq := v.loadSeq
	app := v.state.App
	userID := v.state.UserID()
	return func() tea.Msg {
		sheets, err := app.Timesheets.List(context.Background(), userID)
		return listLoadedMsg{seq: seq, sheets: sheets, err: err}
	}
}

func (v *timesheetListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.seq != v.loadSeq {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return v, func() tea.Msg { return sessionExpiredMsg{} }
			}
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.list.SetItems(msg.sheets)
		v.clampCursor()
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *timesheetListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Digit keys jump straight to a page.
	if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		if page, err := strconv.Atoi(k); err == nil && page <= v.list.TotalPages() {
			v.list.SetPage(page)
			v.cursor = 0
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		rows, _ := v.list.PageItems()
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case "left", "h", "p":
		v.list.PrevPage()
		v.cursor = 0
	case "right", "l", "n":
		v.list.NextPage()
		v.cursor = 0
	case "G":
		// Jump to the last page, the ellipsis target when the strip overflows.
		v.list.SetPage(v.list.TotalPages())
		v.cursor = 0
	case "[":
		v.cyclePerPage(-1)
	case "]":
		v.cyclePerPage(1)
	case "f":
		v.cycleStatusFilter()
		v.cursor = 0
	case "d":
		v.cycleDateRangeFilter()
		v.cursor = 0
	case "enter":
		if ts := v.selected(); ts != nil {
			return v, pushView(newWeekView(v.state, service.ResolveRequest{
				TimesheetID: ts.ID,
				Seed:        ts,
			}))
		}
	case "c":
		return v, pushView(newWeekView(v.state, service.ResolveRequest{
			Seed: domain.NewDraft(v.state.UserID(), timeNow()),
		}))
	case "x":
		if ts := v.selected(); ts != nil {
			return v, v.confirmDelete(ts)
		}
	case "r":
		return v, tea.Batch(v.load(), v.spin.Tick)
	}
	return v, nil
}

// selected returns the timesheet under the cursor on the current page.
func (v *timesheetListView) selected() *domain.Timesheet {
	rows, _ := v.list.PageItems()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return nil
	}
	return rows[v.cursor]
}

func (v *timesheetListView) clampCursor() {
	rows, _ := v.list.PageItems()
	if v.cursor >= len(rows) {
		v.cursor = len(rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *timesheetListView) cyclePerPage(dir int) {
	sizes := service.PageSizes
	for i, size := range sizes {
		if size == v.list.PerPage() {
			next := (i + dir + len(sizes)) % len(sizes)
			v.list.SetPerPage(sizes[next])
			break
		}
	}
	v.clampCursor()
}

// cycleStatusFilter steps through all → completed → incomplete → missing.
func (v *timesheetListView) cycleStatusFilter() {
	order := []string{service.FilterAll}
	for _, s := range domain.DerivedStatuses {
		order = append(order, string(s))
	}
	for i, s := range order {
		if s == v.list.StatusFilter() {
			v.list.SetStatusFilter(order[(i+1)%len(order)])
			return
		}
	}
	v.list.SetStatusFilter(service.FilterAll)
}

// cycleDateRangeFilter steps through all known week ranges, then back to all.
func (v *timesheetListView) cycleDateRangeFilter() {
	options := append([]string{service.FilterAll}, v.list.DateRangeOptions()...)
	for i, r := range options {
		if r == v.list.DateRangeFilter() {
			v.list.SetDateRangeFilter(options[(i+1)%len(options)])
			return
		}
	}
	v.list.SetDateRangeFilter(service.FilterAll)
}

func (v *timesheetListView) confirmDelete(ts *domain.Timesheet) tea.Cmd {
	app := v.state.App
	confirmed := true
	prompt := fmt.Sprintf("Delete the week of %s?", domain.FormatDateRange(ts.WeekStarting, ts.WeekEnding))
	form := wizardConfirm(prompt, &confirmed)

	done := func() tea.Cmd {
		return func() tea.Msg {
			if !confirmed {
				return statusLineMsg{text: formatter.Dim("Kept.")}
			}
			if err := app.Timesheets.Delete(context.Background(), ts.ID); err != nil {
				if errors.Is(err, api.ErrUnauthorized) {
					return sessionExpiredMsg{}
				}
				return statusLineMsg{text: formatter.StyleRed.Render(err.Error())}
			}
			return statusLineMsg{text: formatter.StyleGreen.Render("✔ Deleted.")}
		}
	}

	return pushView(newWizardView(v.state, "Delete Timesheet", form, done))
}

func (v *timesheetListView) View() string {
	if v.loading {
		return "\n  " + v.spin.View() + formatter.Dim("Loading timesheets...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) +
			"\n  " + formatter.Dim("r: retry")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(v.renderFilters())
	b.WriteString("\n\n")

	rows, startIndex := v.list.PageItems()
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim("No timesheets match the active filters.") + "\n")
		return b.String()
	}

	table := formatter.FormatTimesheetTable(rows, startIndex)
	for i, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
		// First two lines are header and separator; data rows start at 2.
		cursor := "  "
		if i >= 2 && i-2 == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n" + v.renderPageStrip() + "\n")
	return b.String()
}

func (v *timesheetListView) renderFilters() string {
	status := v.list.StatusFilter()
	if status == service.FilterAll {
		status = "all"
	}
	dateRange := v.list.DateRangeFilter()
	if dateRange == service.FilterAll {
		dateRange = "all weeks"
	}
	return fmt.Sprintf("  %s %s   %s %s   %s %s",
		formatter.Dim("status:"), formatter.StyleBlue.Render(status),
		formatter.Dim("week:"), formatter.StyleBlue.Render(dateRange),
		formatter.Dim("per page:"), formatter.StyleBlue.Render(strconv.Itoa(v.list.PerPage())))
}

// renderPageStrip renders "‹ 1 2 [3] … 12 ›" style pagination controls.
func (v *timesheetListView) renderPageStrip() string {
	total := v.list.TotalPages()
	if total <= 1 {
		return "  " + formatter.Dim("1 page")
	}

	var parts []string
	if v.list.HasPrev() {
		parts = append(parts, formatter.StyleFg.Render("‹"))
	} else {
		parts = append(parts, formatter.Dim("‹"))
	}

	for _, page := range v.list.VisiblePages() {
		label := strconv.Itoa(page)
		if page == v.list.Page() {
			parts = append(parts, formatter.StyleHeader.Render("["+label+"]"))
		} else {
			parts = append(parts, formatter.Dim(label))
		}
	}

	if v.list.Overflow() {
		parts = append(parts, formatter.Dim("…"))
		label := strconv.Itoa(total)
		if v.list.Page() == total {
			parts = append(parts, formatter.StyleHeader.Render("["+label+"]"))
		} else {
			parts = append(parts, formatter.Dim(label))
		}
	}

	if v.list.HasNext() {
		parts = append(parts, formatter.StyleFg.Render("›"))
	} else {
		parts = append(parts, formatter.Dim("›"))
	}

	return "  " + strings.Join(parts, " ")
}
