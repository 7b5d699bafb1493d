package cli

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/tentwenty/ticktock/internal/cli/formatter"
	"github.com/tentwenty/ticktock/internal/domain"
	"github.com/tentwenty/ticktock/internal/service"
)

// entryFormFields holds form-bound values for the add/edit entry wizard.
type entryFormFields struct {
	date        string
	project     string
	typeOfWork  string
	description string
	hours       string
}

// newEntryFormView builds the add or edit entry wizard. entryID empty means
// add; date seeds the date select for new entries.
func newEntryFormView(state *SharedState, editor *service.Editor, date, entryID string) View {
	f := &entryFormFields{
		date:       date,
		typeOfWork: domain.WorkTypes[0],
		hours:      strconv.Itoa(domain.DefaultEntryHours),
	}

	title := "Add Entry"
	if entryID != "" {
		title = "Edit Entry"
		if current := editor.Sheet().FindEntry(entryID); current != nil {
			f.date = current.Date
			f.project = current.Project
			f.typeOfWork = current.TypeOfWork
			f.description = current.Description
			f.hours = formatHoursValue(current.Hours)
		}
	}
	if f.date == "" && editor.Sheet() != nil {
		f.date = editor.Sheet().WeekStarting
	}

	groups := []*huh.Group{}

	// Only new entries pick a date; edits keep theirs.
	if entryID == "" {
		dates := domain.WeekDates(editor.Sheet().WeekStarting)
		options := make([]huh.Option[string], 0, len(dates))
		for _, d := range dates {
			options = append(options, huh.NewOption(domain.FormatEntryDate(d), d))
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Date").
				Options(options...).
				Value(&f.date),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Project").
			Placeholder("Project name").
			Value(&f.project).
			Validate(validateRequired("project")),
		huh.NewSelect[string]().
			Title("Type of Work").
			Options(workTypeOptions(f.typeOfWork)...).
			Value(&f.typeOfWork),
		huh.NewInput().
			Title("Description").
			Placeholder("What did you work on?").
			Value(&f.description).
			Validate(validateRequired("description")),
		huh.NewInput().
			Title("Hours").
			Placeholder(strconv.Itoa(domain.DefaultEntryHours)).
			Value(&f.hours).
			Validate(validateHours),
	))

	form := huh.NewForm(groups...).WithTheme(ticktockHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return applyEntryForm(state, editor, entryID, f)
	}

	return newWizardView(state, title, form, done)
}

// applyEntryForm mutates the editor with the collected fields and returns
// the background save command. It runs on the update loop (inside the
// wizard's done callback), so only the network call leaves this goroutine
// and it gets a BeginSave snapshot, never the live sheet. The mutation
// lands even when the save later fails.
func applyEntryForm(state *SharedState, editor *service.Editor, entryID string, f *entryFormFields) tea.Cmd {
	fields := service.EntryFields{
		Description: f.description,
		Project:     f.project,
		TypeOfWork:  f.typeOfWork,
		Hours:       parseHours(f.hours, domain.DefaultEntryHours),
	}

	var verb string
	if entryID == "" {
		if _, err := editor.AddEntry(f.date, fields); err != nil {
			return statusLine(formatter.StyleRed.Render(err.Error()))
		}
		verb = "Added"
	} else {
		ok, err := editor.UpdateEntry(entryID, fields)
		if err != nil {
			return statusLine(formatter.StyleRed.Render(err.Error()))
		}
		if !ok {
			return statusLine(formatter.StyleRed.Render("Entry no longer exists."))
		}
		verb = "Updated"
	}

	confirm := statusLine(formatter.StyleGreen.Render(
		fmt.Sprintf("✔ %s %s, week total %s", verb, f.description,
			formatter.FormatHours(editor.Sheet().TotalHours))))

	if editor.Sheet().IsDraft() {
		return confirm
	}

	snapshot := editor.BeginSave()
	timesheets := state.App.Timesheets
	save := func() tea.Msg {
		updated, err := timesheets.Update(context.Background(), snapshot)
		return weekSavedMsg{updated: updated, err: err}
	}
	return tea.Batch(confirm, save)
}

func formatHoursValue(h float64) string {
	if h == float64(int64(h)) {
		return strconv.FormatInt(int64(h), 10)
	}
	return strconv.FormatFloat(h, 'f', -1, 64)
}
