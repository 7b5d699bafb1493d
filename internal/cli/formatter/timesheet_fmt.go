package formatter

import (
	"fmt"
	"strconv"

	"github.com/tentwenty/ticktock/internal/domain"
)

// FormatTimesheetTable renders the timesheet list as a table. startIndex is
// the zero-based index of the first row within the filtered collection, so
// row numbers stay absolute across pages.
func FormatTimesheetTable(sheets []*domain.Timesheet, startIndex int) string {
	headers := []string{"#", "WEEK", "DATE RANGE", "HOURS", "STATUS", "ACTION"}
	rows := make([][]string, 0, len(sheets))
	for i, ts := range sheets {
		status := domain.Classify(ts.TotalHours)
		rows = append(rows, []string{
			Dim(strconv.Itoa(startIndex + i + 1)),
			strconv.FormatInt(ts.ID, 10),
			domain.FormatDateRange(ts.WeekStarting, ts.WeekEnding),
			HoursStyled(ts.TotalHours, domain.TargetWeekHours),
			StatusPill(status),
			StyleBlue.Render(status.ActionLabel()),
		})
	}
	return RenderTable(headers, rows)
}

// FormatListFooter renders the pagination summary below the table.
func FormatListFooter(page, totalPages, shown, total int) string {
	if totalPages < 1 {
		totalPages = 1
	}
	return Dim(fmt.Sprintf("Page %d of %d · showing %d of %d timesheets", page, totalPages, shown, total))
}

// FormatWeek renders a full week: header line, hours progress, then entries
// grouped by date.
func FormatWeek(ts *domain.Timesheet) string {
	out := Header("Week of "+domain.FormatDateRange(ts.WeekStarting, ts.WeekEnding)) + "\n"
	out += StatusPill(domain.Classify(ts.TotalHours)) + "  " + WeekProgress(ts.TotalHours, 20) + "\n"

	groups := domain.GroupEntries(ts.Entries)
	if len(groups) == 0 {
		return out + "\n  " + Dim("No entries this week.") + "\n"
	}

	for _, g := range groups {
		out += "\n" + Bold(domain.FormatEntryDate(g.Date)) + "\n"
		for _, e := range g.Entries {
			line := fmt.Sprintf("  %s  %s", StyleFg.Render(FormatHours(e.Hours)), e.Description)
			line += "  " + Dim(e.Project)
			if e.TypeOfWork != "" {
				line += " " + Dim("· "+e.TypeOfWork)
			}
			out += line + "\n"
		}
	}
	return out
}
