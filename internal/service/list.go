package service

import (
	"sort"

	"github.com/tentwenty/ticktock/internal/domain"
)

// Page size choices offered by the list footer.
var PageSizes = []int{5, 10, 25}

const (
	DefaultPageSize = 5

	// maxPageButtons caps the page-number strip; beyond it the list shows
	// an ellipsis plus a jump-to-last control.
	maxPageButtons = 8
)

// FilterAll is the sentinel meaning "no filter" for both list filters.
const FilterAll = "all"

// TimesheetList holds the fetched collection plus the view state of the
// list: two independent filters combined with AND, and pagination.
type TimesheetList struct {
	items []*domain.Timesheet

	status    string // FilterAll or a derived status value
	dateRange string // FilterAll or a formatted "D - D Month, YYYY" range

	page    int
	perPage int
}

func NewTimesheetList() *TimesheetList {
	return &TimesheetList{
		status:    FilterAll,
		dateRange: FilterAll,
		page:      1,
		perPage:   DefaultPageSize,
	}
}

// SetItems replaces the backing collection.
func (l *TimesheetList) SetItems(items []*domain.Timesheet) {
	l.items = items
}

func (l *TimesheetList) StatusFilter() string    { return l.status }
func (l *TimesheetList) DateRangeFilter() string { return l.dateRange }
func (l *TimesheetList) Page() int               { return l.page }
func (l *TimesheetList) PerPage() int            { return l.perPage }

// SetStatusFilter applies a derived-status filter and resets to page 1.
func (l *TimesheetList) SetStatusFilter(status string) {
	if status == "" {
		status = FilterAll
	}
	l.status = status
	l.page = 1
}

// SetDateRangeFilter applies a formatted date-range filter (matched by
// string equality, not by parsing) and resets to page 1.
func (l *TimesheetList) SetDateRangeFilter(dateRange string) {
	if dateRange == "" {
		dateRange = FilterAll
	}
	l.dateRange = dateRange
	l.page = 1
}

// SetPerPage changes the page size. Unknown sizes are ignored so the view
// can pass raw input through. The current page is deliberately untouched.
func (l *TimesheetList) SetPerPage(n int) {
	for _, size := range PageSizes {
		if n == size {
			l.perPage = n
			return
		}
	}
}

// SetPage jumps to a page. Out-of-range values are not guarded here; the
// controls only offer in-range targets.
func (l *TimesheetList) SetPage(n int) {
	l.page = n
}

// NextPage advances one page unless already on the last.
func (l *TimesheetList) NextPage() {
	if l.page < l.TotalPages() {
		l.page++
	}
}

// PrevPage steps back one page unless already on the first.
func (l *TimesheetList) PrevPage() {
	if l.page > 1 {
		l.page--
	}
}

// Filtered returns the timesheets matching both active filters, in the
// collection's original order.
func (l *TimesheetList) Filtered() []*domain.Timesheet {
	var out []*domain.Timesheet
	for _, ts := range l.items {
		if l.status != FilterAll && string(domain.Classify(ts.TotalHours)) != l.status {
			continue
		}
		if l.dateRange != FilterAll &&
			domain.FormatDateRange(ts.WeekStarting, ts.WeekEnding) != l.dateRange {
			continue
		}
		out = append(out, ts)
	}
	return out
}

// TotalPages is the page count for the filtered rows at the current size.
func (l *TimesheetList) TotalPages() int {
	n := len(l.Filtered())
	return (n + l.perPage - 1) / l.perPage
}

// PageItems returns the filtered rows visible on the current page, plus
// the zero-based index of the first row for absolute row numbering.
func (l *TimesheetList) PageItems() (rows []*domain.Timesheet, startIndex int) {
	filtered := l.Filtered()
	start := (l.page - 1) * l.perPage
	if start >= len(filtered) || start < 0 {
		return nil, start
	}
	end := start + l.perPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], start
}

// VisiblePages returns the page numbers shown in the strip: the first
// min(8, TotalPages) pages. When Overflow is true the view appends an
// ellipsis and a jump-to-last button.
func (l *TimesheetList) VisiblePages() []int {
	total := l.TotalPages()
	n := total
	if n > maxPageButtons {
		n = maxPageButtons
	}
	pages := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, i)
	}
	return pages
}

// Overflow reports whether there are more pages than the strip shows.
func (l *TimesheetList) Overflow() bool {
	return l.TotalPages() > maxPageButtons
}

// HasPrev reports whether the Previous control is enabled.
func (l *TimesheetList) HasPrev() bool { return l.page > 1 }

// HasNext reports whether the Next control is enabled.
func (l *TimesheetList) HasNext() bool { return l.page < l.TotalPages() }

// DateRangeOptions returns the distinct formatted week ranges present in
// the collection, sorted, for the date-range filter menu.
func (l *TimesheetList) DateRangeOptions() []string {
	seen := make(map[string]bool)
	var options []string
	for _, ts := range l.items {
		r := domain.FormatDateRange(ts.WeekStarting, ts.WeekEnding)
		if !seen[r] {
			seen[r] = true
			options = append(options, r)
		}
	}
	sort.Strings(options)
	return options
}
