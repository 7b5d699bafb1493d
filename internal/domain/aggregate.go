package domain

import "sort"

// DateGroup is a display projection: all entries sharing one calendar date,
// in their original relative order. It is never stored.
type DateGroup struct {
	Date    string
	Entries []TimeEntry
}

// GroupEntries buckets entries by date and returns the groups sorted by
// ascending date string. Entry order inside a group follows the input.
func GroupEntries(entries []TimeEntry) []DateGroup {
	if len(entries) == 0 {
		return nil
	}
	byDate := make(map[string][]TimeEntry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	groups := make([]DateGroup, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, DateGroup{Date: d, Entries: byDate[d]})
	}
	return groups
}

// SumHours adds up the hours of all entries. Empty input sums to zero.
func SumHours(entries []TimeEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total
}
