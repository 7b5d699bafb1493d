package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupEntries_Empty(t *testing.T) {
	assert.Empty(t, GroupEntries(nil))
	assert.Zero(t, SumHours(nil))
}

func TestGroupEntries_SortsByDateAscending(t *testing.T) {
	entries := []TimeEntry{
		{ID: "1", Date: "2024-06-05", Hours: 2},
		{ID: "2", Date: "2024-06-03", Hours: 8},
		{ID: "3", Date: "2024-06-04", Hours: 4},
	}
	groups := GroupEntries(entries)
	require.Len(t, groups, 3)
	assert.Equal(t, "2024-06-03", groups[0].Date)
	assert.Equal(t, "2024-06-04", groups[1].Date)
	assert.Equal(t, "2024-06-05", groups[2].Date)
}

func TestGroupEntries_PreservesRelativeOrderWithinDate(t *testing.T) {
	entries := []TimeEntry{
		{ID: "first", Date: "2024-06-03", Hours: 1},
		{ID: "other", Date: "2024-06-04", Hours: 1},
		{ID: "second", Date: "2024-06-03", Hours: 2},
		{ID: "third", Date: "2024-06-03", Hours: 3},
	}
	groups := GroupEntries(entries)
	require.Len(t, groups, 2)
	require.Len(t, groups[0].Entries, 3)
	assert.Equal(t, "first", groups[0].Entries[0].ID)
	assert.Equal(t, "second", groups[0].Entries[1].ID)
	assert.Equal(t, "third", groups[0].Entries[2].ID)
}

func TestSumHours_MatchesArithmeticSum(t *testing.T) {
	entries := []TimeEntry{
		{Hours: 8}, {Hours: 7.5}, {Hours: 0}, {Hours: 4.25},
	}
	assert.Equal(t, 19.75, SumHours(entries))
}

func TestRecalculate_AlwaysDerivesFromEntries(t *testing.T) {
	ts := &Timesheet{TotalHours: 999, Entries: []TimeEntry{{Hours: 8}, {Hours: 8}}}
	ts.Recalculate()
	assert.Equal(t, 16.0, ts.TotalHours)

	ts.Entries = nil
	ts.Recalculate()
	assert.Zero(t, ts.TotalHours)
}

func TestClone_DetachesEntries(t *testing.T) {
	ts := &Timesheet{ID: 4, Entries: []TimeEntry{{ID: "a", Date: "2024-06-03", Hours: 8}}}
	ts.Recalculate()

	c := ts.Clone()
	c.Entries[0].Hours = 2
	c.Entries = append(c.Entries, TimeEntry{ID: "b", Date: "2024-06-04", Hours: 1})
	c.Recalculate()

	require.Len(t, ts.Entries, 1)
	assert.Equal(t, 8.0, ts.Entries[0].Hours)
	assert.Equal(t, 8.0, ts.TotalHours)
	assert.Equal(t, 3.0, c.TotalHours)
}

func TestClampHours(t *testing.T) {
	assert.Equal(t, 0.0, ClampHours(-3))
	assert.Equal(t, 24.0, ClampHours(30))
	assert.Equal(t, 8.0, ClampHours(8))
}
