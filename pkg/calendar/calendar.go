package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/decorra/decorra/pkg/schedule"
)

type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
	ViewDay   ViewMode = "day"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewMonth, ViewWeek, ViewDay:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

// maxVisibleEvents is the month-cell display cap; events beyond it are folded
// into the "+N more" overflow indicator.
const maxVisibleEvents = 3

// GridCell is one day slot of a month or week grid. Events stay in the order
// they were loaded; no sorting is applied inside a cell.
type GridCell struct {
	Date         time.Time
	OutsideMonth bool
	Events       []schedule.Appointment
}

// Visible returns the events displayed in a month cell, capped at three.
func (c GridCell) Visible() []schedule.Appointment {
	if len(c.Events) <= maxVisibleEvents {
		return c.Events
	}
	return c.Events[:maxVisibleEvents]
}

// Overflow returns how many events are hidden behind the cap.
func (c GridCell) Overflow() int {
	if len(c.Events) <= maxVisibleEvents {
		return 0
	}
	return len(c.Events) - maxVisibleEvents
}

// OverflowLabel returns the "+N more" indicator, or "" when nothing is hidden.
func (c GridCell) OverflowLabel() string {
	if n := c.Overflow(); n > 0 {
		return fmt.Sprintf("+%d more", n)
	}
	return ""
}

// HourSlot is one hour of a day or week column.
type HourSlot struct {
	Hour   int
	Label  string
	Events []schedule.Appointment
}

// Upcoming returns a copy of the given appointments sorted ascending by start
// time. The sort is stable, so appointments sharing a start time keep their
// load order.
func Upcoming(events []schedule.Appointment) []schedule.Appointment {
	sorted := make([]schedule.Appointment, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})
	return sorted
}

// sameDate reports whether two instants fall on the same calendar date. This
// is the day-cell comparison: time of day is ignored.
func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
