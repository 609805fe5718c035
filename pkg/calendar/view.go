package calendar

import (
	"time"

	"github.com/decorra/decorra/internal/utils"
	"github.com/decorra/decorra/pkg/schedule"
)

// View holds the navigation state of a calendar session: the anchor date and
// the active view mode. It owns no grid data; the grids are recomputed from
// the event list on every read.
type View struct {
	anchor time.Time
	mode   ViewMode
	clock  utils.Clock
}

// NewView opens on today in month mode.
func NewView(clock utils.Clock) *View {
	return &View{
		anchor: clock.Now(),
		mode:   ViewMonth,
		clock:  clock,
	}
}

func (v *View) Anchor() time.Time { return v.anchor }
func (v *View) Mode() ViewMode    { return v.mode }

// SetMode switches the view mode and preserves the anchor date.
func (v *View) SetMode(mode ViewMode) {
	v.mode = mode
}

// SetAnchor positions the view on an explicit date.
func (v *View) SetAnchor(date time.Time) {
	v.anchor = date
}

// Previous shifts the anchor one period back: a month, a week, or a day,
// depending on the active mode. Month navigation lands on the 1st.
func (v *View) Previous() {
	switch v.mode {
	case ViewWeek:
		v.anchor = v.anchor.AddDate(0, 0, -7)
	case ViewDay:
		v.anchor = v.anchor.AddDate(0, 0, -1)
	default:
		v.anchor = time.Date(v.anchor.Year(), v.anchor.Month()-1, 1, 0, 0, 0, 0, v.anchor.Location())
	}
}

// Next shifts the anchor one period forward.
func (v *View) Next() {
	switch v.mode {
	case ViewWeek:
		v.anchor = v.anchor.AddDate(0, 0, 7)
	case ViewDay:
		v.anchor = v.anchor.AddDate(0, 0, 1)
	default:
		v.anchor = time.Date(v.anchor.Year(), v.anchor.Month()+1, 1, 0, 0, 0, 0, v.anchor.Location())
	}
}

// Today resets the anchor to the current date regardless of mode.
func (v *View) Today() {
	v.anchor = v.clock.Now()
}

// IsToday reports whether the given date is the current date, used for the
// today highlight in grid cells.
func (v *View) IsToday(date time.Time) bool {
	return sameDate(date, v.clock.Now())
}

func (v *View) Month(events []schedule.Appointment) []GridCell {
	return MonthGrid(v.anchor, events)
}

func (v *View) Week(events []schedule.Appointment) []GridCell {
	return WeekGrid(v.anchor, events)
}

func (v *View) Day(events []schedule.Appointment) []HourSlot {
	return DaySlots(v.anchor, events)
}
