package calendar

import (
	"time"

	"github.com/decorra/decorra/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

// monthCells is 6 rows of 7 days, enough to display any month together with
// the surrounding days that pad it to full weeks.
const monthCells = 6 * 7

// MonthGrid builds the 42-cell month view around the anchor date. The grid is
// Sunday-first: it opens with the tail of the previous month up to the weekday
// of the 1st, runs through every day of the anchor's month, and closes with
// the head of the next month. Cells outside the anchor's month are marked
// OutsideMonth.
func MonthGrid(anchor time.Time, events []schedule.Appointment) []GridCell {
	firstOfMonth := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	leading := int(firstOfMonth.Weekday())

	cells := make([]GridCell, 0, monthCells)
	for i := leading; i > 0; i-- {
		cells = append(cells, GridCell{
			Date:         firstOfMonth.AddDate(0, 0, -i),
			OutsideMonth: true,
		})
	}
	daysInMonth := daysIn(anchor.Year(), anchor.Month(), anchor.Location())
	for day := 0; day < daysInMonth; day++ {
		cells = append(cells, GridCell{Date: firstOfMonth.AddDate(0, 0, day)})
	}
	nextMonth := firstOfMonth.AddDate(0, 1, 0)
	for day := 0; len(cells) < monthCells; day++ {
		cells = append(cells, GridCell{
			Date:         nextMonth.AddDate(0, 0, day),
			OutsideMonth: true,
		})
	}

	assignToCells(cells, events)
	return cells
}

// WeekGrid builds the 7-cell Sunday-through-Saturday week containing the
// anchor date. There is no outside-period concept at week granularity.
func WeekGrid(anchor time.Time, events []schedule.Appointment) []GridCell {
	sunday := startOfDay(anchor).AddDate(0, 0, -int(anchor.Weekday()))
	cells := make([]GridCell, 0, 7)
	for day := 0; day < 7; day++ {
		cells = append(cells, GridCell{Date: sunday.AddDate(0, 0, day)})
	}
	assignToCells(cells, events)
	return cells
}

// assignToCells places each event into the cell whose date matches the
// calendar date of the event's start time. Events crossing midnight appear
// only on their start date, matching the hour-slot rule's treatment of the
// first day. Events with unusable timestamps are skipped and logged.
func assignToCells(cells []GridCell, events []schedule.Appointment) {
	for _, event := range events {
		if !event.HasValidTimes() {
			log.Warnf("skipping appointment %s in grid placement: unusable time range", event.ID)
			continue
		}
		for i := range cells {
			if sameDate(event.StartTime, cells[i].Date) {
				cells[i].Events = append(cells[i].Events, event)
				break
			}
		}
	}
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
