package calendar

import (
	"fmt"
	"time"

	"github.com/decorra/decorra/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

// DaySlots builds the 24 hour slots of the given date. An appointment occupies
// every slot it overlaps: slot h covers the half-open interval
// [date h:00, date h+1:00), and the appointment's own interval is treated as
// half-open too, so an appointment ending exactly on a slot boundary does not
// spill into the next slot.
func DaySlots(date time.Time, events []schedule.Appointment) []HourSlot {
	day := startOfDay(date)
	slots := make([]HourSlot, 0, 24)
	for hour := 0; hour < 24; hour++ {
		slot := HourSlot{Hour: hour, Label: HourLabel(hour)}
		slotStart := day.Add(time.Duration(hour) * time.Hour)
		slotEnd := slotStart.Add(time.Hour)
		for _, event := range events {
			if !event.HasValidTimes() {
				log.Warnf("skipping appointment %s in slot placement: unusable time range", event.ID)
				continue
			}
			if occupiesSlot(event, slotStart, slotEnd) {
				slot.Events = append(slot.Events, event)
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// occupiesSlot is the instant comparison of the two placement rules: a strict
// interval overlap between the appointment and the slot.
func occupiesSlot(event schedule.Appointment, slotStart, slotEnd time.Time) bool {
	return event.StartTime.Before(slotEnd) && event.EndTime.After(slotStart)
}

// HourLabel renders an hour of day on the 12-hour clock: "12 AM" for
// midnight through "11 PM".
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}
