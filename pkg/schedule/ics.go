package schedule

import (
	ical "github.com/arran4/golang-ical"
)

// BuildICS serializes appointments as an iCalendar document so they can be
// imported into external calendar applications.
func BuildICS(appointments []Appointment) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Decorra//Appointments//EN")

	for _, a := range appointments {
		if !a.HasValidTimes() {
			continue
		}
		event := cal.AddEvent(a.ID)
		event.SetSummary(a.Title)
		event.SetStartAt(a.StartTime)
		event.SetEndAt(a.EndTime)
		if a.Description != "" {
			event.SetDescription(a.Description)
		}
		if a.Location != "" {
			event.SetLocation(a.Location)
		}
		event.SetStatus(icsStatus(a.Status))
	}
	return cal.Serialize()
}

func icsStatus(status Status) ical.ObjectStatus {
	switch status {
	case StatusCancelled:
		return ical.ObjectStatusCancelled
	case StatusConfirmed, StatusCompleted:
		return ical.ObjectStatusConfirmed
	default:
		return ical.ObjectStatusTentative
	}
}
