package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildICS(t *testing.T) {
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	appointments := []Appointment{
		{
			ID:        "appt-1",
			Title:     "Site visit",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Location:  "12 Main St",
			Status:    StatusConfirmed,
		},
		{
			ID:    "broken",
			Title: "No times",
		},
	}

	serialized := BuildICS(appointments)

	assert.True(t, strings.HasPrefix(serialized, "BEGIN:VCALENDAR"))
	assert.Contains(t, serialized, "UID:appt-1")
	assert.Contains(t, serialized, "SUMMARY:Site visit")
	assert.Contains(t, serialized, "LOCATION:12 Main St")
	assert.Contains(t, serialized, "STATUS:CONFIRMED")
	assert.Contains(t, serialized, "DTSTART:20240305T090000Z")
	// the appointment without usable times is left out
	assert.NotContains(t, serialized, "broken")
}
