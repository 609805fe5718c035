package calendar

import (
	"testing"
	"time"

	"github.com/decorra/decorra/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySlots(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("produces 24 labelled slots", func(t *testing.T) {
		slots := DaySlots(day, nil)
		require.Len(t, slots, 24)
		assert.Equal(t, "12 AM", slots[0].Label)
		assert.Equal(t, "1 AM", slots[1].Label)
		assert.Equal(t, "11 AM", slots[11].Label)
		assert.Equal(t, "12 PM", slots[12].Label)
		assert.Equal(t, "1 PM", slots[13].Label)
		assert.Equal(t, "11 PM", slots[23].Label)
	})

	t.Run("appointment occupies every slot it overlaps", func(t *testing.T) {
		events := []schedule.Appointment{
			appointmentAt("a", day.Add(9*time.Hour), day.Add(10*time.Hour+30*time.Minute)),
		}

		slots := DaySlots(day, events)
		assert.Len(t, slots[9].Events, 1)
		assert.Len(t, slots[10].Events, 1)
		assert.Empty(t, slots[11].Events)
		assert.Empty(t, slots[8].Events)
	})

	t.Run("appointment ending on a slot boundary stays out of the next slot", func(t *testing.T) {
		events := []schedule.Appointment{
			appointmentAt("a", day.Add(9*time.Hour), day.Add(10*time.Hour)),
		}

		slots := DaySlots(day, events)
		assert.Len(t, slots[9].Events, 1)
		assert.Empty(t, slots[10].Events)
	})

	t.Run("overlapping appointments share a slot in load order", func(t *testing.T) {
		events := []schedule.Appointment{
			appointmentAt("second", day.Add(9*time.Hour+30*time.Minute), day.Add(10*time.Hour)),
			appointmentAt("first", day.Add(9*time.Hour), day.Add(9*time.Hour+45*time.Minute)),
		}

		slots := DaySlots(day, events)
		require.Len(t, slots[9].Events, 2)
		assert.Equal(t, "second", slots[9].Events[0].ID)
		assert.Equal(t, "first", slots[9].Events[1].ID)
	})

	t.Run("appointment crossing midnight fills the remaining slots of the day", func(t *testing.T) {
		events := []schedule.Appointment{
			appointmentAt("a", day.Add(23*time.Hour), day.AddDate(0, 0, 1).Add(2*time.Hour)),
		}

		slots := DaySlots(day, events)
		assert.Len(t, slots[23].Events, 1)
		assert.Empty(t, slots[22].Events)

		// and the early slots of the next day
		nextDay := DaySlots(day.AddDate(0, 0, 1), events)
		assert.Len(t, nextDay[0].Events, 1)
		assert.Len(t, nextDay[1].Events, 1)
		assert.Empty(t, nextDay[2].Events)
	})

	t.Run("skips appointments with unusable time ranges", func(t *testing.T) {
		events := []schedule.Appointment{
			{ID: "zero", Title: "No times", Status: schedule.StatusScheduled},
		}

		slots := DaySlots(day, events)
		for _, slot := range slots {
			assert.Empty(t, slot.Events)
		}
	})

	t.Run("appointment outside the day occupies nothing", func(t *testing.T) {
		events := []schedule.Appointment{
			appointmentAt("a", day.AddDate(0, 0, 3).Add(9*time.Hour), day.AddDate(0, 0, 3).Add(10*time.Hour)),
		}

		slots := DaySlots(day, events)
		for _, slot := range slots {
			assert.Empty(t, slot.Events)
		}
	})
}

func TestHourLabel(t *testing.T) {
	assert.Equal(t, "12 AM", HourLabel(0))
	assert.Equal(t, "6 AM", HourLabel(6))
	assert.Equal(t, "12 PM", HourLabel(12))
	assert.Equal(t, "6 PM", HourLabel(18))
	assert.Equal(t, "11 PM", HourLabel(23))
}
