package calendar

import (
	"testing"
	"time"

	"github.com/decorra/decorra/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_Navigation(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	clock := &utils.MockClock{FixedNow: now}

	t.Run("opens on today in month mode", func(t *testing.T) {
		view := NewView(clock)
		assert.Equal(t, now, view.Anchor())
		assert.Equal(t, ViewMonth, view.Mode())
	})

	t.Run("month navigation lands on the first of the month", func(t *testing.T) {
		view := NewView(clock)

		view.Next()
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), view.Anchor())

		view.Previous()
		view.Previous()
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), view.Anchor())
	})

	t.Run("month navigation crosses year boundaries", func(t *testing.T) {
		view := NewView(clock)
		view.SetAnchor(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))

		view.Previous()
		assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), view.Anchor())

		view.SetAnchor(time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC))
		view.Next()
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), view.Anchor())
	})

	t.Run("week navigation moves seven days", func(t *testing.T) {
		view := NewView(clock)
		view.SetMode(ViewWeek)

		view.Next()
		assert.Equal(t, now.AddDate(0, 0, 7), view.Anchor())
		view.Previous()
		view.Previous()
		assert.Equal(t, now.AddDate(0, 0, -7), view.Anchor())
	})

	t.Run("day navigation moves one day", func(t *testing.T) {
		view := NewView(clock)
		view.SetMode(ViewDay)

		view.Next()
		assert.Equal(t, now.AddDate(0, 0, 1), view.Anchor())
		view.Previous()
		view.Previous()
		assert.Equal(t, now.AddDate(0, 0, -1), view.Anchor())
	})

	t.Run("today resets the anchor in any mode", func(t *testing.T) {
		view := NewView(clock)
		view.SetMode(ViewWeek)
		view.Next()
		view.Next()

		view.Today()
		assert.Equal(t, now, view.Anchor())
	})

	t.Run("switching modes preserves the anchor", func(t *testing.T) {
		view := NewView(clock)
		anchor := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
		view.SetAnchor(anchor)

		view.SetMode(ViewDay)
		assert.Equal(t, anchor, view.Anchor())
		view.SetMode(ViewWeek)
		assert.Equal(t, anchor, view.Anchor())
		view.SetMode(ViewMonth)
		assert.Equal(t, anchor, view.Anchor())
	})

	t.Run("is today compares the calendar date only", func(t *testing.T) {
		view := NewView(clock)
		assert.True(t, view.IsToday(time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)))
		assert.False(t, view.IsToday(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)))
	})
}

func TestParseViewMode(t *testing.T) {
	for _, valid := range []string{"month", "week", "day"} {
		mode, err := ParseViewMode(valid)
		require.NoError(t, err)
		assert.Equal(t, ViewMode(valid), mode)
	}

	_, err := ParseViewMode("year")
	assert.Error(t, err)
}
