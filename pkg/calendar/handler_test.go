package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/decorra/decorra/internal/utils"
	"github.com/decorra/decorra/pkg/schedule"
	"github.com/decorra/decorra/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handlerSetup(t *testing.T) (*Handler, context.Context) {
	repo := schedule.NewStubRepository()
	service := schedule.NewService(repo, nil)
	t.Cleanup(repo.Cleanup)

	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)}
	ctx := user.WithUser(context.Background(), user.User{
		Id:          10,
		Uid:         "designer-uid",
		Role:        user.RoleDesigner,
		DisplayName: "Test Designer",
	})
	return NewHandler(service, clock), ctx
}

func createAppointments(t *testing.T, handler *Handler, ctx context.Context, day time.Time, n int) {
	for i := 0; i < n; i++ {
		_, err := handler.scheduleService.Create(ctx, schedule.Appointment{
			Title:     fmt.Sprintf("Visit %d", i+1),
			StartTime: day.Add(time.Duration(9+i) * time.Hour),
			EndTime:   day.Add(time.Duration(10+i) * time.Hour),
		})
		require.NoError(t, err)
	}
}

func getCalendar(t *testing.T, handler *Handler, ctx context.Context, view, date string) CalendarDTO {
	request := httptest.NewRequest("GET", "/api/calendar?view="+view+"&date="+date, nil).WithContext(ctx)
	recorder := httptest.NewRecorder()

	handler.GetCalendar(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var response CalendarDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	return response
}

func TestGetCalendar(t *testing.T) {
	day := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)

	t.Run("month cell caps at three events with overflow indicator", func(t *testing.T) {
		handler, ctx := handlerSetup(t)
		createAppointments(t, handler, ctx, day, 5)

		response := getCalendar(t, handler, ctx, "month", "2024-03-13T00:00:00Z")

		require.Len(t, response.Cells, 42)
		cell := findCell(t, response.Cells, "2024-03-13")
		assert.Len(t, cell.Events, 3)
		assert.Equal(t, "+2 more", cell.More)
	})

	t.Run("week day lists every event without a cap", func(t *testing.T) {
		handler, ctx := handlerSetup(t)
		createAppointments(t, handler, ctx, day, 5)

		response := getCalendar(t, handler, ctx, "week", "2024-03-13T00:00:00Z")

		require.Len(t, response.Cells, 7)
		cell := findCell(t, response.Cells, "2024-03-13")
		assert.Len(t, cell.Events, 5)
		assert.Empty(t, cell.More)
	})

	t.Run("day view returns 24 hour slots", func(t *testing.T) {
		handler, ctx := handlerSetup(t)
		createAppointments(t, handler, ctx, day, 1)

		response := getCalendar(t, handler, ctx, "day", "2024-03-13T00:00:00Z")

		require.Len(t, response.Slots, 24)
		assert.Len(t, response.Slots[9].Events, 1)
		assert.Empty(t, response.Slots[8].Events)
	})

	t.Run("rejects unknown view mode", func(t *testing.T) {
		handler, ctx := handlerSetup(t)

		request := httptest.NewRequest("GET", "/api/calendar?view=year", nil).WithContext(ctx)
		recorder := httptest.NewRecorder()
		handler.GetCalendar(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func findCell(t *testing.T, cells []CellDTO, date string) CellDTO {
	t.Helper()
	for _, cell := range cells {
		if cell.Date == date {
			return cell
		}
	}
	t.Fatalf("no cell for %s", date)
	return CellDTO{}
}
