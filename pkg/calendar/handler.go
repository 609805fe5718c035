package calendar

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/decorra/decorra/internal/rest"
	"github.com/decorra/decorra/internal/utils"
	"github.com/decorra/decorra/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type CellDTO struct {
	Date         string                    `json:"date"`
	OutsideMonth bool                      `json:"outsideMonth,omitempty"`
	Today        bool                      `json:"today,omitempty"`
	Events       []schedule.AppointmentDTO `json:"events"`
	More         string                    `json:"more,omitempty"`
}

type SlotDTO struct {
	Hour   int                       `json:"hour"`
	Label  string                    `json:"label"`
	Events []schedule.AppointmentDTO `json:"events"`
}

type CalendarDTO struct {
	View   string    `json:"view"`
	Anchor string    `json:"anchor"`
	Cells  []CellDTO `json:"cells,omitempty"`
	Slots  []SlotDTO `json:"slots,omitempty"`
}

type Handler struct {
	scheduleService schedule.Service
	clock           utils.Clock
}

func NewHandler(scheduleService schedule.Service, clock utils.Clock) *Handler {
	return &Handler{scheduleService: scheduleService, clock: clock}
}

// GetCalendar computes the month, week, or day presentation for the requested
// anchor date from the caller's appointments.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	view := ViewMode(r.URL.Query().Get("view"))
	if view == "" {
		view = ViewMonth
	}
	if _, err := ParseViewMode(string(view)); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid view mode",
			Details: "view must be one of: month, week, day",
		})
		return
	}

	anchor := h.clock.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := parseAnchorDate(dateParam)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date format",
				Details: "date must be YYYY-MM-DD or RFC3339",
			})
			return
		}
		anchor = parsed
	}

	events, err := h.scheduleService.List(r.Context())
	if err != nil {
		log.Errorf("failed to list appointments for calendar: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := CalendarDTO{
		View:   string(view),
		Anchor: anchor.Format("2006-01-02"),
	}
	switch view {
	case ViewWeek:
		response.Cells = h.cellsToDTO(WeekGrid(anchor, events), false)
	case ViewDay:
		response.Slots = slotsToDTO(DaySlots(anchor, events))
	default:
		response.Cells = h.cellsToDTO(MonthGrid(anchor, events), true)
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetUpcoming returns the flat appointment list sorted by start time.
func (h *Handler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	events, err := h.scheduleService.List(r.Context())
	if err != nil {
		log.Errorf("failed to list appointments: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sorted := Upcoming(events)
	response := make([]schedule.AppointmentDTO, 0, len(sorted))
	for _, event := range sorted {
		response = append(response, schedule.AppointmentToDTO(event))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// cellsToDTO renders grid cells. The visibility cap and "+N more" indicator
// only apply to month cells; week days list every event.
func (h *Handler) cellsToDTO(cells []GridCell, capped bool) []CellDTO {
	now := h.clock.Now()
	response := make([]CellDTO, 0, len(cells))
	for _, cell := range cells {
		visible := cell.Events
		more := ""
		if capped {
			visible = cell.Visible()
			more = cell.OverflowLabel()
		}
		events := make([]schedule.AppointmentDTO, 0, len(visible))
		for _, event := range visible {
			events = append(events, schedule.AppointmentToDTO(event))
		}
		response = append(response, CellDTO{
			Date:         cell.Date.Format("2006-01-02"),
			OutsideMonth: cell.OutsideMonth,
			Today:        sameDate(cell.Date, now),
			Events:       events,
			More:         more,
		})
	}
	return response
}

func slotsToDTO(slots []HourSlot) []SlotDTO {
	response := make([]SlotDTO, 0, len(slots))
	for _, slot := range slots {
		events := make([]schedule.AppointmentDTO, 0, len(slot.Events))
		for _, event := range slot.Events {
			events = append(events, schedule.AppointmentToDTO(event))
		}
		response = append(response, SlotDTO{Hour: slot.Hour, Label: slot.Label, Events: events})
	}
	return response
}

func parseAnchorDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
