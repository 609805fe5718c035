package google

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/decorra/decorra/pkg/schedule"
)

type CalendarItemDto struct {
	Id      string `json:"id"`
	Summary string `json:"summary"`
}

type exportRequest struct {
	CalendarId string `json:"calendarId"`
}

type exportResponse struct {
	Exported int `json:"exported"`
}

type Handler struct {
	service         Service
	scheduleService schedule.Service
}

func NewHandler(s Service, scheduleService schedule.Service) *Handler {
	return &Handler{service: s, scheduleService: scheduleService}
}

func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	calendars, err := h.service.ListCalendars(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	calendarItems := make([]CalendarItemDto, 0, len(calendars))
	for _, c := range calendars {
		calendarItems = append(calendarItems, toCalendarItemDto(c))
	}

	if err := json.NewEncoder(w).Encode(calendarItems); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ExportAppointments pushes the current user's appointments to one of their
// Google calendars.
func (h *Handler) ExportAppointments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request exportRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.CalendarId == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	appointments, err := h.scheduleService.List(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	exported, err := h.service.ExportAppointments(r.Context(), request.CalendarId, appointments)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(exportResponse{Exported: exported}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toCalendarItemDto(ci CalendarItem) CalendarItemDto {
	return CalendarItemDto{
		Id:      ci.ID,
		Summary: ci.Summary,
	}
}
