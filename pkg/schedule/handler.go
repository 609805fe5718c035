package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/decorra/decorra/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type AppointmentDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location,omitempty"`
	Status      string `json:"status"`
	ClientID    string `json:"clientId,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	DesignerID  string `json:"designerId,omitempty"`

	ClientName   string `json:"clientName,omitempty"`
	ProjectName  string `json:"projectName,omitempty"`
	DesignerName string `json:"designerName,omitempty"`
}

func AppointmentToDTO(a Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		StartTime:   a.StartTime.Format(time.RFC3339),
		EndTime:     a.EndTime.Format(time.RFC3339),
		Location:    a.Location,
		Status:      string(a.Status),
		ClientID:    a.ClientID,
		ProjectID:   a.ProjectID,
		DesignerID:  a.DesignerID,
	}
}

type appointmentCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	ClientID    string `json:"clientId"`
	ProjectID   string `json:"projectId"`
	DesignerID  string `json:"designerId"`
}

type appointmentUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
	ClientID    *string `json:"clientId"`
	ProjectID   *string `json:"projectId"`
}

// NameResolver supplies display names for the opaque client, project and
// designer references carried by an appointment. Unknown references resolve
// to a placeholder rather than an error.
type NameResolver interface {
	ResolveUserName(ctx context.Context, uid string) string
	ResolveProjectName(ctx context.Context, id string) string
}

type Handler struct {
	service  Service
	resolver NameResolver
}

func NewHandler(service Service, resolver NameResolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

func (h *Handler) toDTO(ctx context.Context, a Appointment) AppointmentDTO {
	dto := AppointmentToDTO(a)
	if h.resolver == nil {
		return dto
	}
	if a.ClientID != "" {
		dto.ClientName = h.resolver.ResolveUserName(ctx, a.ClientID)
	}
	if a.ProjectID != "" {
		dto.ProjectName = h.resolver.ResolveProjectName(ctx, a.ProjectID)
	}
	if a.DesignerID != "" {
		dto.DesignerName = h.resolver.ResolveUserName(ctx, a.DesignerID)
	}
	return dto
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating new appointment")

	var request appointmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	startTime, endTime, err := parseTimeRange(request.StartTime, request.EndTime)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid time format",
			Details: "startTime and endTime must be in RFC3339 format",
		})
		return
	}

	appointment := Appointment{
		Title:       request.Title,
		Description: request.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    request.Location,
		Status:      Status(request.Status),
		ClientID:    request.ClientID,
		ProjectID:   request.ProjectID,
		DesignerID:  request.DesignerID,
	}

	created, err := h.service.Create(r.Context(), appointment)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(h.toDTO(r.Context(), created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	appointments, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response := make([]AppointmentDTO, 0, len(appointments))
	for _, appointment := range appointments {
		response = append(response, h.toDTO(r.Context(), appointment))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["appointmentId"]
	log.Tracef("Updating appointment %s", id)

	var request appointmentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	patch, err := requestToPatch(request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid time format",
			Details: "startTime and endTime must be in RFC3339 format",
		})
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(h.toDTO(r.Context(), updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["appointmentId"]
	log.Tracef("Deleting appointment %s", id)

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportICS renders the caller's appointments as an iCalendar document.
func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="appointments.ics"`)
	if _, err := w.Write([]byte(BuildICS(appointments))); err != nil {
		log.Errorf("failed to write ICS response: %v", err)
	}
}

func requestToPatch(request appointmentUpdateRequest) (Patch, error) {
	patch := Patch{
		Title:       request.Title,
		Description: request.Description,
		Location:    request.Location,
		ClientID:    request.ClientID,
		ProjectID:   request.ProjectID,
	}
	if request.Status != nil {
		status := Status(*request.Status)
		patch.Status = &status
	}
	if request.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *request.StartTime)
		if err != nil {
			return Patch{}, ErrBadTimestamp
		}
		patch.StartTime = &startTime
	}
	if request.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339, *request.EndTime)
		if err != nil {
			return Patch{}, ErrBadTimestamp
		}
		patch.EndTime = &endTime
	}
	return patch, nil
}

func parseTimeRange(start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, ErrBadTimestamp
	}
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadTimestamp
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadTimestamp
	}
	return startTime, endTime, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrBadTimestamp):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrRemoteUnavailable):
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
