package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/decorra/decorra/internal/rest"
	"github.com/decorra/decorra/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ProjectDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ClientID    string  `json:"clientId,omitempty"`
	DesignerID  string  `json:"designerId,omitempty"`
	Status      string  `json:"status"`
	Budget      float64 `json:"budget,omitempty"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     string  `json:"endDate,omitempty"`
}

func toDTO(p Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ClientID:    p.ClientID,
		DesignerID:  p.DesignerID,
		Status:      string(p.Status),
		Budget:      p.Budget,
	}
	if !p.StartDate.IsZero() {
		dto.StartDate = p.StartDate.Format("2006-01-02")
	}
	if !p.EndDate.IsZero() {
		dto.EndDate = p.EndDate.Format("2006-01-02")
	}
	return dto
}

type projectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ClientID    string  `json:"clientId"`
	DesignerID  string  `json:"designerId"`
	Status      string  `json:"status"`
	Budget      float64 `json:"budget"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating new project")

	project, ok := decodeProject(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), project)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["projectId"]

	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(project)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetProjects lists projects where the current user is the client or the designer.
func (h *Handler) GetProjects(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Unknown user"})
		return
	}

	projects, err := h.service.ListForParticipant(r.Context(), currentUser.Uid)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response := make([]ProjectDTO, 0, len(projects))
	for _, project := range projects {
		response = append(response, toDTO(project))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["projectId"]
	log.Tracef("Updating project %s", id)

	project, ok := decodeProject(w, r)
	if !ok {
		return
	}
	project.ID = id

	updated, err := h.service.Update(r.Context(), project)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["projectId"]
	log.Tracef("Deleting project %s", id)

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeProject(w http.ResponseWriter, r *http.Request) (Project, bool) {
	var request projectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return Project{}, false
	}

	startDate, err := parseDate(request.StartDate)
	if err == nil {
		var endDate time.Time
		endDate, err = parseDate(request.EndDate)
		if err == nil {
			return Project{
				Name:        request.Name,
				Description: request.Description,
				ClientID:    request.ClientID,
				DesignerID:  request.DesignerID,
				Status:      Status(request.Status),
				Budget:      request.Budget,
				StartDate:   startDate,
				EndDate:     endDate,
			}, true
		}
	}

	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   "Invalid date format",
		Details: "startDate and endDate must be in YYYY-MM-DD format",
	})
	return Project{}, false
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidProject):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
