package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/decorra/decorra/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid         string `json:"id"`
	Role        string `json:"role"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	PhotoUrl    string `json:"photoUrl,omitempty"`
}

func userToDTO(user User) UserDTO {
	return UserDTO{
		Uid:         user.Uid,
		Role:        string(user.Role),
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Phone:       user.Phone,
		PhotoUrl:    user.PhotoUrl,
	}
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request UserDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	created, err := h.service.CreateUser(r.Context(), User{
		Role:        Role(request.Role),
		DisplayName: request.DisplayName,
		Email:       request.Email,
		Phone:       request.Phone,
		PhotoUrl:    request.PhotoUrl,
	})
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(userToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	currentUser, err := h.service.GetCurrentUser(r.Context())
	if err != nil {
		http.Error(w, "no current user", http.StatusUnauthorized)
		return
	}
	if err := json.NewEncoder(w).Encode(userToDTO(currentUser)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request UserDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	updated, err := h.service.UpdateCurrentUser(r.Context(), User{
		DisplayName: request.DisplayName,
		Email:       request.Email,
		Phone:       request.Phone,
		PhotoUrl:    request.PhotoUrl,
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrNoUser) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(userToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ListUsers returns all users of the requested role, used by the client,
// designer, and vendor directory listings.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	role := Role(r.URL.Query().Get("role"))
	if !role.Valid() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid role",
			Details: "role must be one of: client, designer, vendor, admin",
		})
		return
	}

	users, err := h.service.ListByRole(r.Context(), role)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	response := make([]UserDTO, 0, len(users))
	for _, u := range users {
		response = append(response, userToDTO(u))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userId, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteUser(r.Context(), userId); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete user %d: %v", userId, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
