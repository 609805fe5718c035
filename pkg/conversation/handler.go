package conversation

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

type ConversationDTO struct {
	ID         string `json:"id"`
	ProjectID  string `json:"projectId,omitempty"`
	ClientID   string `json:"clientId"`
	DesignerID string `json:"designerId"`
	CreatedAt  string `json:"createdAt"`
}

type MessageDTO struct {
	ID        string `json:"id"`
	SenderUid string `json:"senderId"`
	Body      string `json:"body"`
	SentAt    string `json:"sentAt"`
}

func conversationToDTO(c Conversation) ConversationDTO {
	return ConversationDTO{
		ID:         c.ID,
		ProjectID:  c.ProjectID,
		ClientID:   c.ClientID,
		DesignerID: c.DesignerID,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}

func messageToDTO(m Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		SenderUid: m.SenderUid,
		Body:      m.Body,
		SentAt:    m.SentAt.Format(time.RFC3339),
	}
}

type conversationCreateRequest struct {
	ProjectID  string `json:"projectId"`
	ClientID   string `json:"clientId"`
	DesignerID string `json:"designerId"`
}

type messageRequest struct {
	Body string `json:"body"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating new conversation")

	var request conversationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	created, err := h.service.Create(r.Context(), Conversation{
		ProjectID:  request.ProjectID,
		ClientID:   request.ClientID,
		DesignerID: request.DesignerID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(conversationToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetConversations lists the current user's conversations.
func (h *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Unknown user"})
		return
	}

	conversations, err := h.service.ListForParticipant(r.Context(), currentUser.Uid)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response := make([]ConversationDTO, 0, len(conversations))
	for _, conversation := range conversations {
		response = append(response, conversationToDTO(conversation))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["conversationId"]

	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Unknown user"})
		return
	}

	messages, err := h.service.Messages(r.Context(), id, currentUser.Uid)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response := make([]MessageDTO, 0, len(messages))
	for _, message := range messages {
		response = append(response, messageToDTO(message))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["conversationId"]
	log.Tracef("Posting message to conversation %s", id)

	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Unknown user"})
		return
	}

	var request messageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	message, err := h.service.PostMessage(r.Context(), id, currentUser.Uid, request.Body)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(messageToDTO(message)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidMessage):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotParticipant):
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
