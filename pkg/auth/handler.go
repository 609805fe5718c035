package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/decorra/decorra/internal/rest"
	"github.com/decorra/decorra/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
	otp     *OtpService
}

func NewHandler(service Service, otp *OtpService) *Handler {
	return &Handler{service: service, otp: otp}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request signupRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	created, err := h.service.Signup(r.Context(), user.User{
		DisplayName: request.Name,
		Email:       request.Email,
		Phone:       request.Phone,
		Role:        user.Role(request.Role),
	}, request.Password)
	if err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": created.Uid, "role": string(created.Role)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	loggedIn, err := h.service.Login(r.Context(), request.Email, request.Role, request.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid email or password"})
			return
		}
		log.Errorf("login failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{
		"id":   loggedIn.Uid,
		"role": string(loggedIn.Role),
		"name": loggedIn.DisplayName,
	})
}

type otpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *Handler) SendOtp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request otpRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Email == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Email is required"})
		return
	}

	if err := h.otp.Send(r.Context(), request.Email); err != nil {
		log.Errorf("failed to send passcode to %s: %v", request.Email, err)
		http.Error(w, "failed to send passcode", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request otpRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Email == "" || request.Code == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Email and code are required"})
		return
	}

	if err := h.otp.Verify(r.Context(), request.Email, request.Code); err != nil {
		if errors.Is(err, ErrCodeExpired) || errors.Is(err, ErrCodeMismatch) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"verified": true})
}
