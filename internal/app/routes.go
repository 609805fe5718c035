package app

import (
	"github.com/decorra/decorra/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Authentication
	r.HandleFunc("/api/auth/signup", deps.AuthHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", deps.AuthHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/otp", deps.AuthHandler.SendOtp).Methods("POST")
	r.HandleFunc("/api/auth/otp/verify", deps.AuthHandler.VerifyOtp).Methods("POST")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.ListUsers).Methods("GET")
	r.HandleFunc("/api/user/{userId}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Appointments
	r.HandleFunc("/api/appointment", deps.ScheduleHandler.GetAppointments).Methods("GET")
	r.HandleFunc("/api/appointment", deps.ScheduleHandler.CreateAppointment).Methods("POST")
	r.HandleFunc("/api/appointment/export", deps.ScheduleHandler.ExportICS).Methods("GET")
	r.HandleFunc("/api/appointment/{appointmentId}", deps.ScheduleHandler.UpdateAppointment).Methods("PUT")
	r.HandleFunc("/api/appointment/{appointmentId}", deps.ScheduleHandler.DeleteAppointment).Methods("DELETE")

	// Calendar views
	r.HandleFunc("/api/calendar", deps.CalendarHandler.GetCalendar).Methods("GET")
	r.HandleFunc("/api/calendar/upcoming", deps.CalendarHandler.GetUpcoming).Methods("GET")

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.GetProjects).Methods("GET")
	r.HandleFunc("/api/project", deps.ProjectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.GetProject).Methods("GET")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.UpdateProject).Methods("PUT")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.DeleteProject).Methods("DELETE")

	// Conversations
	r.HandleFunc("/api/conversation", deps.ConversationHandler.GetConversations).Methods("GET")
	r.HandleFunc("/api/conversation", deps.ConversationHandler.CreateConversation).Methods("POST")
	r.HandleFunc("/api/conversation/{conversationId}/message", deps.ConversationHandler.GetMessages).Methods("GET")
	r.HandleFunc("/api/conversation/{conversationId}/message", deps.ConversationHandler.PostMessage).Methods("POST")

	// Product catalog
	r.HandleFunc("/api/product", deps.ProductHandler.GetProducts).Methods("GET")
	r.HandleFunc("/api/product", deps.ProductHandler.CreateProduct).Methods("POST")
	r.HandleFunc("/api/product/{productId}", deps.ProductHandler.GetProduct).Methods("GET")
	r.HandleFunc("/api/product/{productId}", deps.ProductHandler.UpdateProduct).Methods("PUT")
	r.HandleFunc("/api/product/{productId}", deps.ProductHandler.DeleteProduct).Methods("DELETE")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
	r.HandleFunc("/api/integrations/google/export", deps.GoogleHandler.ExportAppointments).Methods("POST")
}
