package app

import (
	"context"
	"time"

	"github.com/decorra/decorra/internal/config"
	"github.com/decorra/decorra/internal/event_bus"
	"github.com/decorra/decorra/internal/reminder"
	"github.com/decorra/decorra/internal/utils"
	"github.com/decorra/decorra/pkg/auth"
	"github.com/decorra/decorra/pkg/calendar"
	"github.com/decorra/decorra/pkg/conversation"
	"github.com/decorra/decorra/pkg/google"
	"github.com/decorra/decorra/pkg/product"
	"github.com/decorra/decorra/pkg/project"
	"github.com/decorra/decorra/pkg/schedule"
	"github.com/decorra/decorra/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	AuthService auth.Service
	OtpService  *auth.OtpService
	AuthHandler *auth.Handler

	ScheduleRepo    schedule.Repository
	ScheduleService schedule.Service
	ScheduleHandler *schedule.Handler

	CalendarHandler *calendar.Handler

	ProjectService project.Service
	ProjectHandler *project.Handler

	ConversationService conversation.Service
	ConversationHandler *conversation.Handler

	ProductService product.Service
	ProductHandler *product.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler

	ReminderDigest *reminder.Digest
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, redisClient *redis.Client, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.AuthService = auth.NewService(auth.NewRepository(db), deps.UserService)
	deps.OtpService = auth.NewOtpService(redisClient, auth.LogSender{}, time.Duration(cfg.Otp.TTLMinutes)*time.Minute)
	deps.AuthHandler = auth.NewHandler(deps.AuthService, deps.OtpService)

	deps.ProjectService = project.NewService(project.NewRepository(db))
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.ScheduleRepo = schedule.NewRepository(db)
	deps.ScheduleService = schedule.NewService(deps.ScheduleRepo, deps.EventBus)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService, nameResolver{users: deps.UserService, projects: deps.ProjectService})

	deps.CalendarHandler = calendar.NewHandler(deps.ScheduleService, deps.Clock)

	deps.ConversationService = conversation.NewService(conversation.NewRepository(db), deps.EventBus, deps.Clock)
	deps.ConversationHandler = conversation.NewHandler(deps.ConversationService)

	deps.ProductService = product.NewService(product.NewRepository(db))
	deps.ProductHandler = product.NewHandler(deps.ProductService)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService, deps.ScheduleService)

	deps.ReminderDigest = reminder.NewDigest(deps.ScheduleService, deps.UserService, reminder.LogNotifier{}, deps.Clock, cfg.Reminder.Schedule)
	reminder.SubscribeAudit(deps.EventBus)

	return deps
}

// nameResolver adapts the user and project services to the display-name
// lookups performed when rendering appointments.
type nameResolver struct {
	users    user.Service
	projects project.Service
}

func (r nameResolver) ResolveUserName(ctx context.Context, uid string) string {
	return r.users.ResolveName(ctx, uid)
}

func (r nameResolver) ResolveProjectName(ctx context.Context, id string) string {
	return r.projects.ResolveName(ctx, id)
}
