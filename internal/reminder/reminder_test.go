package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/decorra/decorra/internal/utils"
	"github.com/decorra/decorra/pkg/schedule"
	"github.com/decorra/decorra/pkg/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingNotifier struct {
	digests map[int]string
}

func (n *capturingNotifier) Notify(_ context.Context, recipient user.User, digest string) error {
	n.digests[recipient.Id] = digest
	return nil
}

func digestSetup(t *testing.T) (*Digest, *schedule.StubRepository, user.Service, *capturingNotifier) {
	scheduleRepo := schedule.NewStubRepository()
	scheduleService := schedule.NewService(scheduleRepo, nil)
	userService := user.NewUserService(user.NewStubUserRepo())
	notifier := &capturingNotifier{digests: map[int]string{}}
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 5, 7, 0, 0, 0, time.UTC)}
	digest := NewDigest(scheduleService, userService, notifier, clock, "0 7 * * *")
	t.Cleanup(scheduleRepo.Cleanup)
	return digest, scheduleRepo, userService, notifier
}

func storedAppointment(title string, start time.Time, duration time.Duration) schedule.Appointment {
	return schedule.Appointment{
		ID:        uuid.NewString(),
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(duration),
		Status:    schedule.StatusConfirmed,
	}
}

func TestDigest_Run(t *testing.T) {
	t.Run("delivers one digest per user with appointments today", func(t *testing.T) {
		digest, repo, userService, notifier := digestSetup(t)

		busy, err := userService.CreateUser(context.Background(), user.User{
			Role: user.RoleDesigner, DisplayName: "Busy Designer", Email: "busy@example.com",
		})
		require.NoError(t, err)
		idle, err := userService.CreateUser(context.Background(), user.User{
			Role: user.RoleVendor, DisplayName: "Idle Vendor", Email: "idle@example.com",
		})
		require.NoError(t, err)

		day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Store(context.Background(), busy.Id,
			storedAppointment("Afternoon review", day.Add(14*time.Hour), time.Hour)))
		require.NoError(t, repo.Store(context.Background(), busy.Id,
			storedAppointment("Morning visit", day.Add(9*time.Hour), time.Hour)))
		// not today
		require.NoError(t, repo.Store(context.Background(), busy.Id,
			storedAppointment("Tomorrow", day.AddDate(0, 0, 1).Add(9*time.Hour), time.Hour)))

		require.NoError(t, digest.Run(context.Background()))

		require.Contains(t, notifier.digests, busy.Id)
		assert.NotContains(t, notifier.digests, idle.Id)

		lines := notifier.digests[busy.Id]
		// chronological, one line each, tomorrow excluded
		assert.Equal(t, "09:00 - 10:00  Morning visit\n14:00 - 15:00  Afternoon review\n", lines)
	})

	t.Run("skips cancelled appointments", func(t *testing.T) {
		digest, repo, userService, notifier := digestSetup(t)

		u, err := userService.CreateUser(context.Background(), user.User{
			Role: user.RoleDesigner, DisplayName: "Designer", Email: "d@example.com",
		})
		require.NoError(t, err)

		day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		cancelled := storedAppointment("Cancelled", day.Add(9*time.Hour), time.Hour)
		cancelled.Status = schedule.StatusCancelled
		require.NoError(t, repo.Store(context.Background(), u.Id, cancelled))

		require.NoError(t, digest.Run(context.Background()))
		assert.Empty(t, notifier.digests)
	})

	t.Run("includes the location when set", func(t *testing.T) {
		digest, repo, userService, notifier := digestSetup(t)

		u, err := userService.CreateUser(context.Background(), user.User{
			Role: user.RoleDesigner, DisplayName: "Designer", Email: "d@example.com",
		})
		require.NoError(t, err)

		day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		visit := storedAppointment("Site visit", day.Add(10*time.Hour), 2*time.Hour)
		visit.Location = "12 Main St"
		require.NoError(t, repo.Store(context.Background(), u.Id, visit))

		require.NoError(t, digest.Run(context.Background()))
		assert.Equal(t, "10:00 - 12:00  Site visit (12 Main St)\n", notifier.digests[u.Id])
	})

	t.Run("no users means nothing to deliver", func(t *testing.T) {
		digest, _, _, notifier := digestSetup(t)
		require.NoError(t, digest.Run(context.Background()))
		assert.Empty(t, notifier.digests)
	})
}

func TestDigest_Start(t *testing.T) {
	t.Run("rejects an invalid cron expression", func(t *testing.T) {
		scheduleService := schedule.NewService(schedule.NewStubRepository(), nil)
		userService := user.NewUserService(user.NewStubUserRepo())
		clock := &utils.MockClock{FixedNow: time.Now()}

		digest := NewDigest(scheduleService, userService, LogNotifier{}, clock, "not a schedule")
		assert.Error(t, digest.Start())
	})
}
