package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/decorra/decorra/internal/event_bus"
	"github.com/decorra/decorra/internal/utils"
	"github.com/decorra/decorra/pkg/schedule"
	"github.com/decorra/decorra/pkg/user"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Notifier delivers a daily digest to a single user.
type Notifier interface {
	Notify(ctx context.Context, recipient user.User, digest string) error
}

// LogNotifier writes digests to the application log. It stands in until a
// real delivery channel (email, push) is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, recipient user.User, digest string) error {
	log.Infof("appointment digest for %s:\n%s", recipient.DisplayName, digest)
	return nil
}

// Digest runs a cron job that sends every user a summary of their
// appointments for the day.
type Digest struct {
	scheduleService schedule.Service
	userService     user.Service
	notifier        Notifier
	clock           utils.Clock
	cron            *cron.Cron
	spec            string
}

func NewDigest(
	scheduleService schedule.Service,
	userService user.Service,
	notifier Notifier,
	clock utils.Clock,
	spec string,
) *Digest {
	return &Digest{
		scheduleService: scheduleService,
		userService:     userService,
		notifier:        notifier,
		clock:           clock,
		cron:            cron.New(),
		spec:            spec,
	}
}

func (d *Digest) Start() error {
	_, err := d.cron.AddFunc(d.spec, func() {
		if err := d.Run(context.Background()); err != nil {
			log.Errorf("appointment digest run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", d.spec, err)
	}
	d.cron.Start()
	log.Infof("appointment digest scheduled: %s", d.spec)
	return nil
}

func (d *Digest) Stop() {
	<-d.cron.Stop().Done()
}

// Run produces and delivers today's digest for every user. Users with no
// appointments today are skipped.
func (d *Digest) Run(ctx context.Context) error {
	users, err := d.userService.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("could not list users for digest: %w", err)
	}

	today := d.clock.Now()
	var failed int
	for _, u := range users {
		appointments, err := d.scheduleService.ListForOwner(ctx, u.Id)
		if err != nil {
			log.Errorf("could not list appointments for user %d: %v", u.Id, err)
			failed++
			continue
		}

		digest := buildDigest(today, appointments)
		if digest == "" {
			continue
		}
		if err := d.notifier.Notify(ctx, u, digest); err != nil {
			log.Errorf("could not deliver digest to user %d: %v", u.Id, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("digest delivery failed for %d user(s)", failed)
	}
	return nil
}

// buildDigest renders today's appointments as one line per appointment,
// sorted by start time. It returns "" when there is nothing to report.
func buildDigest(today time.Time, appointments []schedule.Appointment) string {
	todays := make([]schedule.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.Status == schedule.StatusCancelled || !a.HasValidTimes() {
			continue
		}
		if sameDate(a.StartTime, today) {
			todays = append(todays, a)
		}
	}
	if len(todays) == 0 {
		return ""
	}
	todays = schedule.SortedByStart(todays)

	var b strings.Builder
	for _, a := range todays {
		fmt.Fprintf(&b, "%s - %s  %s", a.StartTime.Format("15:04"), a.EndTime.Format("15:04"), a.Title)
		if a.Location != "" {
			fmt.Fprintf(&b, " (%s)", a.Location)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SubscribeAudit logs a line for every appointment mutation flowing through
// the bus, giving the digest job an audit trail of what changed since the
// last run.
func SubscribeAudit(bus *event_bus.EventBus) {
	for _, eventType := range []event_bus.EventType{
		event_bus.AppointmentCreated,
		event_bus.AppointmentUpdated,
		event_bus.AppointmentDeleted,
	} {
		bus.Subscribe(eventType, func(e event_bus.Event) error {
			if changed, ok := e.Data.(event_bus.AppointmentChanged); ok {
				log.Infof("%s: %q (%s) for owner %d", e.Type, changed.Title, changed.ID, changed.OwnerID)
			}
			return nil
		})
	}
}
