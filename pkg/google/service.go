package google

import (
	"context"
	"fmt"
	"time"

	"github.com/decorra/decorra/pkg/schedule"
	"github.com/decorra/decorra/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrUnauthenticated = fmt.Errorf("user is unauthenticated, authentication is required")

type CalendarItem struct {
	ID      string
	Summary string
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
	ExportAppointments(ctx context.Context, calendarId string, appointments []schedule.Appointment) (int, error)
}

type ServiceImpl struct {
	auth *GoogleAuth
}

func NewService(auth *GoogleAuth) *ServiceImpl {
	return &ServiceImpl{
		auth: auth,
	}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, userId)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	var googleCalendars []CalendarItem
	for _, cal := range calendars.Items {
		googleCalendars = append(googleCalendars, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
		})
	}
	return googleCalendars, nil
}

// ExportAppointments inserts the given appointments into the user's Google
// calendar and returns how many were exported. Cancelled appointments and
// appointments with invalid times are skipped.
func (s *ServiceImpl) ExportAppointments(ctx context.Context, calendarId string, appointments []schedule.Appointment) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, userId)
	if err != nil {
		return 0, err
	}

	exported := 0
	for _, appointment := range appointments {
		if appointment.Status == schedule.StatusCancelled {
			continue
		}
		if !appointment.HasValidTimes() {
			log.Warnf("skipping appointment %s with invalid times", appointment.ID)
			continue
		}

		_, err := googleService.Events.Insert(calendarId, &calendar.Event{
			Summary:     appointment.Title,
			Description: appointment.Description,
			Location:    appointment.Location,
			Start: &calendar.EventDateTime{
				DateTime: appointment.StartTime.Format(time.RFC3339),
			},
			End: &calendar.EventDateTime{
				DateTime: appointment.EndTime.Format(time.RFC3339),
			},
		}).Do()
		if err != nil {
			err := fmt.Errorf("unable to insert event in Google Calendar: %v", err)
			log.Error(err)
			return exported, err
		}
		exported++
	}
	return exported, nil
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context, userId int) (*calendar.Service, error) {
	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}
