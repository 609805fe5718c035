package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrValidation        = errors.New("invalid appointment")
	ErrNotFound          = errors.New("appointment not found")
	ErrRemoteUnavailable = errors.New("appointment storage unavailable")
	ErrBadTimestamp      = errors.New("invalid timestamp")
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Appointment is a single scheduled meeting between the owning designer or
// vendor and (optionally) a client, in the context of a project. Client,
// project and designer references are opaque here; they are resolved to
// display names by the user and project packages.
type Appointment struct {
	ID          string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	Status      Status
	ClientID    string
	ProjectID   string
	DesignerID  string
	OwnerID     int
}

// Validate checks the invariants required before an appointment may be stored:
// a non-empty title, both timestamps present, and StartTime < EndTime.
func (a Appointment) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if a.StartTime.IsZero() || a.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", ErrValidation)
	}
	if !a.StartTime.Before(a.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}
	if a.Status != "" && !a.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, a.Status)
	}
	return nil
}

// HasValidTimes reports whether the appointment can take part in calendar
// placement. Appointments failing this check are skipped by the view engine
// instead of aborting the whole computation.
func (a Appointment) HasValidTimes() bool {
	return !a.StartTime.IsZero() && !a.EndTime.IsZero() && a.StartTime.Before(a.EndTime)
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    *string
	Status      *Status
	ClientID    *string
	ProjectID   *string
}

// Apply returns a copy of the appointment with the non-nil patch fields set.
func (p Patch) Apply(a Appointment) Appointment {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.StartTime != nil {
		a.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		a.EndTime = *p.EndTime
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.ClientID != nil {
		a.ClientID = *p.ClientID
	}
	if p.ProjectID != nil {
		a.ProjectID = *p.ProjectID
	}
	return a
}
