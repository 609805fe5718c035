package project

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("project not found")

type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusOnHold     Status = "on_hold"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusOnHold, StatusCompleted:
		return true
	}
	return false
}

// Project is a design engagement between a client and a designer.
type Project struct {
	ID          string
	Name        string
	Description string
	ClientID    string
	DesignerID  string
	Status      Status
	Budget      float64
	StartDate   time.Time
	EndDate     time.Time
}
