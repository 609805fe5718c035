package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidProject = errors.New("invalid project")

type Service interface {
	Create(ctx context.Context, project Project) (Project, error)
	Get(ctx context.Context, id string) (Project, error)
	ListForParticipant(ctx context.Context, participantUid string) ([]Project, error)
	Update(ctx context.Context, project Project) (Project, error)
	Delete(ctx context.Context, id string) error
	ResolveName(ctx context.Context, id string) string
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, project Project) (Project, error) {
	if err := validate(project); err != nil {
		return Project{}, err
	}
	project.ID = uuid.New().String()
	if project.Status == "" {
		project.Status = StatusPlanning
	}
	if err := s.repo.Store(ctx, project); err != nil {
		return Project{}, err
	}
	return project, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) ListForParticipant(ctx context.Context, participantUid string) ([]Project, error) {
	return s.repo.ListForParticipant(ctx, participantUid)
}

func (s *ServiceImpl) Update(ctx context.Context, project Project) (Project, error) {
	if err := validate(project); err != nil {
		return Project{}, err
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return Project{}, err
	}
	return project, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ServiceImpl) ResolveName(ctx context.Context, id string) string {
	if id == "" {
		return "N/A"
	}
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return "N/A"
	}
	return project.Name
}

func validate(project Project) error {
	if project.Name == "" {
		return ErrInvalidProject
	}
	if project.Status != "" && !project.Status.Valid() {
		return ErrInvalidProject
	}
	if !project.StartDate.IsZero() && !project.EndDate.IsZero() && project.EndDate.Before(project.StartDate) {
		return ErrInvalidProject
	}
	return nil
}
