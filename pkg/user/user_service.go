package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Provider interface {
	GetCurrentUser(ctx context.Context) (User, error)
}

type Service interface {
	Provider
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	ListAll(ctx context.Context) ([]User, error)
	UpdateCurrentUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, id int) error
	// ResolveName maps an opaque user uid to its display name for list and
	// calendar enrichment. An unknown uid resolves to "N/A" rather than an
	// error, so one dangling reference does not break a whole listing.
	ResolveName(ctx context.Context, uid string) string
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if user.DisplayName == "" || user.Email == "" {
		return User{}, errors.New("display name and email are required")
	}
	if !user.Role.Valid() {
		return User{}, fmt.Errorf("unknown role %q", user.Role)
	}
	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	user.Id = id
	return user, nil
}

func (s *ServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	return CurrentUser(ctx)
}

func (s *ServiceImpl) ListByRole(ctx context.Context, role Role) ([]User, error) {
	return s.repo.ListByRole(ctx, role)
}

func (s *ServiceImpl) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.ListAll(ctx)
}

func (s *ServiceImpl) UpdateCurrentUser(ctx context.Context, user User) (User, error) {
	currentUser, err := CurrentUser(ctx)
	if err != nil {
		return User{}, err
	}
	return s.repo.UpdateUser(ctx, currentUser.Id, user)
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, id int) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *ServiceImpl) ResolveName(ctx context.Context, uid string) string {
	if uid == "" {
		return "N/A"
	}
	user, err := s.repo.GetUserByUid(ctx, uid)
	if err != nil {
		return "N/A"
	}
	return user.DisplayName
}
