package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/decorra/decorra/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Signup(ctx context.Context, newUser user.User, password string) (user.User, error)
	Login(ctx context.Context, email, role, password string) (user.User, error)
	ChangePassword(ctx context.Context, email, role, newPassword string) error
}

type ServiceImpl struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) *ServiceImpl {
	return &ServiceImpl{repo: repo, userService: userService}
}

// Signup creates the marketplace user and its credentials in one step.
func (s *ServiceImpl) Signup(ctx context.Context, newUser user.User, password string) (user.User, error) {
	if password == "" {
		return user.User{}, errors.New("password is required")
	}
	if _, _, err := s.repo.Find(ctx, newUser.Email, string(newUser.Role)); err == nil {
		return user.User{}, ErrAlreadyRegistered
	}

	created, err := s.userService.CreateUser(ctx, newUser)
	if err != nil {
		return user.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	err = s.repo.Store(ctx, Credentials{
		Email:   created.Email,
		Role:    string(created.Role),
		UserUid: created.Uid,
	}, string(hash))
	if err != nil {
		return user.User{}, err
	}
	log.Infof("registered %s account for %s", created.Role, created.Uid)
	return created, nil
}

func (s *ServiceImpl) Login(ctx context.Context, email, role, password string) (user.User, error) {
	credentials, passwordHash, err := s.repo.Find(ctx, email, role)
	if err != nil {
		return user.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return s.userService.GetUserByUid(ctx, credentials.UserUid)
}

func (s *ServiceImpl) ChangePassword(ctx context.Context, email, role, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, email, role, string(hash))
}
