package auth

import (
	"context"
	"testing"

	"github.com/decorra/decorra/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authSetup(t *testing.T) (Service, *StubRepository) {
	repo := NewStubRepository()
	userService := user.NewUserService(user.NewStubUserRepo())
	service := NewService(repo, userService)
	t.Cleanup(repo.Cleanup)
	return service, repo
}

func newClient(email string) user.User {
	return user.User{
		Role:        user.RoleClient,
		DisplayName: "Test Client",
		Email:       email,
	}
}

func TestServiceImpl_Signup(t *testing.T) {
	t.Run("creates the user and its credentials", func(t *testing.T) {
		service, repo := authSetup(t)

		created, err := service.Signup(context.Background(), newClient("client@example.com"), "s3cret")

		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.NotEmpty(t, created.Uid)

		credentials, hash, err := repo.Find(context.Background(), "client@example.com", "client")
		require.NoError(t, err)
		assert.Equal(t, created.Uid, credentials.UserUid)
		// the password is never stored in the clear
		assert.NotEqual(t, "s3cret", hash)
	})

	t.Run("rejects a duplicate email and role pair", func(t *testing.T) {
		service, _ := authSetup(t)

		_, err := service.Signup(context.Background(), newClient("client@example.com"), "s3cret")
		require.NoError(t, err)

		_, err = service.Signup(context.Background(), newClient("client@example.com"), "other")
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("same email may register under a different role", func(t *testing.T) {
		service, _ := authSetup(t)

		_, err := service.Signup(context.Background(), newClient("dual@example.com"), "s3cret")
		require.NoError(t, err)

		asDesigner := newClient("dual@example.com")
		asDesigner.Role = user.RoleDesigner
		_, err = service.Signup(context.Background(), asDesigner, "s3cret")
		assert.NoError(t, err)
	})

	t.Run("requires a password", func(t *testing.T) {
		service, _ := authSetup(t)

		_, err := service.Signup(context.Background(), newClient("client@example.com"), "")
		assert.Error(t, err)
	})
}

func TestServiceImpl_Login(t *testing.T) {
	t.Run("returns the user on matching credentials", func(t *testing.T) {
		service, _ := authSetup(t)
		created, err := service.Signup(context.Background(), newClient("client@example.com"), "s3cret")
		require.NoError(t, err)

		loggedIn, err := service.Login(context.Background(), "client@example.com", "client", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, created.Uid, loggedIn.Uid)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		service, _ := authSetup(t)
		_, err := service.Signup(context.Background(), newClient("client@example.com"), "s3cret")
		require.NoError(t, err)

		_, err = service.Login(context.Background(), "client@example.com", "client", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown account", func(t *testing.T) {
		service, _ := authSetup(t)

		_, err := service.Login(context.Background(), "nobody@example.com", "client", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestServiceImpl_ChangePassword(t *testing.T) {
	service, _ := authSetup(t)
	_, err := service.Signup(context.Background(), newClient("client@example.com"), "old")
	require.NoError(t, err)

	require.NoError(t, service.ChangePassword(context.Background(), "client@example.com", "client", "new"))

	_, err = service.Login(context.Background(), "client@example.com", "client", "old")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = service.Login(context.Background(), "client@example.com", "client", "new")
	assert.NoError(t, err)
}
