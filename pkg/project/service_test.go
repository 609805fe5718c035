package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectSetup(t *testing.T) (Service, *StubRepository) {
	repo := NewStubRepository()
	service := NewService(repo)
	t.Cleanup(repo.Cleanup)
	return service, repo
}

func validProject() Project {
	return Project{
		Name:       "Loft renovation",
		ClientID:   "client-1",
		DesignerID: "designer-1",
		Budget:     25000,
		StartDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("assigns id and default status", func(t *testing.T) {
		service, _ := projectSetup(t)

		created, err := service.Create(context.Background(), validProject())

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, StatusPlanning, created.Status)
	})

	t.Run("keeps an explicit status", func(t *testing.T) {
		service, _ := projectSetup(t)

		p := validProject()
		p.Status = StatusInProgress
		created, err := service.Create(context.Background(), p)

		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, created.Status)
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		service, _ := projectSetup(t)

		p := validProject()
		p.Name = ""
		_, err := service.Create(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidProject)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		service, _ := projectSetup(t)

		p := validProject()
		p.Status = "abandoned"
		_, err := service.Create(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidProject)
	})

	t.Run("rejects an end date before the start date", func(t *testing.T) {
		service, _ := projectSetup(t)

		p := validProject()
		p.EndDate = p.StartDate.AddDate(0, -1, 0)
		_, err := service.Create(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidProject)
	})
}

func TestServiceImpl_ListForParticipant(t *testing.T) {
	service, _ := projectSetup(t)

	_, err := service.Create(context.Background(), validProject())
	require.NoError(t, err)

	other := validProject()
	other.ClientID = "client-2"
	other.DesignerID = "designer-2"
	_, err = service.Create(context.Background(), other)
	require.NoError(t, err)

	asClient, err := service.ListForParticipant(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Len(t, asClient, 1)

	asDesigner, err := service.ListForParticipant(context.Background(), "designer-2")
	require.NoError(t, err)
	assert.Len(t, asDesigner, 1)

	none, err := service.ListForParticipant(context.Background(), "stranger")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestServiceImpl_UpdateAndDelete(t *testing.T) {
	service, _ := projectSetup(t)

	created, err := service.Create(context.Background(), validProject())
	require.NoError(t, err)

	created.Status = StatusCompleted
	updated, err := service.Update(context.Background(), created)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	_, err = service.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
