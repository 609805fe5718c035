package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwnerId = 10

func storeSetup(t *testing.T) (*Store, *StubRepository) {
	repo := NewStubRepository()
	store := NewStore(repo, testOwnerId)
	require.NoError(t, store.Hydrate(context.Background()))
	t.Cleanup(repo.Cleanup)
	return store, repo
}

func validAppointment(title string) Appointment {
	return Appointment{
		Title:     title,
		StartTime: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestStore_Create(t *testing.T) {
	t.Run("assigns id, default status and owner", func(t *testing.T) {
		store, repo := storeSetup(t)

		created, err := store.Create(context.Background(), validAppointment("Site visit"))

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, StatusScheduled, created.Status)
		assert.Equal(t, testOwnerId, created.OwnerID)

		persisted, err := repo.Get(context.Background(), testOwnerId, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Site visit", persisted.Title)
	})

	t.Run("rejects invalid appointments before touching the snapshot", func(t *testing.T) {
		store, _ := storeSetup(t)

		invalid := validAppointment("Backwards")
		invalid.StartTime, invalid.EndTime = invalid.EndTime, invalid.StartTime

		_, err := store.Create(context.Background(), invalid)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, store.List())
	})

	t.Run("rejects missing title", func(t *testing.T) {
		store, _ := storeSetup(t)

		invalid := validAppointment("")
		_, err := store.Create(context.Background(), invalid)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rolls back the local append when persistence fails", func(t *testing.T) {
		store, repo := storeSetup(t)

		repo.FailNext = errStubFailure
		_, err := store.Create(context.Background(), validAppointment("Doomed"))

		assert.ErrorIs(t, err, ErrRemoteUnavailable)
		assert.Empty(t, store.List())
	})
}

func TestStore_Update(t *testing.T) {
	t.Run("applies a partial patch and persists it", func(t *testing.T) {
		store, repo := storeSetup(t)
		created, err := store.Create(context.Background(), validAppointment("Original"))
		require.NoError(t, err)

		title := "Renamed"
		updated, err := store.Update(context.Background(), created.ID, Patch{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, created.StartTime, updated.StartTime)

		persisted, err := repo.Get(context.Background(), testOwnerId, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", persisted.Title)
	})

	t.Run("restores the previous value when persistence fails", func(t *testing.T) {
		store, repo := storeSetup(t)
		created, err := store.Create(context.Background(), validAppointment("Original"))
		require.NoError(t, err)

		title := "Renamed"
		repo.FailNext = errStubFailure
		_, err = store.Update(context.Background(), created.ID, Patch{Title: &title})

		assert.ErrorIs(t, err, ErrRemoteUnavailable)
		current, err := store.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Original", current.Title)
	})

	t.Run("rejects patches producing an invalid appointment", func(t *testing.T) {
		store, _ := storeSetup(t)
		created, err := store.Create(context.Background(), validAppointment("Original"))
		require.NoError(t, err)

		badEnd := created.StartTime.Add(-time.Hour)
		_, err = store.Update(context.Background(), created.ID, Patch{EndTime: &badEnd})

		assert.ErrorIs(t, err, ErrValidation)
		current, _ := store.Get(created.ID)
		assert.Equal(t, created.EndTime, current.EndTime)
	})

	t.Run("returns not found for unknown ids", func(t *testing.T) {
		store, _ := storeSetup(t)

		title := "Whatever"
		_, err := store.Update(context.Background(), "missing", Patch{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_Delete(t *testing.T) {
	t.Run("removes locally only after the collaborator confirms", func(t *testing.T) {
		store, _ := storeSetup(t)
		created, err := store.Create(context.Background(), validAppointment("Short-lived"))
		require.NoError(t, err)

		require.NoError(t, store.Delete(context.Background(), created.ID))
		assert.Empty(t, store.List())
	})

	t.Run("keeps the item when persistence fails", func(t *testing.T) {
		store, repo := storeSetup(t)
		created, err := store.Create(context.Background(), validAppointment("Survivor"))
		require.NoError(t, err)

		repo.FailNext = errStubFailure
		err = store.Delete(context.Background(), created.ID)

		assert.ErrorIs(t, err, ErrRemoteUnavailable)
		assert.Len(t, store.List(), 1)
	})

	t.Run("returns not found for unknown ids", func(t *testing.T) {
		store, _ := storeSetup(t)
		assert.ErrorIs(t, store.Delete(context.Background(), "missing"), ErrNotFound)
	})
}

func TestStore_Ordering(t *testing.T) {
	t.Run("list keeps insertion order", func(t *testing.T) {
		store, _ := storeSetup(t)

		later := validAppointment("Later")
		later.StartTime = later.StartTime.Add(6 * time.Hour)
		later.EndTime = later.EndTime.Add(6 * time.Hour)
		_, err := store.Create(context.Background(), later)
		require.NoError(t, err)
		_, err = store.Create(context.Background(), validAppointment("Earlier"))
		require.NoError(t, err)

		list := store.List()
		require.Len(t, list, 2)
		assert.Equal(t, "Later", list[0].Title)
		assert.Equal(t, "Earlier", list[1].Title)
	})

	t.Run("upcoming sorts by start time without touching the snapshot", func(t *testing.T) {
		store, _ := storeSetup(t)

		later := validAppointment("Later")
		later.StartTime = later.StartTime.Add(6 * time.Hour)
		later.EndTime = later.EndTime.Add(6 * time.Hour)
		_, err := store.Create(context.Background(), later)
		require.NoError(t, err)
		_, err = store.Create(context.Background(), validAppointment("Earlier"))
		require.NoError(t, err)

		upcoming := store.Upcoming()
		require.Len(t, upcoming, 2)
		assert.Equal(t, "Earlier", upcoming[0].Title)
		assert.Equal(t, "Later", upcoming[1].Title)

		list := store.List()
		assert.Equal(t, "Later", list[0].Title)
	})
}

func TestStore_Subscribe(t *testing.T) {
	store, _ := storeSetup(t)

	notified := 0
	unsubscribe := store.Subscribe(func() { notified++ })

	created, err := store.Create(context.Background(), validAppointment("Watched"))
	require.NoError(t, err)
	assert.Equal(t, 1, notified)

	require.NoError(t, store.Delete(context.Background(), created.ID))
	assert.Equal(t, 2, notified)

	unsubscribe()
	_, err = store.Create(context.Background(), validAppointment("Unwatched"))
	require.NoError(t, err)
	assert.Equal(t, 2, notified)
}
