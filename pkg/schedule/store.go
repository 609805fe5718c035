package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Store is the per-session appointment snapshot. Mutations are applied to the
// local snapshot first and forwarded to the persistence collaborator; when the
// collaborator call fails the snapshot is rolled back to its pre-operation
// value, so the session never diverges from confirmed server state.
//
// The snapshot keeps insertion order, which is the order the calendar view
// engine relies on for stable cell placement.
type Store struct {
	mu       sync.Mutex
	remote   Repository
	ownerId  int
	items    []Appointment
	hydrated bool
	subs     map[int]func()
	nextSub  int
}

func NewStore(remote Repository, ownerId int) *Store {
	return &Store{
		remote:  remote,
		ownerId: ownerId,
		subs:    map[int]func(){},
	}
}

// Hydrate loads the snapshot from the collaborator. It is called once at
// session start; later calls refresh the snapshot in place.
func (s *Store) Hydrate(ctx context.Context) error {
	appointments, err := s.remote.ListByOwner(ctx, s.ownerId)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	s.mu.Lock()
	s.items = appointments
	s.hydrated = true
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Create validates the appointment, assigns an id when absent, appends it to
// the snapshot, and forwards it to the collaborator. On collaborator failure
// the append is rolled back and ErrRemoteUnavailable is surfaced.
func (s *Store) Create(ctx context.Context, appointment Appointment) (Appointment, error) {
	if err := appointment.Validate(); err != nil {
		return Appointment{}, err
	}
	if appointment.ID == "" {
		appointment.ID = uuid.NewString()
	}
	if appointment.Status == "" {
		appointment.Status = StatusScheduled
	}
	appointment.OwnerID = s.ownerId

	s.mu.Lock()
	s.items = append(s.items, appointment)
	s.mu.Unlock()

	if err := s.remote.Store(ctx, s.ownerId, appointment); err != nil {
		s.mu.Lock()
		s.removeLocked(appointment.ID)
		s.mu.Unlock()
		log.Errorf("rolled back local create of appointment %s: %v", appointment.ID, err)
		return Appointment{}, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	s.notify()
	return appointment, nil
}

// Update applies the patch to the identified appointment and forwards the
// result. The previous value is restored when the collaborator call fails.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (Appointment, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return Appointment{}, ErrNotFound
	}
	previous := s.items[idx]
	updated := patch.Apply(previous)
	if err := updated.Validate(); err != nil {
		s.mu.Unlock()
		return Appointment{}, err
	}
	s.items[idx] = updated
	s.mu.Unlock()

	if err := s.remote.Update(ctx, s.ownerId, updated); err != nil {
		s.mu.Lock()
		if i := s.indexLocked(id); i >= 0 {
			s.items[i] = previous
		}
		s.mu.Unlock()
		log.Errorf("rolled back local update of appointment %s: %v", id, err)
		return Appointment{}, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	s.notify()
	return updated, nil
}

// Delete removes the appointment locally only after the collaborator confirms
// the deletion. On failure the item is retained.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.indexLocked(id) < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.mu.Unlock()

	if err := s.remote.Delete(ctx, s.ownerId, id); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Store) Get(id string) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], nil
	}
	return Appointment{}, ErrNotFound
}

// List returns a copy of the snapshot in insertion order.
func (s *Store) List() []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	appointments := make([]Appointment, len(s.items))
	copy(appointments, s.items)
	return appointments
}

// Upcoming returns a copy of the snapshot sorted ascending by start time,
// used for the flat "upcoming appointments" presentation.
func (s *Store) Upcoming() []Appointment {
	return SortedByStart(s.List())
}

// SortedByStart sorts appointments ascending by start time, keeping the
// incoming order for equal timestamps.
func SortedByStart(appointments []Appointment) []Appointment {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].StartTime.Before(appointments[j].StartTime)
	})
	return appointments
}

// Subscribe registers a callback invoked after every confirmed mutation.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	callbacks := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

func (s *Store) indexLocked(id string) int {
	for i, a := range s.items {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(id string) {
	if idx := s.indexLocked(id); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
}
