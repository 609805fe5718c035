package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/decorra/decorra/internal/event_bus"
	"github.com/decorra/decorra/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Appointment, error)
	Upcoming(ctx context.Context) ([]Appointment, error)
	ListForOwner(ctx context.Context, ownerId int) ([]Appointment, error)
	Create(ctx context.Context, appointment Appointment) (Appointment, error)
	Update(ctx context.Context, id string, patch Patch) (Appointment, error)
	Delete(ctx context.Context, id string) error
}

// ServiceImpl keeps one session Store per owner, hydrated lazily from the
// repository. All mutations go through the store so the optimistic-update and
// rollback discipline applies on every path.
type ServiceImpl struct {
	repo Repository
	bus  *event_bus.EventBus

	mu     sync.Mutex
	stores map[int]*Store
}

func NewService(repo Repository, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		bus:    bus,
		stores: map[int]*Store{},
	}
}

func (s *ServiceImpl) sessionStore(ctx context.Context) (*Store, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	s.mu.Lock()
	store, ok := s.stores[userId]
	if !ok {
		store = NewStore(s.repo, userId)
		s.stores[userId] = store
	}
	s.mu.Unlock()

	if !store.Hydrated() {
		if err := store.Hydrate(ctx); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Appointment, error) {
	store, err := s.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	return store.List(), nil
}

func (s *ServiceImpl) Upcoming(ctx context.Context) ([]Appointment, error) {
	store, err := s.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	return store.Upcoming(), nil
}

// ListForOwner reads directly from the repository, bypassing session state.
// It is used by background jobs that run outside of a user session.
func (s *ServiceImpl) ListForOwner(ctx context.Context, ownerId int) ([]Appointment, error) {
	return s.repo.ListByOwner(ctx, ownerId)
}

func (s *ServiceImpl) Create(ctx context.Context, appointment Appointment) (Appointment, error) {
	store, err := s.sessionStore(ctx)
	if err != nil {
		return Appointment{}, err
	}
	created, err := store.Create(ctx, appointment)
	if err != nil {
		return Appointment{}, err
	}
	s.publish(ctx, event_bus.AppointmentCreated, created)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id string, patch Patch) (Appointment, error) {
	store, err := s.sessionStore(ctx)
	if err != nil {
		return Appointment{}, err
	}
	updated, err := store.Update(ctx, id, patch)
	if err != nil {
		return Appointment{}, err
	}
	s.publish(ctx, event_bus.AppointmentUpdated, updated)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	store, err := s.sessionStore(ctx)
	if err != nil {
		return err
	}
	deleted, err := store.Get(id)
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, event_bus.AppointmentDeleted, deleted)
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, appointment Appointment) {
	if s.bus == nil {
		return
	}
	err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.AppointmentChanged{
		ID:        appointment.ID,
		OwnerID:   appointment.OwnerID,
		Title:     appointment.Title,
		StartTime: appointment.StartTime,
		EndTime:   appointment.EndTime,
		Status:    string(appointment.Status),
	}))
	if err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
