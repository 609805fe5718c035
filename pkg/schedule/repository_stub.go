package schedule

import (
	"context"
	"errors"
)

// StubRepository is an in-memory Repository used by tests. FailNext makes the
// next call return an error, which is how the rollback paths are exercised.
type StubRepository struct {
	data     map[int][]Appointment
	FailNext error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int][]Appointment{}}
}

func (s *StubRepository) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *StubRepository) ListByOwner(ctx context.Context, ownerId int) ([]Appointment, error) {
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	appointments := make([]Appointment, len(s.data[ownerId]))
	copy(appointments, s.data[ownerId])
	return appointments, nil
}

func (s *StubRepository) Get(ctx context.Context, ownerId int, id string) (Appointment, error) {
	if err := s.takeFailure(); err != nil {
		return Appointment{}, err
	}
	for _, a := range s.data[ownerId] {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, ErrNotFound
}

func (s *StubRepository) Store(ctx context.Context, ownerId int, appointment Appointment) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	appointment.OwnerID = ownerId
	s.data[ownerId] = append(s.data[ownerId], appointment)
	return nil
}

func (s *StubRepository) Update(ctx context.Context, ownerId int, appointment Appointment) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	for i, a := range s.data[ownerId] {
		if a.ID == appointment.ID {
			appointment.OwnerID = ownerId
			s.data[ownerId][i] = appointment
			return nil
		}
	}
	return ErrNotFound
}

func (s *StubRepository) Delete(ctx context.Context, ownerId int, id string) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	for i, a := range s.data[ownerId] {
		if a.ID == id {
			s.data[ownerId] = append(s.data[ownerId][:i], s.data[ownerId][i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *StubRepository) Cleanup() {
	s.data = map[int][]Appointment{}
	s.FailNext = nil
}

var errStubFailure = errors.New("stub failure")
