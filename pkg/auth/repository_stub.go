package auth

import "context"

type stubEntry struct {
	credentials  Credentials
	passwordHash string
}

type StubRepository struct {
	data map[string]stubEntry
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]stubEntry{}}
}

func stubKey(email, role string) string {
	return email + "|" + role
}

func (s *StubRepository) Store(ctx context.Context, credentials Credentials, passwordHash string) error {
	s.data[stubKey(credentials.Email, credentials.Role)] = stubEntry{credentials, passwordHash}
	return nil
}

func (s *StubRepository) Find(ctx context.Context, email, role string) (Credentials, string, error) {
	entry, ok := s.data[stubKey(email, role)]
	if !ok {
		return Credentials{}, "", ErrInvalidCredentials
	}
	return entry.credentials, entry.passwordHash, nil
}

func (s *StubRepository) UpdatePassword(ctx context.Context, email, role, passwordHash string) error {
	key := stubKey(email, role)
	entry, ok := s.data[key]
	if !ok {
		return ErrInvalidCredentials
	}
	entry.passwordHash = passwordHash
	s.data[key] = entry
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, userUid string) error {
	for key, entry := range s.data {
		if entry.credentials.UserUid == userUid {
			delete(s.data, key)
		}
	}
	return nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]stubEntry{}
}
