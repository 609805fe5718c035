package project

import "context"

type StubRepository struct {
	data map[string]Project
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]Project{}}
}

func (s *StubRepository) Store(ctx context.Context, project Project) error {
	s.data[project.ID] = project
	return nil
}

func (s *StubRepository) Get(ctx context.Context, id string) (Project, error) {
	project, ok := s.data[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	return project, nil
}

func (s *StubRepository) ListForParticipant(ctx context.Context, participantUid string) ([]Project, error) {
	projects := make([]Project, 0, len(s.data))
	for _, project := range s.data {
		if project.ClientID == participantUid || project.DesignerID == participantUid {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (s *StubRepository) Update(ctx context.Context, project Project) error {
	if _, ok := s.data[project.ID]; !ok {
		return ErrNotFound
	}
	s.data[project.ID] = project
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, id string) error {
	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]Project{}
}
