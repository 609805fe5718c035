package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, project Project) error
	Get(ctx context.Context, id string) (Project, error)
	ListForParticipant(ctx context.Context, participantUid string) ([]Project, error)
	Update(ctx context.Context, project Project) error
	Delete(ctx context.Context, id string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const projectColumns = `id, name, description, client_id, designer_id, status, budget, start_date, end_date`

func (r *RepositoryImpl) Store(ctx context.Context, project Project) error {
	query := `INSERT INTO project (` + projectColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.ClientID,
		project.DesignerID,
		string(project.Status),
		project.Budget,
		millisOrZero(project.StartDate),
		millisOrZero(project.EndDate),
	)
	if err != nil {
		err := fmt.Errorf("could not store project: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id string) (Project, error) {
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM project WHERE id = $1`, id)
	project, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return project, err
}

func (r *RepositoryImpl) ListForParticipant(ctx context.Context, participantUid string) ([]Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project WHERE client_id = $1 OR designer_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, participantUid)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	projects := make([]Project, 0, 8)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			log.Errorf("could not scan project row: %v", err)
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, project Project) error {
	query := `UPDATE project SET name = $1, description = $2, status = $3, budget = $4, start_date = $5, end_date = $6
              WHERE id = $7`
	tag, err := r.db.Exec(ctx, query,
		project.Name,
		project.Description,
		string(project.Status),
		project.Budget,
		millisOrZero(project.StartDate),
		millisOrZero(project.EndDate),
		project.ID,
	)
	if err != nil {
		log.Errorf("could not update project %s: %v", project.ID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM project WHERE id = $1`, id)
	if err != nil {
		log.Errorf("could not delete project %s: %v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (Project, error) {
	var project Project
	var status string
	var startMillis, endMillis int64
	err := row.Scan(&project.ID, &project.Name, &project.Description, &project.ClientID, &project.DesignerID,
		&status, &project.Budget, &startMillis, &endMillis)
	if err != nil {
		return Project{}, err
	}
	project.Status = Status(status)
	if startMillis != 0 {
		project.StartDate = time.UnixMilli(startMillis)
	}
	if endMillis != 0 {
		project.EndDate = time.UnixMilli(endMillis)
	}
	return project, nil
}

func millisOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
