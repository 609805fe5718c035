package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Repository is the persistence collaborator for appointments. The session
// Store forwards every mutation here and rolls its snapshot back when a call
// fails.
type Repository interface {
	ListByOwner(ctx context.Context, ownerId int) ([]Appointment, error)
	Get(ctx context.Context, ownerId int, id string) (Appointment, error)
	Store(ctx context.Context, ownerId int, appointment Appointment) error
	Update(ctx context.Context, ownerId int, appointment Appointment) error
	Delete(ctx context.Context, ownerId int, id string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListByOwner(ctx context.Context, ownerId int) ([]Appointment, error) {
	query := `SELECT id, title, description, start_time, end_time, location, status, client_id, project_id, designer_id
              FROM appointment
              WHERE owner_id = $1
              ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, ownerId)
	if err != nil {
		err := fmt.Errorf("could not query appointments: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	appointments := make([]Appointment, 0, 16)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			log.Errorf("could not scan appointment row: %v", err)
			return nil, err
		}
		appointment.OwnerID = ownerId
		appointments = append(appointments, appointment)
	}
	return appointments, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, ownerId int, id string) (Appointment, error) {
	query := `SELECT id, title, description, start_time, end_time, location, status, client_id, project_id, designer_id
              FROM appointment
              WHERE owner_id = $1 AND id = $2`
	row := r.db.QueryRow(ctx, query, ownerId, id)
	appointment, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Appointment{}, ErrNotFound
	} else if err != nil {
		log.Errorf("failed to get appointment %s: %v", id, err)
		return Appointment{}, err
	}
	appointment.OwnerID = ownerId
	return appointment, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, ownerId int, appointment Appointment) error {
	query := `INSERT INTO appointment (id, owner_id, title, description, start_time, end_time, location, status,
				client_id, project_id, designer_id, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		appointment.ID,
		ownerId,
		appointment.Title,
		appointment.Description,
		appointment.StartTime.UnixMilli(),
		appointment.EndTime.UnixMilli(),
		appointment.Location,
		string(appointment.Status),
		appointment.ClientID,
		appointment.ProjectID,
		appointment.DesignerID,
		time.Now().UnixMilli(),
	)
	if err != nil {
		err := fmt.Errorf("could not store appointment: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Update(ctx context.Context, ownerId int, appointment Appointment) error {
	query := `UPDATE appointment
              SET title = $1, description = $2, start_time = $3, end_time = $4, location = $5, status = $6,
                  client_id = $7, project_id = $8
              WHERE owner_id = $9 AND id = $10`
	tag, err := r.db.Exec(ctx, query,
		appointment.Title,
		appointment.Description,
		appointment.StartTime.UnixMilli(),
		appointment.EndTime.UnixMilli(),
		appointment.Location,
		string(appointment.Status),
		appointment.ClientID,
		appointment.ProjectID,
		ownerId,
		appointment.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not update appointment: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, ownerId int, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointment WHERE owner_id = $1 AND id = $2`, ownerId, id)
	if err != nil {
		err := fmt.Errorf("could not delete appointment: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAppointment(row pgx.Row) (Appointment, error) {
	var a Appointment
	var startMillis, endMillis int64
	var status string
	err := row.Scan(&a.ID, &a.Title, &a.Description, &startMillis, &endMillis, &a.Location, &status,
		&a.ClientID, &a.ProjectID, &a.DesignerID)
	if err != nil {
		return Appointment{}, err
	}
	a.StartTime = time.UnixMilli(startMillis)
	a.EndTime = time.UnixMilli(endMillis)
	a.Status = Status(status)
	return a, nil
}
