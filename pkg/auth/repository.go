package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, credentials Credentials, passwordHash string) error
	Find(ctx context.Context, email, role string) (Credentials, string, error)
	UpdatePassword(ctx context.Context, email, role, passwordHash string) error
	Delete(ctx context.Context, userUid string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, credentials Credentials, passwordHash string) error {
	query := `INSERT INTO credentials (email, role, user_uid, password_hash) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, credentials.Email, credentials.Role, credentials.UserUid, passwordHash)
	if err != nil {
		err := fmt.Errorf("could not store credentials: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Find(ctx context.Context, email, role string) (Credentials, string, error) {
	query := `SELECT email, role, user_uid, password_hash FROM credentials WHERE email = $1 AND role = $2`
	var credentials Credentials
	var passwordHash string
	err := r.db.QueryRow(ctx, query, email, role).
		Scan(&credentials.Email, &credentials.Role, &credentials.UserUid, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, "", ErrInvalidCredentials
	} else if err != nil {
		log.Errorf("failed to find credentials: %v", err)
		return Credentials{}, "", err
	}
	return credentials, passwordHash, nil
}

func (r *RepositoryImpl) UpdatePassword(ctx context.Context, email, role, passwordHash string) error {
	query := `UPDATE credentials SET password_hash = $1 WHERE email = $2 AND role = $3`
	tag, err := r.db.Exec(ctx, query, passwordHash, email, role)
	if err != nil {
		log.Errorf("failed to update password: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidCredentials
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userUid string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM credentials WHERE user_uid = $1`, userUid)
	if err != nil {
		log.Errorf("failed to delete credentials for user %s: %v", userUid, err)
	}
	return err
}
