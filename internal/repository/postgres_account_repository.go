package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"local-link/internal/database"
)

type PostgresAccountRepository struct {
	db database.DB
}

func NewPostgresAccountRepository(db database.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS accounts (
	id             UUID PRIMARY KEY,
	email          TEXT NOT NULL UNIQUE,
	password_hash  TEXT NOT NULL,
	participant_id UUID NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func (r *PostgresAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM accounts WHERE email = $1`,
		normalizeEmail(email),
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email string) (Account, error) {
	return r.getBy(ctx, `SELECT id, email, password_hash, participant_id FROM accounts WHERE email = $1`, normalizeEmail(email))
}

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	return r.getBy(ctx, `SELECT id, email, password_hash, participant_id FROM accounts WHERE id = $1`, id)
}

func (r *PostgresAccountRepository) Create(ctx context.Context, a Account) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO accounts (id, email, password_hash, participant_id)
VALUES ($1, $2, $3, $4)`,
		a.ID, normalizeEmail(a.Email), a.PasswordHash, a.ParticipantID,
	)
	return err
}

func (r *PostgresAccountRepository) getBy(ctx context.Context, query string, arg any) (Account, error) {
	var a Account
	err := r.db.QueryRow(ctx, query, arg).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.ParticipantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}
