package infra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// undefined_table
const pqUndefinedTable = "42P01"

// AuthRepo reads the admin password from the bot_auth table when a
// database is configured, otherwise it serves the static fallback.
// An empty or missing table also falls back.
type AuthRepo struct {
	db       *sql.DB
	fallback string
}

func NewAuthRepo(db *sql.DB, fallback string) *AuthRepo {
	return &AuthRepo{db: db, fallback: fallback}
}

func (r *AuthRepo) GetPassword(ctx context.Context) (string, error) {
	if r.db == nil {
		return r.fallback, nil
	}

	var password string
	err := r.db.QueryRowContext(
		ctx,
		`SELECT password FROM bot_auth LIMIT 1`,
	).Scan(&password)

	var pqErr *pq.Error
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return r.fallback, nil
	case errors.As(err, &pqErr) && pqErr.Code == pqUndefinedTable:
		return r.fallback, nil
	case err != nil:
		return "", err
	}

	if password == "" {
		return r.fallback, nil
	}
	return password, nil
}
