package infra

import (
	"context"
	"database/sql"
	"time"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

const recordsSchema = `
CREATE TABLE IF NOT EXISTS translations (
	id               BIGSERIAL PRIMARY KEY,
	request_id       TEXT        NOT NULL,
	channel          TEXT        NOT NULL,
	source           TEXT        NOT NULL,
	file_name        TEXT,
	language         TEXT        NOT NULL,
	char_count       INTEGER     NOT NULL,
	source_text      TEXT        NOT NULL,
	translated_text  TEXT        NOT NULL,
	audio_url        TEXT,
	synthesis_failed BOOLEAN     NOT NULL DEFAULT FALSE,
	created_at       TIMESTAMPTZ NOT NULL
)`

const authSchema = `
CREATE TABLE IF NOT EXISTS bot_auth (
	password TEXT NOT NULL
)`

type recordRepo struct {
	db *sql.DB
}

func NewRecordRepo(db *sql.DB) ports.RecordRepo {
	return &recordRepo{db: db}
}

// EnsureSchema creates the history and admin password tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{recordsSchema, authSchema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *recordRepo) Create(ctx context.Context, rec *ports.Record) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO translations
			(request_id, channel, source, file_name, language, char_count,
			 source_text, translated_text, audio_url, synthesis_failed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`,
		rec.RequestID, rec.Channel, rec.Source, rec.FileName, rec.Language, rec.CharCount,
		rec.SourceText, rec.TranslatedText, rec.AudioURL, rec.SynthesisFailed, rec.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	rec.ID = id
	return id, nil
}

func (r *recordRepo) List(ctx context.Context, limit int) ([]ports.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, request_id, channel, source, file_name, language, char_count,
		       source_text, translated_text, audio_url, synthesis_failed, created_at
		FROM translations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ports.Record
	for rows.Next() {
		var rec ports.Record
		if err := rows.Scan(
			&rec.ID,
			&rec.RequestID,
			&rec.Channel,
			&rec.Source,
			&rec.FileName,
			&rec.Language,
			&rec.CharCount,
			&rec.SourceText,
			&rec.TranslatedText,
			&rec.AudioURL,
			&rec.SynthesisFailed,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM translations`)
	return err
}
