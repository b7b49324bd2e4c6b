package ports

import (
	"context"
	"time"
)

// DTO for translation history
type Record struct {
	ID              int64     `json:"id"`
	RequestID       string    `json:"request_id"`
	Channel         string    `json:"channel"` // web | api | telegram
	Source          string    `json:"source"`  // text | file
	FileName        *string   `json:"file_name,omitempty"`
	Language        string    `json:"language"`
	CharCount       int       `json:"char_count"`
	SourceText      string    `json:"source_text"`
	TranslatedText  string    `json:"translated_text"`
	AudioURL        *string   `json:"audio_url,omitempty"`
	SynthesisFailed bool      `json:"synthesis_failed"`
	CreatedAt       time.Time `json:"created_at"`
}

// Postgres repository
type RecordRepo interface {
	Create(ctx context.Context, rec *Record) (int64, error)
	List(ctx context.Context, limit int) ([]Record, error)
	DeleteAll(ctx context.Context) error
}
