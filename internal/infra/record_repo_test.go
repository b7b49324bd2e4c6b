package infra

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

func TestRecordRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	name := "doc.pdf"
	rec := &ports.Record{
		RequestID:      "req-1",
		Channel:        ports.ChannelWeb,
		Source:         ports.SourceFile,
		FileName:       &name,
		Language:       "French",
		CharCount:      5,
		SourceText:     "Hello",
		TranslatedText: "Bonjour",
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO translations")).
		WithArgs("req-1", "web", "file", "doc.pdf", "French", 5, "Hello", "Bonjour", nil, false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := NewRecordRepo(db).Create(context.Background(), rec)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
	assert.EqualValues(t, 42, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "request_id", "channel", "source", "file_name", "language", "char_count",
		"source_text", "translated_text", "audio_url", "synthesis_failed", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM translations")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "b", "api", "text", nil, "German", 3, "Hey", "Hallo", "https://s3/x", false, now).
			AddRow(1, "a", "telegram", "file", "x.txt", "Korean", 2, "Hi", "안녕", nil, true, now.Add(-time.Hour)))

	recs, err := NewRecordRepo(db).List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "b", recs[0].RequestID)
	assert.Nil(t, recs[0].FileName)
	require.NotNil(t, recs[0].AudioURL)
	assert.Equal(t, "https://s3/x", *recs[0].AudioURL)

	require.NotNil(t, recs[1].FileName)
	assert.Equal(t, "x.txt", *recs[1].FileName)
	assert.True(t, recs[1].SynthesisFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepo_DeleteAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM translations")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, NewRecordRepo(db).DeleteAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepo_FallsBackWithoutDB(t *testing.T) {
	pass, err := NewAuthRepo(nil, "env-pass").GetPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-pass", pass)
}

func TestAuthRepo_ReadsTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT password FROM bot_auth")).
		WillReturnRows(sqlmock.NewRows([]string{"password"}).AddRow("db-pass"))

	pass, err := NewAuthRepo(db, "env-pass").GetPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "db-pass", pass)
}

func TestAuthRepo_MissingTableFallsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT password FROM bot_auth")).
		WillReturnError(&pq.Error{Code: "42P01", Message: `relation "bot_auth" does not exist`})

	pass, err := NewAuthRepo(db, "env-pass").GetPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-pass", pass)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepo_EmptyTableFallsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT password FROM bot_auth")).
		WillReturnRows(sqlmock.NewRows([]string{"password"}))

	pass, err := NewAuthRepo(db, "env-pass").GetPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-pass", pass)
}

func TestAuthRepo_OtherErrorsSurface(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT password FROM bot_auth")).WillReturnError(boom)

	pass, err := NewAuthRepo(db, "env-pass").GetPassword(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, pass)
}

func TestEnsureSchema_CreatesAuthTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS translations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS bot_auth")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://s3.example.com/audio/translations/2024-01-01/id_translation%20%28x%29.mp3",
		buildPublicURL("https://s3.example.com", "audio", "translations/2024-01-01/id_translation (x).mp3"))
}
