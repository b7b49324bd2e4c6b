package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

type memRepo struct {
	createErr error
	lastLimit int
	recs      []ports.Record
}

func (m *memRepo) Create(ctx context.Context, rec *ports.Record) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.recs = append(m.recs, *rec)
	return int64(len(m.recs)), nil
}

func (m *memRepo) List(ctx context.Context, limit int) ([]ports.Record, error) {
	m.lastLimit = limit
	return m.recs, nil
}

func (m *memRepo) DeleteAll(ctx context.Context) error {
	m.recs = nil
	return nil
}

func TestRecordService_ClampsLimit(t *testing.T) {
	repo := &memRepo{}
	svc := NewRecordService(repo, nil)
	ctx := context.Background()

	_, _ = svc.List(ctx, 0)
	assert.Equal(t, DefaultHistoryLimit, repo.lastLimit)
	_, _ = svc.List(ctx, 10_000)
	assert.Equal(t, MaxHistoryLimit, repo.lastLimit)
	_, _ = svc.List(ctx, 7)
	assert.Equal(t, 7, repo.lastLimit)
}

func TestRecordService_NotifiesOnFailure(t *testing.T) {
	n := &stubNotifier{}
	svc := NewRecordService(&memRepo{createErr: errors.New("conn refused")}, n)

	_, err := svc.Add(context.Background(), &ports.Record{RequestID: "r1"})
	require.Error(t, err)
	require.Len(t, n.details, 1)
	assert.Contains(t, n.details[0], "r1")
}
