package domain

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/magic_translator/internal/error_notificator"
	"github.com/Vovarama1992/magic_translator/internal/ports"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type recordService struct {
	repo     ports.RecordRepo
	notifier error_notificator.Notificator
}

func NewRecordService(repo ports.RecordRepo, n error_notificator.Notificator) ports.RecordService {
	return &recordService{
		repo:     repo,
		notifier: n,
	}
}

func (s *recordService) Add(ctx context.Context, rec *ports.Record) (int64, error) {
	id, err := s.repo.Create(ctx, rec)
	if err != nil {
		if s.notifier != nil {
			_ = s.notifier.Notify(ctx, err,
				fmt.Sprintf("failed to store translation history: request=%s", rec.RequestID))
		}
		return 0, err
	}
	return id, nil
}

func (s *recordService) List(ctx context.Context, limit int) ([]ports.Record, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.repo.List(ctx, limit)
}

func (s *recordService) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
