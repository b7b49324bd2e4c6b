package ports

import "context"

type RecordService interface {
	Add(ctx context.Context, rec *Record) (int64, error)
	List(ctx context.Context, limit int) ([]Record, error)
	DeleteAll(ctx context.Context) error
}
