package error_notificator

import (
	"context"

	"github.com/Vovarama1992/go-utils/logger"
)

// Service logs every report and forwards it to the admin channel when one
// is configured.
type Service struct {
	infra Notificator
	log   *logger.ZapLogger
}

func NewService(infra Notificator, log *logger.ZapLogger) *Service {
	return &Service{infra: infra, log: log}
}

func (s *Service) Notify(ctx context.Context, err error, details string) error {
	s.log.Log(logger.LogEntry{
		Level:   "error",
		Message: details,
		Service: "error_notificator",
		Error:   err,
	})

	if s.infra == nil {
		return nil
	}
	return s.infra.Notify(ctx, err, details)
}
