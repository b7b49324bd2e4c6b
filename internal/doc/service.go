package doc

import "context"

type Service struct {
	ext TextExtractor
}

func NewService(ext TextExtractor) *Service {
	return &Service{ext: ext}
}

func (s *Service) Extract(ctx context.Context, data []byte) (string, error) {
	return s.ext.ExtractText(ctx, data)
}
