package pdf

import (
	"context"
)

type PDFService struct {
	ext TextExtractor
}

func NewPDFService(e TextExtractor) *PDFService {
	return &PDFService{ext: e}
}

func (s *PDFService) Extract(ctx context.Context, data []byte) (string, error) {
	return s.ext.ExtractText(ctx, data)
}
