package domain

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

type s3Service struct {
	client ports.S3Client
	now    func() time.Time
}

func NewS3Service(client ports.S3Client) ports.S3Service {
	return &s3Service{client: client, now: time.Now}
}

// ObjectKey: translations/<date>/<requestID>_<file>
func (s *s3Service) ObjectKey(at time.Time, requestID, filename string) string {
	date := at.UTC().Format("2006-01-02")
	clean := filepath.Base(filename)
	return fmt.Sprintf("translations/%s/%s_%s", date, requestID, clean)
}

func (s *s3Service) SaveAudio(ctx context.Context, requestID, filename string, audio []byte) (string, error) {
	if requestID == "" {
		return "", fmt.Errorf("requestID required")
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("no audio to save")
	}

	key := s.ObjectKey(s.now(), requestID, filename)
	return s.client.PutObject(ctx, key, bytes.NewReader(audio), int64(len(audio)), ports.AudioMIME)
}
