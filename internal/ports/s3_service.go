package ports

import (
	"context"
	"io"
	"time"
)

// S3Client stores objects and returns their public URL.
type S3Client interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// S3Service archives synthesized audio.
type S3Service interface {
	ObjectKey(at time.Time, requestID, filename string) string
	SaveAudio(ctx context.Context, requestID, filename string, audio []byte) (string, error)
}
