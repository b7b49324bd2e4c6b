package speech

import "context"

// TTSClient turns text into MP3 bytes.
type TTSClient interface {
	Name() string
	Synthesize(ctx context.Context, text, langCode string) ([]byte, error)
}
