package speech

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

type Service struct {
	tts TTSClient
	log *logger.ZapLogger
}

func NewService(tts TTSClient, log *logger.ZapLogger) *Service {
	return &Service{tts: tts, log: log}
}

// Synthesize never falls back to another voice or language: any failure,
// including an empty body, is a SynthesisError.
func (s *Service) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	audio, err := s.tts.Synthesize(ctx, text, langCode)
	if err == nil && len(audio) == 0 {
		err = errors.New("empty audio")
	}
	if err != nil {
		return nil, &ports.SynthesisError{Provider: s.tts.Name(), Lang: langCode, Err: err}
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[speech] %s synthesized %s lang=%s", s.tts.Name(), humanize.Bytes(uint64(len(audio))), langCode),
		Service: "speech",
	})
	return audio, nil
}
