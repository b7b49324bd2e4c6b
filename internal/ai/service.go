package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/magic_translator/internal/error_notificator"
	"github.com/Vovarama1992/magic_translator/internal/ports"
)

const (
	SystemPrompt = "You are a professional translator. Translate the given text accurately to the target language. Only provide the translation, no explanations."

	Temperature float32 = 0.3

	DefaultTimeout = 120 * time.Second
)

type TranslateService struct {
	client   CompletionClient
	timeout  time.Duration
	notifier error_notificator.Notificator
	log      *logger.ZapLogger
}

func NewTranslateService(
	client CompletionClient,
	timeout time.Duration,
	notifier error_notificator.Notificator,
	log *logger.ZapLogger,
) *TranslateService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TranslateService{
		client:   client,
		timeout:  timeout,
		notifier: notifier,
		log:      log,
	}
}

// BuildMessages is the fixed two-message prompt.
func BuildMessages(text, targetLanguage string) []Message {
	return []Message{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Translate this text to %s:\n\n%s", targetLanguage, text)},
	}
}

// diagnose turns provider status codes into a hint for the admin report
func diagnose(err error) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "status code: 401"):
		return "Invalid API key."
	case strings.Contains(msg, "status code: 404"):
		return "Model not found."
	case strings.Contains(msg, "status code: 429"):
		return "Rate limit exceeded."
	case strings.Contains(msg, "status code: 400"):
		return "Bad request."
	case strings.Contains(msg, "status code: 500"):
		return "Provider internal error."
	case strings.Contains(msg, "deadline exceeded"):
		return "Request timed out."
	}
	return "Unknown error."
}

func (s *TranslateService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	start := time.Now()

	ctxGPT, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.client.GetCompletion(ctxGPT, BuildMessages(text, targetLanguage), Temperature)
	if err != nil {
		terr := &ports.TranslationError{Provider: s.client.Name(), Err: err}
		if s.notifier != nil {
			_ = s.notifier.Notify(ctx, terr,
				fmt.Sprintf("Translation failed\nProvider: %s\nLanguage: %s\nChars: %d\n%s",
					s.client.Name(), targetLanguage, len([]rune(text)), diagnose(err)))
		}
		return "", terr
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[ai][%.1fs] translated to %s via %s", time.Since(start).Seconds(), targetLanguage, s.client.Name()),
		Service: "ai",
	})

	return reply, nil
}
