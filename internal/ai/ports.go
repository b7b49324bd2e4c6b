package ai

import "context"

type Message struct {
	Role    string
	Content string
}

// CompletionClient is one chat-completion backend.
type CompletionClient interface {
	Name() string
	GetCompletion(ctx context.Context, messages []Message, temperature float32) (string, error)
}

type Service interface {
	// Translate returns the model's answer verbatim.
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}
