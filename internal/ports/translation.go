package ports

import (
	"context"

	"github.com/Vovarama1992/magic_translator/internal/languages"
)

const (
	SourceText = "text"
	SourceFile = "file"

	ChannelWeb      = "web"
	ChannelAPI      = "api"
	ChannelTelegram = "telegram"

	AudioMIME = "audio/mp3"

	// above this the UI warns that translation may take a while
	LongTextThreshold = 5000
)

// TranslationRequest is everything one user action submits.
type TranslationRequest struct {
	Text     string
	Source   string
	FileName string
	Channel  string
	Language languages.Language
}

type TranslationResult struct {
	RequestID     string
	Original      string
	Translated    string
	Language      languages.Language
	CharCount     int
	LongText      bool
	Audio         []byte
	AudioFileName string
	AudioMIME     string
	AudioURL      string

	// set when synthesis failed; the translation is still valid
	SynthesisErr error
}

func (r TranslationResult) HasAudio() bool {
	return len(r.Audio) > 0
}

type TranslationService interface {
	Run(ctx context.Context, req TranslationRequest) (TranslationResult, error)
}
