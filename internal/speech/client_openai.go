package speech

import (
	"context"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAITTS detects the language from the input text.
type OpenAITTS struct {
	client *openai.Client
	voice  openai.SpeechVoice
}

func NewOpenAITTS(apiKey string) *OpenAITTS {
	return NewOpenAITTSWithConfig(openai.DefaultConfig(apiKey))
}

func NewOpenAITTSWithConfig(cfg openai.ClientConfig) *OpenAITTS {
	return &OpenAITTS{
		client: openai.NewClientWithConfig(cfg),
		voice:  openai.VoiceAlloy,
	}
}

func (t *OpenAITTS) Name() string { return "openai" }

func (t *OpenAITTS) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	resp, err := t.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          t.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          1.0,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	return io.ReadAll(resp)
}
