package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	elevenLabsURL   = "https://api.elevenlabs.io"
	elevenLabsModel = "eleven_multilingual_v2"

	DefaultElevenLabsVoice = "EXAVITQu4vr4xnSDxMaL" // Rachel
)

// ElevenLabsClient uses the multilingual model, which picks the language from
// the text itself; the language code is not sent.
type ElevenLabsClient struct {
	apiKey  string
	voiceID string
	baseURL string
	httpCli *http.Client
}

func NewElevenLabsClient(apiKey, voiceID string) *ElevenLabsClient {
	return NewElevenLabsClientWithURL(elevenLabsURL, apiKey, voiceID, http.DefaultClient)
}

func NewElevenLabsClientWithURL(baseURL, apiKey, voiceID string, httpCli *http.Client) *ElevenLabsClient {
	if voiceID == "" {
		voiceID = DefaultElevenLabsVoice
	}
	return &ElevenLabsClient{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: baseURL,
		httpCli: httpCli,
	}
}

func (c *ElevenLabsClient) Name() string { return "elevenlabs" }

// TEXT → SPEECH
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.voiceID)

	payload, err := json.Marshal(map[string]string{
		"text":     text,
		"model_id": elevenLabsModel,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("elevenlabs error: %s", string(b))
	}

	return io.ReadAll(resp.Body)
}
