package speech

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

func TestSplitText(t *testing.T) {
	assert.Equal(t, []string{"Hello world.", "This is a test"}, SplitText("Hello world. This is a test", 15))
	assert.Equal(t, []string{"one two", "three", "four"}, SplitText("one two three four", 9))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, SplitText("abcdefghij", 4))
	assert.Equal(t, []string{"short"}, SplitText("  short  ", 100))
	assert.Empty(t, SplitText("...!!!", 100))
	assert.Empty(t, SplitText("", 100))

	for _, c := range SplitText(strings.Repeat("これはテストです。", 40), googleMaxChunk) {
		assert.LessOrEqual(t, len([]rune(c)), googleMaxChunk)
	}
}

func TestGoogleLang(t *testing.T) {
	assert.Equal(t, "zh-CN", googleLang("zh-cn"))
	assert.Equal(t, "es", googleLang("es"))
	assert.Equal(t, "pt", googleLang("PT"))
}

func TestGoogleTTS_ConcatenatesChunks(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "zh-CN", q.Get("tl"))
		assert.Equal(t, "tw-ob", q.Get("client"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		mu.Lock()
		seen = append(seen, q.Get("q"))
		mu.Unlock()

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("[" + q.Get("idx") + "]"))
	}))
	defer srv.Close()

	g := NewGoogleTTSWithURL(srv.URL, srv.Client())

	text := strings.Repeat("a", 60) + ". " + strings.Repeat("b", 60)
	audio, err := g.Synthesize(context.Background(), text, "zh-cn")
	require.NoError(t, err)
	assert.Equal(t, "[0][1]", string(audio))
	assert.Equal(t, []string{strings.Repeat("a", 60) + ".", strings.Repeat("b", 60)}, seen)
}

func TestGoogleTTS_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewGoogleTTSWithURL(srv.URL, nil).Synthesize(context.Background(), "hola", "es")
	assert.ErrorContains(t, err, "400")
}

func TestGoogleTTS_NoText(t *testing.T) {
	_, err := NewGoogleTTS(nil).Synthesize(context.Background(), " ... ", "es")
	assert.ErrorIs(t, err, ErrNoText)
}

func TestElevenLabs_PostsTextAndReturnsAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-1", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("xi-api-key"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Привет \"мир\"", body["text"])
		assert.Equal(t, elevenLabsModel, body["model_id"])

		_, _ = w.Write([]byte("ID3mp3"))
	}))
	defer srv.Close()

	c := NewElevenLabsClientWithURL(srv.URL, "secret", "voice-1", srv.Client())
	audio, err := c.Synthesize(context.Background(), "Привет \"мир\"", "ru")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3mp3"), audio)
}

func TestElevenLabs_DefaultVoice(t *testing.T) {
	assert.Equal(t, DefaultElevenLabsVoice, NewElevenLabsClient("k", "").voiceID)
}

func TestOpenAITTS_ReadsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(b), `"input":"Hallo"`)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	cfg := openai.DefaultConfig("k")
	cfg.BaseURL = srv.URL + "/v1"

	audio, err := NewOpenAITTSWithConfig(cfg).Synthesize(context.Background(), "Hallo", "de")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
}

type fixedTTS struct {
	audio []byte
	err   error
}

func (f fixedTTS) Name() string { return "fixed" }

func (f fixedTTS) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	return f.audio, f.err
}

func TestService_WrapsErrors(t *testing.T) {
	svc := NewService(fixedTTS{err: errors.New("unsupported language")}, nopLogger())

	_, err := svc.Synthesize(context.Background(), "x", "xx")
	var se *ports.SynthesisError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "fixed", se.Provider)
	assert.Equal(t, "xx", se.Lang)
}

func TestService_EmptyAudioIsError(t *testing.T) {
	_, err := NewService(fixedTTS{}, nopLogger()).Synthesize(context.Background(), "x", "es")
	var se *ports.SynthesisError
	assert.True(t, errors.As(err, &se))
}

func TestService_PassesBytesThrough(t *testing.T) {
	audio, err := NewService(fixedTTS{audio: []byte{1, 2, 3}}, nopLogger()).Synthesize(context.Background(), "x", "es")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, audio)
}
