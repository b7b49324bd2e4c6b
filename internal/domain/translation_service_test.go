package domain

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/magic_translator/internal/languages"
	"github.com/Vovarama1992/magic_translator/internal/ports"
)

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

type stubTranslator struct {
	out    string
	err    error
	calls  int
	gotLng string
}

func (s *stubTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	s.calls++
	s.gotLng = targetLanguage
	return s.out, s.err
}

type stubSynth struct {
	audio   []byte
	err     error
	calls   int
	gotText string
	gotCode string
}

func (s *stubSynth) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	s.calls++
	s.gotText, s.gotCode = text, langCode
	return s.audio, s.err
}

type stubArchive struct {
	url   string
	err   error
	saved []byte
}

func (a *stubArchive) ObjectKey(at time.Time, requestID, filename string) string { return "" }

func (a *stubArchive) SaveAudio(ctx context.Context, requestID, filename string, audio []byte) (string, error) {
	a.saved = audio
	return a.url, a.err
}

type stubHistory struct {
	recs []ports.Record
}

func (h *stubHistory) Add(ctx context.Context, rec *ports.Record) (int64, error) {
	h.recs = append(h.recs, *rec)
	return int64(len(h.recs)), nil
}

func (h *stubHistory) List(ctx context.Context, limit int) ([]ports.Record, error) { return h.recs, nil }
func (h *stubHistory) DeleteAll(ctx context.Context) error                          { return nil }

type stubNotifier struct{ details []string }

func (n *stubNotifier) Notify(ctx context.Context, err error, details string) error {
	n.details = append(n.details, details)
	return nil
}

func lang(t *testing.T, name string) languages.Language {
	l, err := languages.Lookup(name)
	require.NoError(t, err)
	return l
}

func TestRun_EmptyInputMakesNoCalls(t *testing.T) {
	tr, sy := &stubTranslator{out: "x"}, &stubSynth{audio: []byte{1}}
	svc := NewTranslationService(tr, sy, nil, nil, nil, nopLogger())

	_, err := svc.Run(context.Background(), ports.TranslationRequest{Language: lang(t, "French")})
	assert.ErrorIs(t, err, ports.ErrEmptyInput)
	assert.Zero(t, tr.calls)
	assert.Zero(t, sy.calls)
}

func TestRun_UnknownLanguageMakesNoCalls(t *testing.T) {
	cases := []languages.Language{
		{Name: "Klingon", Code: "tlh"},
		{Name: "French", Code: "de"},
		{Code: "fr"},
	}
	for _, l := range cases {
		tr, sy := &stubTranslator{out: "x"}, &stubSynth{audio: []byte{1}}
		hist := &stubHistory{}
		svc := NewTranslationService(tr, sy, nil, hist, nil, nopLogger())

		_, err := svc.Run(context.Background(), ports.TranslationRequest{Text: "Hello", Language: l})
		assert.ErrorIs(t, err, languages.ErrUnknownLanguage, "%+v", l)
		assert.Zero(t, tr.calls)
		assert.Zero(t, sy.calls)
		assert.Empty(t, hist.recs)
	}
}

func TestRun_CanonicalizesLanguageName(t *testing.T) {
	tr, sy := &stubTranslator{out: "Hallo"}, &stubSynth{audio: []byte{1}}
	svc := NewTranslationService(tr, sy, nil, nil, nil, nopLogger())

	res, err := svc.Run(context.Background(), ports.TranslationRequest{
		Text:     "Hello",
		Language: languages.Language{Name: "german"},
	})
	require.NoError(t, err)
	assert.Equal(t, "German", tr.gotLng)
	assert.Equal(t, "de", sy.gotCode)
	assert.Equal(t, "translation_german.mp3", res.AudioFileName)
}

func TestRun_WhitespaceIsStillText(t *testing.T) {
	tr, sy := &stubTranslator{out: " "}, &stubSynth{audio: []byte{1}}
	svc := NewTranslationService(tr, sy, nil, nil, nil, nopLogger())

	_, err := svc.Run(context.Background(), ports.TranslationRequest{Text: "   "})
	require.NoError(t, err)
	assert.Equal(t, 1, tr.calls)
}

func TestRun_ReturnsTranslatorOutputAndAudio(t *testing.T) {
	tr := &stubTranslator{out: "Bonjour le monde"}
	sy := &stubSynth{audio: []byte("ID3-fake")}
	svc := NewTranslationService(tr, sy, nil, nil, nil, nopLogger())

	res, err := svc.Run(context.Background(), ports.TranslationRequest{
		Text:     "Hello world",
		Language: lang(t, "French"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello world", res.Original)
	assert.Equal(t, "Bonjour le monde", res.Translated)
	assert.Equal(t, "French", tr.gotLng)
	assert.Equal(t, "Bonjour le monde", sy.gotText)
	assert.Equal(t, "fr", sy.gotCode)

	assert.True(t, res.HasAudio())
	assert.Equal(t, []byte("ID3-fake"), res.Audio)
	assert.Equal(t, "translation_french.mp3", res.AudioFileName)
	assert.Equal(t, "audio/mp3", res.AudioMIME)
	assert.NotEmpty(t, res.RequestID)
	assert.NoError(t, res.SynthesisErr)
}

func TestRun_DefaultsToSpanish(t *testing.T) {
	tr, sy := &stubTranslator{out: "Hola"}, &stubSynth{audio: []byte{1}}
	svc := NewTranslationService(tr, sy, nil, nil, nil, nopLogger())

	res, err := svc.Run(context.Background(), ports.TranslationRequest{Text: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "Spanish", res.Language.Name)
	assert.Equal(t, "es", sy.gotCode)
	assert.Equal(t, "translation_spanish.mp3", res.AudioFileName)
}

func TestRun_CharCountIsCodePoints(t *testing.T) {
	svc := NewTranslationService(&stubTranslator{out: "x"}, &stubSynth{audio: []byte{1}}, nil, nil, nil, nopLogger())

	res, err := svc.Run(context.Background(), ports.TranslationRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 5, res.CharCount)

	res, err = svc.Run(context.Background(), ports.TranslationRequest{Text: "你好世界"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.CharCount)
	assert.False(t, res.LongText)

	res, err = svc.Run(context.Background(), ports.TranslationRequest{Text: strings.Repeat("あ", 5001)})
	require.NoError(t, err)
	assert.Equal(t, 5001, res.CharCount)
	assert.True(t, res.LongText)
}

func TestRun_TranslationFailureAborts(t *testing.T) {
	terr := &ports.TranslationError{Provider: "openai", Err: errors.New("401")}
	tr := &stubTranslator{err: terr}
	sy := &stubSynth{audio: []byte{1}}
	hist := &stubHistory{}
	svc := NewTranslationService(tr, sy, nil, hist, nil, nopLogger())

	res, err := svc.Run(context.Background(), ports.TranslationRequest{Text: "Hello"})
	var te *ports.TranslationError
	require.True(t, errors.As(err, &te))
	assert.Empty(t, res.Translated)
	assert.Zero(t, sy.calls)
	assert.Empty(t, hist.recs)
}

func TestRun_SynthesisFailureKeepsText(t *testing.T) {
	serr := &ports.SynthesisError{Provider: "google", Lang: "ko", Err: errors.New("boom")}
	n := &stubNotifier{}
	arch := &stubArchive{url: "http://s3/x"}
	svc := NewTranslationService(&stubTranslator{out: "안녕하세요"}, &stubSynth{err: serr}, arch, nil, n, nopLogger())

	res, err := svc.Run(context.Background(), ports.TranslationRequest{Text: "Hello", Language: lang(t, "Korean")})
	require.NoError(t, err)
	assert.Equal(t, "안녕하세요", res.Translated)
	assert.False(t, res.HasAudio())
	assert.ErrorIs(t, res.SynthesisErr, serr)
	assert.Empty(t, res.AudioURL)
	assert.Nil(t, arch.saved)
	assert.Len(t, n.details, 1)
}

func TestRun_ArchivesAndRecords(t *testing.T) {
	arch := &stubArchive{url: "https://s3.local/bucket/key"}
	hist := &stubHistory{}
	svc := NewTranslationService(&stubTranslator{out: "Hallo"}, &stubSynth{audio: []byte("mp3")}, arch, hist, nil, nopLogger())

	res, err := svc.Run(context.Background(), ports.TranslationRequest{
		Text:     "Hello",
		Source:   ports.SourceFile,
		FileName: "notes.txt",
		Channel:  ports.ChannelAPI,
		Language: lang(t, "German"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/bucket/key", res.AudioURL)
	assert.Equal(t, []byte("mp3"), arch.saved)

	require.Len(t, hist.recs, 1)
	rec := hist.recs[0]
	assert.Equal(t, res.RequestID, rec.RequestID)
	assert.Equal(t, ports.ChannelAPI, rec.Channel)
	assert.Equal(t, ports.SourceFile, rec.Source)
	require.NotNil(t, rec.FileName)
	assert.Equal(t, "notes.txt", *rec.FileName)
	require.NotNil(t, rec.AudioURL)
	assert.Equal(t, res.AudioURL, *rec.AudioURL)
	assert.Equal(t, "German", rec.Language)
	assert.False(t, rec.SynthesisFailed)
}

func TestRun_ArchiveFailureIsNotFatal(t *testing.T) {
	n := &stubNotifier{}
	arch := &stubArchive{err: errors.New("bucket gone")}
	svc := NewTranslationService(&stubTranslator{out: "Ciao"}, &stubSynth{audio: []byte("mp3")}, arch, nil, n, nopLogger())

	res, err := svc.Run(context.Background(), ports.TranslationRequest{Text: "Hi", Language: lang(t, "Italian")})
	require.NoError(t, err)
	assert.True(t, res.HasAudio())
	assert.Empty(t, res.AudioURL)
	assert.Len(t, n.details, 1)
}

type memS3 struct {
	key         string
	body        []byte
	size        int64
	contentType string
}

func (m *memS3) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.key, m.body, m.size, m.contentType = key, b, size, contentType
	return "https://s3/" + key, nil
}

func TestS3Service_SaveAudio(t *testing.T) {
	cli := &memS3{}
	svc := &s3Service{client: cli, now: func() time.Time {
		return time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	}}

	url, err := svc.SaveAudio(context.Background(), "req-1", "translation_french.mp3", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "translations/2024-03-09/req-1_translation_french.mp3", cli.key)
	assert.Equal(t, "https://s3/"+cli.key, url)
	assert.Equal(t, []byte("abc"), cli.body)
	assert.EqualValues(t, 3, cli.size)
	assert.Equal(t, "audio/mp3", cli.contentType)

	_, err = svc.SaveAudio(context.Background(), "", "x.mp3", []byte("abc"))
	assert.Error(t, err)
	_, err = svc.SaveAudio(context.Background(), "req", "x.mp3", nil)
	assert.Error(t, err)
}

func TestS3Service_ObjectKeyStripsDirectories(t *testing.T) {
	svc := NewS3Service(&memS3{})
	at := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "translations/2025-01-02/id_evil.mp3", svc.ObjectKey(at, "id", "../../evil.mp3"))
}
