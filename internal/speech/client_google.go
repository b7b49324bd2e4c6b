package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

const (
	googleTTSURL = "https://translate.google.com/translate_tts"

	// the endpoint rejects longer q values
	googleMaxChunk = 100

	googleUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

var ErrNoText = errors.New("no text to speak")

// GoogleTTS speaks through the Google Translate voice endpoint at normal
// speed. Long text is sent in sentence-sized pieces and the MP3 frames are
// concatenated.
type GoogleTTS struct {
	baseURL string
	httpCli *http.Client
}

func NewGoogleTTS(httpCli *http.Client) *GoogleTTS {
	return NewGoogleTTSWithURL(googleTTSURL, httpCli)
}

func NewGoogleTTSWithURL(baseURL string, httpCli *http.Client) *GoogleTTS {
	if httpCli == nil {
		httpCli = http.DefaultClient
	}
	return &GoogleTTS{baseURL: baseURL, httpCli: httpCli}
}

func (g *GoogleTTS) Name() string { return "google" }

func (g *GoogleTTS) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	chunks := SplitText(text, googleMaxChunk)
	if len(chunks) == 0 {
		return nil, ErrNoText
	}

	tl := googleLang(langCode)

	var out bytes.Buffer
	for i, chunk := range chunks {
		if err := g.fetch(ctx, &out, chunk, tl, i, len(chunks)); err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return out.Bytes(), nil
}

func (g *GoogleTTS) fetch(ctx context.Context, w io.Writer, chunk, tl string, idx, total int) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", chunk)
	q.Set("tl", tl)
	q.Set("ttsspeed", "1")
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(len([]rune(chunk))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", googleUserAgent)
	req.Header.Set("Referer", "https://translate.google.com/")

	resp, err := g.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("google tts status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

// googleLang maps region codes to the casing the endpoint expects (zh-cn → zh-CN).
func googleLang(code string) string {
	if i := strings.IndexByte(code, '-'); i > 0 {
		return strings.ToLower(code[:i]) + "-" + strings.ToUpper(code[i+1:])
	}
	return strings.ToLower(code)
}

const splitPunct = ".,!?;:¿¡。、，！？；：…\n"

// SplitText breaks text into pieces of at most max characters, preferring
// punctuation, then whitespace, then a hard cut. Pieces without any letter
// or digit are dropped.
func SplitText(text string, max int) []string {
	runes := []rune(strings.TrimSpace(text))

	var out []string
	for len(runes) > 0 {
		if len(runes) <= max {
			out = appendChunk(out, runes)
			break
		}

		cut := lastIndex(runes[:max+1], func(r rune) bool { return strings.ContainsRune(splitPunct, r) })
		if cut <= 0 {
			cut = lastIndex(runes[:max+1], unicode.IsSpace)
		}
		if cut <= 0 {
			cut = max
		} else if !unicode.IsSpace(runes[cut]) && cut < max {
			// keep the punctuation mark with its sentence
			cut++
		}

		out = appendChunk(out, runes[:cut])
		runes = []rune(strings.TrimLeftFunc(string(runes[cut:]), unicode.IsSpace))
	}
	return out
}

func appendChunk(out []string, r []rune) []string {
	s := strings.TrimSpace(string(r))
	for _, c := range s {
		if unicode.IsLetter(c) || unicode.IsNumber(c) {
			return append(out, s)
		}
	}
	return out
}

func lastIndex(r []rune, f func(rune) bool) int {
	for i := len(r) - 1; i >= 0; i-- {
		if f(r[i]) {
			return i
		}
	}
	return -1
}
