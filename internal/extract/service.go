// Package extract turns an uploaded file into plain text, choosing the
// strategy by the declared MIME type.
package extract

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	previewLen = 500
)

// Accept is the value for the upload input's accept attribute.
const Accept = ".txt,.pdf,.docx"

var byExtension = map[string]string{
	".txt":  MimeText,
	".pdf":  MimePDF,
	".docx": MimeDOCX,
}

// TypeByExtension guesses the declared type for clients that send none.
func TypeByExtension(name string) string {
	return byExtension[strings.ToLower(filepath.Ext(name))]
}

type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

type Service struct {
	pdf  Extractor
	docx Extractor
}

func NewService(pdf, docx Extractor) *Service {
	return &Service{pdf: pdf, docx: docx}
}

// Extract returns ok == false, with no error, when the declared type is not
// one of the supported ones. Matching is exact.
func (s *Service) Extract(ctx context.Context, mimeType string, data []byte) (text string, ok bool, err error) {
	switch mimeType {
	case MimeText:
		text, err = DecodeUTF8(data)
		return text, true, err

	case MimePDF:
		text, err = s.pdf.Extract(ctx, data)
		if err != nil {
			return "", true, wrap("PDF", err)
		}
		return text, true, nil

	case MimeDOCX:
		text, err = s.docx.Extract(ctx, data)
		if err != nil {
			return "", true, wrap("DOCX", err)
		}
		return text, true, nil
	}

	return "", false, nil
}

func wrap(format string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ports.ExtractionError{Format: format, Err: err}
}

// DecodeUTF8 is strict: any invalid sequence fails the whole file.
func DecodeUTF8(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	off := 0
	for off < len(data) {
		r, size := utf8.DecodeRune(data[off:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		off += size
	}
	return "", &ports.DecodeError{Offset: off}
}

// Preview is the first 500 characters, with an ellipsis when cut.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewLen]) + "..."
}

// CharCount counts characters, not bytes.
func CharCount(text string) int {
	return utf8.RuneCountInString(text)
}
