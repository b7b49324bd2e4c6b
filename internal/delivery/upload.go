package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/Vovarama1992/magic_translator/internal/extract"
	"github.com/Vovarama1992/magic_translator/internal/ports"
)

// TextExtractor is satisfied by extract.Service.
type TextExtractor interface {
	Extract(ctx context.Context, mimeType string, data []byte) (string, bool, error)
}

type upload struct {
	Name     string
	MimeType string
	Data     []byte
}

// readUpload returns nil when the form carries no file.
func readUpload(r *http.Request, field string) (*upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 && header.Filename == "" {
		return nil, nil
	}

	return &upload{
		Name:     header.Filename,
		MimeType: declaredType(header),
		Data:     data,
	}, nil
}

// declaredType drops parameters and falls back to the file extension when
// the client sent nothing useful.
func declaredType(h *multipart.FileHeader) string {
	ct := h.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		ct = mt
	}
	if ct == "" || ct == "application/octet-stream" {
		if guess := extract.TypeByExtension(h.Filename); guess != "" {
			return guess
		}
	}
	return ct
}

func extractUpload(ctx context.Context, ext TextExtractor, up *upload) (string, error) {
	text, ok, err := ext.Extract(ctx, up.MimeType, up.Data)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ports.ErrUnsupportedFile
	}
	return text, nil
}

// decodeJSON caps the body the same way parseMultipart does.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return errTooLarge
		}
		return fmt.Errorf("%w: invalid json", errBadRequest)
	}
	return nil
}

func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return errTooLarge
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
