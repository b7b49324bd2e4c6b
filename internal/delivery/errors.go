package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/magic_translator/internal/languages"
	"github.com/Vovarama1992/magic_translator/internal/ports"
)

var (
	errTooLarge   = errors.New("file is too large")
	errBadRequest = errors.New("malformed request")
)

// errorStatus maps pipeline errors to an HTTP status and a user-facing message.
func errorStatus(err error) (int, string) {
	var (
		decodeErr  *ports.DecodeError
		extractErr *ports.ExtractionError
		transErr   *ports.TranslationError
		synthErr   *ports.SynthesisError
	)

	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "Malformed request: " + err.Error()
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge, "The uploaded file is too large."
	case errors.Is(err, ports.ErrEmptyInput), errors.Is(err, languages.ErrUnknownLanguage):
		return http.StatusBadRequest, ports.UserMessage(err)
	case errors.Is(err, ports.ErrUnsupportedFile):
		return http.StatusUnsupportedMediaType, ports.UserMessage(err)
	case errors.As(err, &decodeErr), errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity, ports.UserMessage(err)
	case errors.As(err, &transErr), errors.As(err, &synthErr):
		return http.StatusBadGateway, ports.UserMessage(err)
	}
	return http.StatusInternalServerError, ports.UserMessage(err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, msg := errorStatus(err)
	writeJSON(w, status, map[string]string{"error": msg})
}
