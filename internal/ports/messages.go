package ports

import (
	"errors"

	"github.com/Vovarama1992/magic_translator/internal/languages"
)

// UserMessage is the text shown to the user for a pipeline error, shared
// by the web pages, the JSON API and the bot.
func UserMessage(err error) string {
	var (
		decodeErr  *DecodeError
		extractErr *ExtractionError
		transErr   *TranslationError
		synthErr   *SynthesisError
	)

	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Please enter some text or upload a file first!"
	case errors.Is(err, languages.ErrUnknownLanguage):
		return "Unknown target language."
	case errors.Is(err, ErrUnsupportedFile):
		return "Unsupported file type. Please upload a TXT, PDF, or DOCX file."
	case errors.As(err, &decodeErr):
		return "Error reading text file: " + decodeErr.Error()
	case errors.As(err, &extractErr):
		return "Error reading " + extractErr.Format + ": " + extractErr.Err.Error()
	case errors.As(err, &transErr):
		return "Translation error: " + transErr.Err.Error()
	case errors.As(err, &synthErr):
		return "Text-to-speech error: " + synthErr.Err.Error()
	}
	return "Something went wrong, please try again."
}
