package ports

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput      = errors.New("please enter some text or upload a file first")
	ErrUnsupportedFile = errors.New("unsupported file type, upload a TXT, PDF or DOCX file")
)

// CredentialError means a required secret is missing at startup.
type CredentialError struct {
	Key string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("credential %s not set", e.Key)
}

// DecodeError: uploaded text file is not valid UTF-8
type DecodeError struct {
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid utf-8 sequence at byte %d", e.Offset)
}

// ExtractionError wraps a parser failure (corrupt or encrypted file)
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

type TranslationError struct {
	Provider string
	Err      error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation error (%s): %v", e.Provider, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

type SynthesisError struct {
	Provider string
	Lang     string
	Err      error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("text-to-speech error (%s, lang=%s): %v", e.Provider, e.Lang, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
