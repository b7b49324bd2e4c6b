// Package languages holds the fixed table of target languages offered to
// the user: display name for the translator, code for speech synthesis.
package languages

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownLanguage = errors.New("unknown target language")

type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

var table = []Language{
	{Name: "Spanish", Code: "es"},
	{Name: "French", Code: "fr"},
	{Name: "German", Code: "de"},
	{Name: "Hindi", Code: "hi"},
	{Name: "Japanese", Code: "ja"},
	{Name: "Chinese (Simplified)", Code: "zh-cn"},
	{Name: "Arabic", Code: "ar"},
	{Name: "Italian", Code: "it"},
	{Name: "Portuguese", Code: "pt"},
	{Name: "Russian", Code: "ru"},
	{Name: "Korean", Code: "ko"},
}

// All returns a copy of the table in display order.
func All() []Language {
	out := make([]Language, len(table))
	copy(out, table)
	return out
}

func Default() Language {
	return table[0]
}

// Lookup resolves a display name. Exact match wins, then case-insensitive.
func Lookup(name string) (Language, error) {
	for _, l := range table {
		if l.Name == name {
			return l, nil
		}
	}
	trimmed := strings.TrimSpace(name)
	for _, l := range table {
		if strings.EqualFold(l.Name, trimmed) {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// FileName is the name of the downloadable audio for this language.
func (l Language) FileName() string {
	return "translation_" + strings.ToLower(l.Name) + ".mp3"
}

// ByCode finds a language by its speech code, e.g. "zh-cn".
func ByCode(code string) (Language, bool) {
	for _, l := range table {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}
