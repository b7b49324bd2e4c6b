package delivery

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/magic_translator/internal/extract"
	"github.com/Vovarama1992/magic_translator/internal/languages"
	"github.com/Vovarama1992/magic_translator/internal/ports"
)

type TranslateHandler struct {
	pipeline  ports.TranslationService
	extractor TextExtractor
	maxUpload int64
	log       *logger.ZapLogger
}

func NewTranslateHandler(
	pipeline ports.TranslationService,
	extractor TextExtractor,
	maxUpload int64,
	log *logger.ZapLogger,
) *TranslateHandler {
	return &TranslateHandler{
		pipeline:  pipeline,
		extractor: extractor,
		maxUpload: maxUpload,
		log:       log,
	}
}

type translateResponse struct {
	RequestID      string `json:"request_id"`
	Original       string `json:"original"`
	Translated     string `json:"translated"`
	Language       string `json:"language"`
	LanguageCode   string `json:"language_code"`
	CharCount      int    `json:"char_count"`
	LongText       bool   `json:"long_text"`
	Audio          string `json:"audio,omitempty"`
	AudioFileName  string `json:"audio_file_name,omitempty"`
	AudioMIME      string `json:"audio_mime,omitempty"`
	AudioURL       string `json:"audio_url,omitempty"`
	SynthesisError string `json:"synthesis_error,omitempty"`
}

func toResponse(res ports.TranslationResult) translateResponse {
	out := translateResponse{
		RequestID:     res.RequestID,
		Original:      res.Original,
		Translated:    res.Translated,
		Language:      res.Language.Name,
		LanguageCode:  res.Language.Code,
		CharCount:     res.CharCount,
		LongText:      res.LongText,
		AudioFileName: res.AudioFileName,
		AudioMIME:     res.AudioMIME,
		AudioURL:      res.AudioURL,
	}
	if res.HasAudio() {
		out.Audio = base64.StdEncoding.EncodeToString(res.Audio)
	}
	if res.SynthesisErr != nil {
		_, out.SynthesisError = errorStatus(res.SynthesisErr)
	}
	return out
}

func (h *TranslateHandler) Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"languages": languages.All(),
		"default":   languages.Default(),
	})
}

func (h *TranslateHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		writeError(w, err)
		return
	}

	up, err := readUpload(r, "file")
	if err != nil {
		writeError(w, err)
		return
	}
	if up == nil {
		writeError(w, fmt.Errorf("%w: missing file", errBadRequest))
		return
	}

	text, err := extractUpload(r.Context(), h.extractor, up)
	if err != nil {
		status, msg := errorStatus(err)
		writeJSON(w, status, map[string]any{
			"error":     msg,
			"supported": status != http.StatusUnsupportedMediaType,
		})
		return
	}

	count := extract.CharCount(text)
	writeJSON(w, http.StatusOK, map[string]any{
		"text":       text,
		"preview":    extract.Preview(text),
		"char_count": count,
		"long_text":  count > ports.LongTextThreshold,
		"supported":  true,
	})
}

func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	res, err := h.run(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(res))
}

// TranslateAudio answers with the MP3 itself.
func (h *TranslateHandler) TranslateAudio(w http.ResponseWriter, r *http.Request) {
	res, err := h.run(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if !res.HasAudio() {
		writeError(w, res.SynthesisErr)
		return
	}

	w.Header().Set("Content-Type", res.AudioMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.AudioFileName))
	w.Header().Set("X-Request-ID", res.RequestID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Audio)
}

// run accepts either JSON {text, language} or a multipart form with an
// optional file; an uploaded file replaces the text.
func (h *TranslateHandler) run(w http.ResponseWriter, r *http.Request) (ports.TranslationResult, error) {
	req := ports.TranslationRequest{Source: ports.SourceText, Channel: ports.ChannelAPI}
	var langName string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := parseMultipart(w, r, h.maxUpload); err != nil {
			return ports.TranslationResult{}, err
		}
		req.Text = r.FormValue("text")
		langName = r.FormValue("language")

		up, err := readUpload(r, "file")
		if err != nil {
			return ports.TranslationResult{}, err
		}
		if up != nil {
			text, err := extractUpload(r.Context(), h.extractor, up)
			if err != nil {
				return ports.TranslationResult{}, err
			}
			req.Text, req.Source, req.FileName = text, ports.SourceFile, up.Name
		}
	} else {
		var body struct {
			Text     string `json:"text"`
			Language string `json:"language"`
		}
		if err := decodeJSON(w, r, h.maxUpload, &body); err != nil {
			return ports.TranslationResult{}, err
		}
		req.Text, langName = body.Text, body.Language
	}

	lang, err := resolveLanguage(langName)
	if err != nil {
		return ports.TranslationResult{}, err
	}
	req.Language = lang

	return h.pipeline.Run(r.Context(), req)
}

func resolveLanguage(name string) (languages.Language, error) {
	if name == "" {
		return languages.Default(), nil
	}
	return languages.Lookup(name)
}
