package delivery

import (
	"embed"
	"encoding/base64"
	"html/template"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/magic_translator/internal/extract"
	"github.com/Vovarama1992/magic_translator/internal/languages"
	"github.com/Vovarama1992/magic_translator/internal/ports"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageData struct {
	Languages []languages.Language
	Selected  string
	Accept    string
	Text      string

	Notice  string
	Error   string
	Warning string

	Result     *ports.TranslationResult
	AudioSrc   template.URL
	SynthError string
}

// PageHandler serves the single-page form.
type PageHandler struct {
	pipeline  ports.TranslationService
	extractor TextExtractor
	maxUpload int64
	log       *logger.ZapLogger
}

func NewPageHandler(
	pipeline ports.TranslationService,
	extractor TextExtractor,
	maxUpload int64,
	log *logger.ZapLogger,
) *PageHandler {
	return &PageHandler{
		pipeline:  pipeline,
		extractor: extractor,
		maxUpload: maxUpload,
		log:       log,
	}
}

func (h *PageHandler) newPage() *pageData {
	return &pageData{
		Languages: languages.All(),
		Selected:  languages.Default().Name,
		Accept:    extract.Accept,
	}
}

func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.newPage())
}

func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	page := h.newPage()

	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		h.fail(w, page, err)
		return
	}

	page.Text = r.FormValue("text")
	if name := r.FormValue("language"); name != "" {
		page.Selected = name
	}

	lang, err := resolveLanguage(page.Selected)
	if err != nil {
		h.fail(w, page, err)
		return
	}

	req := ports.TranslationRequest{
		Text:     page.Text,
		Source:   ports.SourceText,
		Channel:  ports.ChannelWeb,
		Language: lang,
	}

	up, err := readUpload(r, "file")
	if err != nil {
		h.fail(w, page, err)
		return
	}
	if up != nil {
		text, err := extractUpload(r.Context(), h.extractor, up)
		if err != nil {
			h.fail(w, page, err)
			return
		}
		req.Text, req.Source, req.FileName = text, ports.SourceFile, up.Name
		page.Text = text
		page.Notice = "✅ " + up.Name + " loaded!"
	}

	res, err := h.pipeline.Run(r.Context(), req)
	if err != nil {
		h.fail(w, page, err)
		return
	}

	page.Result = &res
	if res.LongText {
		page.Warning = "⚠️ Text is quite long. Translation may take a moment."
	}
	if res.HasAudio() {
		page.AudioSrc = template.URL("data:" + res.AudioMIME + ";base64," + base64.StdEncoding.EncodeToString(res.Audio))
	}
	if res.SynthesisErr != nil {
		_, page.SynthError = errorStatus(res.SynthesisErr)
	}

	h.render(w, http.StatusOK, page)
}

func (h *PageHandler) fail(w http.ResponseWriter, page *pageData, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Log(logger.LogEntry{Level: "error", Message: "page request failed", Service: "delivery", Error: err})
	}
	page.Error = msg
	h.render(w, status, page)
}

func (h *PageHandler) render(w http.ResponseWriter, status int, page *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, page); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "template render failed", Service: "delivery", Error: err})
	}
}
