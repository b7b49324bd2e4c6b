package domain

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Vovarama1992/magic_translator/internal/error_notificator"
	"github.com/Vovarama1992/magic_translator/internal/languages"
	"github.com/Vovarama1992/magic_translator/internal/ports"
)

type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, langCode string) ([]byte, error)
}

type translationService struct {
	translator  Translator
	synthesizer Synthesizer
	archive     ports.S3Service
	history     ports.RecordService
	notifier    error_notificator.Notificator
	log         *logger.ZapLogger
	newID       func() string
}

// NewTranslationService wires the pipeline. archive, history and notifier
// may be nil.
func NewTranslationService(
	translator Translator,
	synthesizer Synthesizer,
	archive ports.S3Service,
	history ports.RecordService,
	notifier error_notificator.Notificator,
	log *logger.ZapLogger,
) ports.TranslationService {
	return &translationService{
		translator:  translator,
		synthesizer: synthesizer,
		archive:     archive,
		history:     history,
		notifier:    notifier,
		log:         log,
		newID:       uuid.NewString,
	}
}

func (s *translationService) Run(ctx context.Context, req ports.TranslationRequest) (ports.TranslationResult, error) {
	if req.Text == "" {
		return ports.TranslationResult{}, ports.ErrEmptyInput
	}

	lang, err := resolveLanguage(req.Language)
	if err != nil {
		return ports.TranslationResult{}, err
	}

	res := ports.TranslationResult{
		RequestID: s.newID(),
		Original:  req.Text,
		Language:  lang,
		CharCount: utf8.RuneCountInString(req.Text),
	}
	res.LongText = res.CharCount > ports.LongTextThreshold

	started := time.Now()
	translated, err := s.translator.Translate(ctx, req.Text, lang.Name)
	if err != nil {
		return ports.TranslationResult{}, err
	}
	res.Translated = translated

	s.log.Log(logger.LogEntry{
		Level: "info",
		Message: fmt.Sprintf("[pipeline] %s translated %d chars to %s in %s",
			res.RequestID, res.CharCount, lang.Name, time.Since(started).Round(time.Millisecond)),
		Service: "translation",
	})

	audio, err := s.synthesizer.Synthesize(ctx, translated, lang.Code)
	if err != nil {
		res.SynthesisErr = err
		s.report(ctx, err, fmt.Sprintf("speech synthesis failed: request=%s lang=%s", res.RequestID, lang.Code))
	} else {
		res.Audio = audio
		res.AudioFileName = lang.FileName()
		res.AudioMIME = ports.AudioMIME
		s.archiveAudio(ctx, &res)
	}

	s.record(ctx, req, &res)
	return res, nil
}

func (s *translationService) archiveAudio(ctx context.Context, res *ports.TranslationResult) {
	if s.archive == nil {
		return
	}

	url, err := s.archive.SaveAudio(ctx, res.RequestID, res.AudioFileName, res.Audio)
	if err != nil {
		s.report(ctx, err, fmt.Sprintf("failed to archive audio: request=%s size=%s",
			res.RequestID, humanize.Bytes(uint64(len(res.Audio)))))
		return
	}
	res.AudioURL = url
}

func (s *translationService) record(ctx context.Context, req ports.TranslationRequest, res *ports.TranslationResult) {
	if s.history == nil {
		return
	}

	rec := &ports.Record{
		RequestID:       res.RequestID,
		Channel:         req.Channel,
		Source:          req.Source,
		Language:        res.Language.Name,
		CharCount:       res.CharCount,
		SourceText:      res.Original,
		TranslatedText:  res.Translated,
		SynthesisFailed: res.SynthesisErr != nil,
		CreatedAt:       time.Now(),
	}
	if rec.Channel == "" {
		rec.Channel = ports.ChannelWeb
	}
	if rec.Source == "" {
		rec.Source = ports.SourceText
	}
	if req.FileName != "" {
		name := req.FileName
		rec.FileName = &name
	}
	if res.AudioURL != "" {
		u := res.AudioURL
		rec.AudioURL = &u
	}

	// recordService reports its own failures
	_, _ = s.history.Add(ctx, rec)
}

func (s *translationService) report(ctx context.Context, err error, details string) {
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, err, details)
		return
	}
	s.log.Log(logger.LogEntry{
		Level:   "error",
		Message: details,
		Service: "translation",
		Error:   err,
	})
}

// resolveLanguage maps the request language onto the fixed table.
// A zero value selects the default.
func resolveLanguage(l languages.Language) (languages.Language, error) {
	if l == (languages.Language{}) {
		return languages.Default(), nil
	}
	known, err := languages.Lookup(l.Name)
	if err != nil {
		return languages.Language{}, err
	}
	if l.Code != "" && l.Code != known.Code {
		return languages.Language{}, fmt.Errorf("%w: %q is not %s", languages.ErrUnknownLanguage, l.Code, known.Name)
	}
	return known, nil
}
