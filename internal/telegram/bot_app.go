package telegram

import (
	"context"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/magic_translator/internal/error_notificator"
	"github.com/Vovarama1992/magic_translator/internal/ports"
)

// BotAPI is the part of *tgbotapi.BotAPI the handlers use.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type TextExtractor interface {
	Extract(ctx context.Context, mimeType string, data []byte) (string, bool, error)
}

type BotApp struct {
	Pipeline    ports.TranslationService
	Extractor   TextExtractor
	ErrorNotify error_notificator.Notificator
	MaxFileSize int64

	log   *logger.ZapLogger
	files *http.Client
	api   *tgbotapi.BotAPI
	bot   BotAPI
	langs *chatLanguages
}

func NewBotApp(
	pipeline ports.TranslationService,
	extractor TextExtractor,
	notify error_notificator.Notificator,
	maxFileSize int64,
	log *logger.ZapLogger,
) *BotApp {
	return &BotApp{
		Pipeline:    pipeline,
		Extractor:   extractor,
		ErrorNotify: notify,
		MaxFileSize: maxFileSize,
		log:         log,
		files:       &http.Client{Timeout: 60 * time.Second},
		langs:       newChatLanguages(),
	}
}

// InitBot connects to Telegram. The returned bot is shared with the
// admin notifier.
func (app *BotApp) InitBot(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	app.api = api
	app.bot = api

	app.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "[bot_app] ready: @" + api.Self.UserName,
		Service: "telegram",
	})
	return api, nil
}
