package telegram

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

// Telegram rejects longer messages
const maxMessageRunes = 4096

func (app *BotApp) handleText(ctx context.Context, msg *tgbotapi.Message) {
	app.translateAndReply(ctx, msg.Chat.ID, ports.TranslationRequest{
		Text:    msg.Text,
		Source:  ports.SourceText,
		Channel: ports.ChannelTelegram,
	})
}

func (app *BotApp) translateAndReply(ctx context.Context, chatID int64, req ports.TranslationRequest) {
	req.Language = app.langs.Get(chatID)

	if utf8.RuneCountInString(req.Text) > ports.LongTextThreshold {
		app.send(tgbotapi.NewMessage(chatID, "⚠️ Text is quite long. Translation may take a moment."))
	}

	thinking := app.send(tgbotapi.NewMessage(chatID, "🔄 Translating…"))
	res, err := app.Pipeline.Run(ctx, req)
	if thinking.MessageID != 0 {
		_, _ = app.bot.Request(tgbotapi.NewDeleteMessage(chatID, thinking.MessageID))
	}

	if err != nil {
		app.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: fmt.Sprintf("[text] chat=%d translation failed", chatID),
			Service: "telegram",
			Error:   err,
		})
		app.send(tgbotapi.NewMessage(chatID, errorText(err)))
		return
	}

	header := fmt.Sprintf("🌍 Translated Text (%s)\n\n", res.Language.Name)
	for _, part := range splitMessage(header+res.Translated, maxMessageRunes) {
		app.send(tgbotapi.NewMessage(chatID, part))
	}

	if !res.HasAudio() {
		if res.SynthesisErr != nil {
			app.send(tgbotapi.NewMessage(chatID, errorText(res.SynthesisErr)))
		}
		return
	}

	audio := tgbotapi.NewAudio(chatID, tgbotapi.FileBytes{
		Name:  res.AudioFileName,
		Bytes: res.Audio,
	})
	audio.Title = res.AudioFileName
	app.send(audio)
}

// splitMessage cuts on rune boundaries, preferring the last newline.
func splitMessage(text string, max int) []string {
	runes := []rune(text)
	var parts []string

	for len(runes) > max {
		cut := max
		for i := max - 1; i > max/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
