package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/magic_translator/internal/languages"
)

func (app *BotApp) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	if !strings.HasPrefix(cb.Data, langCallbackPrefix) {
		_, _ = app.bot.Request(tgbotapi.NewCallback(cb.ID, ""))
		return
	}

	lang, ok := languages.ByCode(strings.TrimPrefix(cb.Data, langCallbackPrefix))
	if !ok {
		_, _ = app.bot.Request(tgbotapi.NewCallback(cb.ID, "Unknown language"))
		return
	}

	app.langs.Set(chatID, lang)
	_, _ = app.bot.Request(tgbotapi.NewCallback(cb.ID, "🎯 "+lang.Name))

	// refresh the tick on the keyboard
	_, _ = app.bot.Request(tgbotapi.NewEditMessageReplyMarkup(
		chatID,
		cb.Message.MessageID,
		BuildLanguageKeyboard(lang),
	))

	app.send(tgbotapi.NewMessage(chatID, "🎯 Translating to: "+lang.Name))
}
