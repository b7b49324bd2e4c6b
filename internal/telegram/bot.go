package telegram

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgWelcome = "🌍 Magic Translator\n\nSend me text or a TXT, PDF or DOCX file and I will translate it and read it aloud.\n\nChoose the target language:"
	msgHelp    = "📖 How to use\n1. Type text or send a TXT, PDF or DOCX file\n2. /language to pick the target language\n3. Get the translation and the audio file"
	msgPrompt  = "Send me some text or a TXT, PDF or DOCX file."
)

// Run polls for updates until ctx is cancelled.
func (app *BotApp) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := app.api.GetUpdatesChan(u)
	app.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "[bot_loop] started @" + app.api.Self.UserName,
		Service: "telegram",
	})

	for {
		select {
		case <-ctx.Done():
			app.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go app.dispatchUpdate(ctx, update)
		}
	}
}

func (app *BotApp) dispatchUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		app.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		app.handleMessage(ctx, update.Message)
	}
}

func (app *BotApp) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "language":
			app.showLanguagePicker(chatID, msgWelcome)
		case "help":
			app.send(tgbotapi.NewMessage(chatID, msgHelp))
		default:
			app.send(tgbotapi.NewMessage(chatID, msgPrompt))
		}
		return
	}

	switch {
	case msg.Document != nil:
		app.handleDoc(ctx, msg)
	case msg.Text != "":
		app.handleText(ctx, msg)
	default:
		app.send(tgbotapi.NewMessage(chatID, msgPrompt))
	}
}

func (app *BotApp) showLanguagePicker(chatID int64, text string) {
	current := app.langs.Get(chatID)
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf("%s\n\n🎯 Now: %s", text, current.Name))
	m.ReplyMarkup = BuildLanguageKeyboard(current)
	app.send(m)
}

func (app *BotApp) send(c tgbotapi.Chattable) tgbotapi.Message {
	sent, err := app.bot.Send(c)
	if err != nil {
		app.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "[bot] send failed",
			Service: "telegram",
			Error:   err,
		})
	}
	return sent
}
