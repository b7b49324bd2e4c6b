package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/magic_translator/internal/extract"
	"github.com/Vovarama1992/magic_translator/internal/ports"
)

func (app *BotApp) handleDoc(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	doc := msg.Document

	if app.MaxFileSize > 0 && int64(doc.FileSize) > app.MaxFileSize {
		app.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"⚠️ The file is too large (limit %s).", humanize.Bytes(uint64(app.MaxFileSize)))))
		return
	}

	mimeType := doc.MimeType
	if mimeType == "" || mimeType == "application/octet-stream" {
		if guess := extract.TypeByExtension(doc.FileName); guess != "" {
			mimeType = guess
		}
	}

	raw, err := app.download(ctx, doc.FileID)
	if err != nil {
		app.log.Log(logger.LogEntry{
			Level:   "error",
			Message: fmt.Sprintf("[doc] chat=%d download failed", chatID),
			Service: "telegram",
			Error:   err,
		})
		app.send(tgbotapi.NewMessage(chatID, "⚠️ Could not download the document."))
		return
	}

	text, ok, err := app.Extractor.Extract(ctx, mimeType, raw)
	if err == nil && !ok {
		err = ports.ErrUnsupportedFile
	}
	if err != nil {
		app.send(tgbotapi.NewMessage(chatID, errorText(err)))
		return
	}

	app.send(tgbotapi.NewMessage(chatID, "✅ "+doc.FileName+" loaded!"))

	app.translateAndReply(ctx, chatID, ports.TranslationRequest{
		Text:     text,
		Source:   ports.SourceFile,
		FileName: doc.FileName,
		Channel:  ports.ChannelTelegram,
	})
}

func (app *BotApp) download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := app.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := app.files.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download status %d", resp.StatusCode)
	}

	limit := app.MaxFileSize
	if limit <= 0 {
		return io.ReadAll(resp.Body)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file exceeds %s", humanize.Bytes(uint64(limit)))
	}
	return data, nil
}
