package telegram

import "github.com/Vovarama1992/magic_translator/internal/ports"

func errorText(err error) string {
	return "⚠️ " + ports.UserMessage(err)
}
