package telegram

import (
	"sync"

	"github.com/Vovarama1992/magic_translator/internal/languages"
)

// chatLanguages remembers the target language per chat until restart.
type chatLanguages struct {
	mu sync.RWMutex
	m  map[int64]languages.Language
}

func newChatLanguages() *chatLanguages {
	return &chatLanguages{m: make(map[int64]languages.Language)}
}

func (c *chatLanguages) Get(chatID int64) languages.Language {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if l, ok := c.m[chatID]; ok {
		return l
	}
	return languages.Default()
}

func (c *chatLanguages) Set(chatID int64, l languages.Language) {
	c.mu.Lock()
	c.m[chatID] = l
	c.mu.Unlock()
}
