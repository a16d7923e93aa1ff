package llm

import (
	"context"
	"strings"

	"smartnote/internal/domain/entities"
	llmPorts "smartnote/internal/server/ports/llm"
)

// Фиксированные ответы offline-режима. Ответ выбирается детерминированно
// по последнему сообщению пользователя, чтобы приложение оставалось
// демонстрируемым без ключа API.
var cannedReplies = []string{
	"I can help you organize your notes. Try asking me about a specific topic.",
	"That sounds interesting. You can create a note about it and assign it a category.",
	"I found your question noted. Use search to look through your existing notes.",
	"Consider grouping related notes into a category to keep things tidy.",
}

const cannedGreeting = "Hello! I'm your notes assistant. Ask me anything about your notes."

// CannedClient реализует интерфейс Completer фиксированными ответами.
type CannedClient struct{}

// NewCannedClient создает offline-клиент completion API.
func NewCannedClient() llmPorts.Completer {
	return &CannedClient{}
}

// Complete возвращает фиксированный ответ.
func (c *CannedClient) Complete(ctx context.Context, messages []entities.ChatMessage) (string, error) {
	return c.pick(messages), nil
}

// CompleteStream возвращает фиксированный ответ по словам.
func (c *CannedClient) CompleteStream(ctx context.Context, messages []entities.ChatMessage) (<-chan string, error) {
	reply := c.pick(messages)
	chunks := make(chan string)
	go func() {
		defer close(chunks)
		words := strings.SplitAfter(reply, " ")
		for _, w := range words {
			select {
			case chunks <- w:
			case <-ctx.Done():
				return
			}
		}
	}()
	return chunks, nil
}

// pick выбирает ответ по последнему сообщению пользователя.
func (c *CannedClient) pick(messages []entities.ChatMessage) string {
	var last string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == entities.RoleUser {
			last = messages[i].Content
			break
		}
	}
	if last == "" {
		return cannedGreeting
	}

	var sum int
	for _, r := range last {
		sum += int(r)
	}
	return cannedReplies[sum%len(cannedReplies)]
}
