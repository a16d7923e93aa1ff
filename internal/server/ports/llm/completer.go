// Package llm определяет интерфейс клиента completion API.
package llm

import (
	"context"

	"smartnote/internal/domain/entities"
)

// Completer определяет интерфейс генерации ответа по истории диалога.
// Бэкенд completion API stateless: в каждый вызов передается полная история.
type Completer interface {
	// Complete возвращает сгенерированный ответ целиком.
	Complete(ctx context.Context, messages []entities.ChatMessage) (string, error)

	// CompleteStream возвращает канал фрагментов ответа.
	// Канал закрывается по завершении генерации или при ошибке.
	CompleteStream(ctx context.Context, messages []entities.ChatMessage) (<-chan string, error)
}
