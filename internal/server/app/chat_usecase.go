package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"smartnote/internal/domain/entities"
	"smartnote/internal/domain/relevance"
	llmPorts "smartnote/internal/server/ports/llm"
	"smartnote/internal/server/ports/repositories"
	"smartnote/pkg/logger"
)

// Константы для логирования.
const (
	LogUseCaseChat       = "chat use case: completion"
	LogUseCaseChatStream = "chat use case: streaming completion"
	LogRelatedNotes      = "related notes selected"
)

// ChatResult содержит ответ ассистента и заметки, попавшие в контекст.
type ChatResult struct {
	Content      string
	RelatedNotes []*entities.Note
}

// ChatUseCase представляет собой бизнес-логику диалога с ассистентом.
// Бэкенд stateless: каждый вызов получает полную историю диалога.
type ChatUseCase struct {
	completer    llmPorts.Completer
	noteRepo     repositories.NoteRepository
	categoryRepo repositories.CategoryRepository
}

// NewChatUseCase создает новый экземпляр ChatUseCase.
func NewChatUseCase(completer llmPorts.Completer, noteRepo repositories.NoteRepository, categoryRepo repositories.CategoryRepository) *ChatUseCase {
	return &ChatUseCase{
		completer:    completer,
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
	}
}

// Chat генерирует ответ на последнее сообщение пользователя.
// Для аутентифицированного пользователя в контекст добавляются
// относящиеся к запросу заметки. Пустой userID пропускает подбор.
func (uc *ChatUseCase) Chat(ctx context.Context, userID string, messages []entities.ChatMessage) (*ChatResult, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseChat, zap.Int("messages", len(messages)))

	prepared, related, err := uc.prepare(ctx, userID, messages)
	if err != nil {
		return nil, err
	}

	content, err := uc.completer.Complete(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return &ChatResult{Content: content, RelatedNotes: related}, nil
}

// ChatStream генерирует ответ фрагментами.
func (uc *ChatUseCase) ChatStream(ctx context.Context, userID string, messages []entities.ChatMessage) (<-chan string, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseChatStream, zap.Int("messages", len(messages)))

	prepared, _, err := uc.prepare(ctx, userID, messages)
	if err != nil {
		return nil, err
	}

	chunks, err := uc.completer.CompleteStream(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return chunks, nil
}

// prepare проверяет историю и добавляет системное сообщение с контекстом заметок.
func (uc *ChatUseCase) prepare(ctx context.Context, userID string, messages []entities.ChatMessage) ([]entities.ChatMessage, []*entities.Note, error) {
	if len(messages) == 0 {
		return nil, nil, fmt.Errorf("messages are required: %w", ErrInvalidParams)
	}
	for _, msg := range messages {
		if !entities.ValidRole(msg.Role) {
			return nil, nil, fmt.Errorf("unknown role %q: %w", msg.Role, ErrInvalidParams)
		}
	}

	var lastUser string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == entities.RoleUser {
			lastUser = messages[i].Content
			break
		}
	}

	if userID == "" || lastUser == "" {
		return messages, nil, nil
	}

	// Клиент мог собрать контекст сам: повторно его не добавляем.
	if messages[0].Role == entities.RoleSystem {
		return messages, nil, nil
	}

	related, err := uc.selectRelated(ctx, userID, lastUser)
	if err != nil {
		// Недоступность заметок не должна ломать диалог.
		logger.Log(ctx).Warn(ctx, "failed to select related notes", zap.Error(err))
		return messages, nil, nil
	}
	if len(related) == 0 {
		return messages, nil, nil
	}

	logger.Log(ctx).Debug(ctx, LogRelatedNotes, zap.Int("count", len(related)))

	prepared := make([]entities.ChatMessage, 0, len(messages)+1)
	prepared = append(prepared, entities.ChatMessage{
		Role:    entities.RoleSystem,
		Content: RenderNotesContext(related),
	})
	prepared = append(prepared, messages...)

	return prepared, related, nil
}

// selectRelated подбирает заметки пользователя, относящиеся к запросу.
func (uc *ChatUseCase) selectRelated(ctx context.Context, userID, query string) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	categories, err := uc.categoryRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	byID := make(map[string]*entities.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	return relevance.SelectRelated(notes, byID, query, relevance.MaxRelated), nil
}

// RenderNotesContext форматирует заметки в текстовый контекст для системного сообщения.
func RenderNotesContext(notes []*entities.Note) string {
	return relevance.RenderContext(notes)
}
