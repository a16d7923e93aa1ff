package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartnote/internal/client/gateway"
	"smartnote/internal/domain/entities"
	"smartnote/internal/domain/relevance"
	"smartnote/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogChatSend        = "sending chat message"
	LogChatContextSize = "chat context assembled"
)

// ErrEmptyPrompt возвращается при попытке отправить пустое сообщение.
var ErrEmptyPrompt = errors.New("message content is required")

// ChatGateway - операция API, нужная хранилищу диалога.
type ChatGateway interface {
	SendChat(ctx context.Context, messages []entities.ChatMessage, onChunk func(string)) (*gateway.ChatResult, error)
}

// ContextSource отдает кэшированные заметки и категории для подбора
// контекста. Nil-источник означает диалог без контекста заметок.
type ContextSource interface {
	Notes() []*entities.Note
	Categories() []*entities.Category
}

// ChatSnapshot - консистентный срез состояния диалога.
type ChatSnapshot struct {
	Messages []entities.ChatMessage
	Related  []*entities.Note
	Sending  bool
	Err      string
}

// ChatStore держит стенограмму диалога с ассистентом. Стенограмма
// только растет: сообщения не редактируются и не удаляются, сброс
// начинает новый диалог.
type ChatStore struct {
	gw     ChatGateway
	source ContextSource

	mu       sync.RWMutex
	messages []entities.ChatMessage
	related  []*entities.Note
	sending  bool
	errMsg   string
}

// NewChatStore создает хранилище диалога. source может быть nil.
func NewChatStore(gw ChatGateway, source ContextSource) *ChatStore {
	return &ChatStore{gw: gw, source: source}
}

// Send добавляет сообщение пользователя в стенограмму, собирает
// контекст из относящихся к вопросу заметок и запрашивает ответ
// ассистента. onChunk, если задан, получает фрагменты потокового
// ответа. Сообщение пользователя остается в стенограмме и при
// неудачном запросе.
func (s *ChatStore) Send(ctx context.Context, content string, onChunk func(string)) (*entities.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyPrompt
	}

	log := logger.Log(ctx)
	log.Debug(ctx, LogChatSend)

	userMsg := entities.ChatMessage{
		ID:      uuid.NewString(),
		Role:    entities.RoleUser,
		Content: content,
	}

	s.mu.Lock()
	s.messages = append(s.messages, userMsg)
	s.sending = true
	s.errMsg = ""
	transcript := make([]entities.ChatMessage, len(s.messages))
	copy(transcript, s.messages)
	s.mu.Unlock()

	related := s.selectRelated(content)
	outgoing := transcript
	if len(related) > 0 {
		log.Debug(ctx, LogChatContextSize, zap.Int("related", len(related)))
		outgoing = make([]entities.ChatMessage, 0, len(transcript)+1)
		outgoing = append(outgoing, entities.ChatMessage{
			Role:    entities.RoleSystem,
			Content: renderNotesContext(related),
		})
		outgoing = append(outgoing, transcript...)
	}

	result, err := s.gw.SendChat(ctx, outgoing, onChunk)
	if err != nil {
		s.mu.Lock()
		s.sending = false
		s.errMsg = FriendlyMessage(err)
		s.mu.Unlock()
		return nil, err
	}

	assistantMsg := entities.ChatMessage{
		ID:      uuid.NewString(),
		Role:    entities.RoleAssistant,
		Content: result.Content,
	}

	s.mu.Lock()
	s.messages = append(s.messages, assistantMsg)
	if result.RelatedNotes != nil {
		s.related = result.RelatedNotes
	} else {
		s.related = related
	}
	s.sending = false
	s.mu.Unlock()

	return &assistantMsg, nil
}

// selectRelated подбирает заметки, относящиеся к запросу, из источника.
func (s *ChatStore) selectRelated(query string) []*entities.Note {
	if s.source == nil {
		return nil
	}

	categories := s.source.Categories()
	byID := make(map[string]*entities.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	return relevance.SelectRelated(s.source.Notes(), byID, query, relevance.MaxRelated)
}

// Snapshot возвращает консистентный срез состояния.
func (s *ChatStore) Snapshot() ChatSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]entities.ChatMessage, len(s.messages))
	copy(messages, s.messages)
	related := make([]*entities.Note, len(s.related))
	copy(related, s.related)
	return ChatSnapshot{Messages: messages, Related: related, Sending: s.sending, Err: s.errMsg}
}

// Messages возвращает стенограмму диалога.
func (s *ChatStore) Messages() []entities.ChatMessage {
	return s.Snapshot().Messages
}

// Reset начинает новый диалог.
func (s *ChatStore) Reset() {
	s.mu.Lock()
	s.messages = nil
	s.related = nil
	s.errMsg = ""
	s.mu.Unlock()
}

// renderNotesContext форматирует заметки в системное сообщение.
func renderNotesContext(notes []*entities.Note) string {
	return relevance.RenderContext(notes)
}
