package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"smartnote/internal/domain/entities"
	"smartnote/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogSearchFallback = "search endpoint unavailable, filtering locally"

	ErrMsgNoteFieldsRequired = "title and content are required"
	ErrMsgNoteTitleRequired  = "title is required"
)

// CreateNoteInput - данные для создания заметки.
type CreateNoteInput struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	CategoryID *string `json:"category_id,omitempty"`
}

// UpdateNoteInput - данные для полной замены заметки.
// Идентификатор передается в теле запроса.
type UpdateNoteInput struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	CategoryID *string `json:"category_id,omitempty"`
}

// deleteRequest - тело запроса удаления с идентификатором.
type deleteRequest struct {
	ID string `json:"id"`
}

// ListNotes возвращает все заметки пользователя.
func (c *Client) ListNotes(ctx context.Context) ([]*entities.Note, error) {
	data, err := c.do(ctx, http.MethodGet, "/notes", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeNotes(data)
}

// CreateNote создает заметку. Заголовок и содержимое обязательны
// и проверяются до обращения к серверу.
func (c *Client) CreateNote(ctx context.Context, input CreateNoteInput) (*entities.Note, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, &APIError{Message: ErrMsgNoteFieldsRequired}
	}

	data, err := c.do(ctx, http.MethodPost, "/notes", nil, input)
	if err != nil {
		return nil, err
	}
	return decodeNote(data)
}

// UpdateNote полностью заменяет заметку. Обязателен только заголовок:
// пустое содержимое при замене допустимо и очищает заметку.
func (c *Client) UpdateNote(ctx context.Context, input UpdateNoteInput) (*entities.Note, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &APIError{Message: ErrMsgNoteTitleRequired}
	}

	data, err := c.do(ctx, http.MethodPut, "/notes", nil, input)
	if err != nil {
		return nil, err
	}
	return decodeNote(data)
}

// DeleteNote удаляет заметку по идентификатору.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/notes", nil, deleteRequest{ID: id})
	return err
}

// SearchNotes ищет заметки по подстроке. Если серверный endpoint
// поиска отсутствует, коллекция запрашивается целиком и фильтруется
// локально тем же предикатом, что применяет сервер.
func (c *Client) SearchNotes(ctx context.Context, query string) ([]*entities.Note, error) {
	params := url.Values{}
	params.Set("q", query)

	data, err := c.do(ctx, http.MethodGet, "/notes/search", params, nil)
	if err != nil {
		if !IsEndpointMissing(err) {
			return nil, err
		}

		logger.Log(ctx).Debug(ctx, LogSearchFallback)

		notes, listErr := c.ListNotes(ctx)
		if listErr != nil {
			return nil, listErr
		}
		return FilterNotes(notes, query), nil
	}

	return decodeNotes(data)
}

// FilterNotes возвращает заметки, содержащие query в заголовке или
// содержимом без учета регистра. Пустой запрос возвращает все заметки.
func FilterNotes(notes []*entities.Note, query string) []*entities.Note {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return notes
	}

	matched := make([]*entities.Note, 0, len(notes))
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Title), query) ||
			strings.Contains(strings.ToLower(note.Content), query) {
			matched = append(matched, note)
		}
	}
	return matched
}
