// Package entities определяет доменные сущности, общие для сервера и клиентского слоя.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Note представляет собой заметку пользователя.
// CategoryID может быть nil - заметка без категории.
type Note struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID *string   `json:"category_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewNote создает новую заметку. В момент создания UpdatedAt равен CreatedAt.
func NewNote(userID, title, content string, categoryID *string) *Note {
	now := time.Now()
	return &Note{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      title,
		Content:    content,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch обновляет UpdatedAt. Инвариант UpdatedAt >= CreatedAt сохраняется
// даже при переводе системных часов назад.
func (n *Note) Touch() {
	now := time.Now()
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
}

// Clone возвращает независимую копию заметки.
func (n *Note) Clone() *Note {
	c := *n
	if n.CategoryID != nil {
		id := *n.CategoryID
		c.CategoryID = &id
	}
	return &c
}
