package entities

import (
	"time"

	"github.com/google/uuid"
)

// Category представляет собой категорию заметок пользователя.
// Имя уникально в рамках пользователя без учета регистра.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory создает новую категорию.
func NewCategory(userID, name, color string) *Category {
	now := time.Now()
	return &Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch обновляет UpdatedAt, не опуская его ниже CreatedAt.
func (c *Category) Touch() {
	now := time.Now()
	if now.Before(c.CreatedAt) {
		now = c.CreatedAt
	}
	c.UpdatedAt = now
}

// Clone возвращает независимую копию категории.
func (c *Category) Clone() *Category {
	cp := *c
	return &cp
}
