// Package dto содержит тела запросов и ответов HTTP API.
package dto

import (
	"smartnote/internal/domain/entities"
)

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	CategoryID *string `json:"category_id"`
}

// UpdateNoteRequest содержит полную замену изменяемых полей заметки.
// Идентификатор передается в теле, не в пути.
type UpdateNoteRequest struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	CategoryID *string `json:"category_id"`
}

// DeleteRequest содержит идентификатор удаляемой сущности.
// Идентификатор передается в теле, не в пути.
type DeleteRequest struct {
	ID string `json:"id"`
}

// NoteResponse - конверт одиночной заметки.
type NoteResponse struct {
	Note *entities.Note `json:"note"`
}

// NotesResponse - конверт коллекции заметок.
type NotesResponse struct {
	Notes []*entities.Note `json:"notes"`
}

// CreateCategoryRequest содержит данные для создания категории.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UpdateCategoryRequest содержит полную замену изменяемых полей категории.
type UpdateCategoryRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryResponse - конверт одиночной категории.
type CategoryResponse struct {
	Category *entities.Category `json:"category"`
}

// CategoriesResponse - конверт коллекции категорий.
type CategoriesResponse struct {
	Categories []*entities.Category `json:"categories"`
}

// ChatRequest содержит полную историю диалога.
type ChatRequest struct {
	Messages []entities.ChatMessage `json:"messages"`
}

// ChatResponse содержит ответ ассистента и заметки, попавшие в контекст.
type ChatResponse struct {
	Content      string           `json:"content"`
	RelatedNotes []*entities.Note `json:"relatedNotes,omitempty"`
}
