// Package repositories определяет интерфейсы репозиториев серверной части.
package repositories

import (
	"context"
	"errors"

	"smartnote/internal/domain/entities"
)

// ErrNotFound возвращается, когда сущность отсутствует или принадлежит другому пользователю.
var ErrNotFound = errors.New("entity not found")

// NoteRepository определяет интерфейс хранилища заметок.
// Все операции ограничены заметками указанного пользователя.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) error
	GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error)
	ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, noteID, userID string) error
}
