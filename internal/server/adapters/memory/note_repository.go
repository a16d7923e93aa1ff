// Package memory предоставляет энергозависимые реализации репозиториев.
//
// Хранилище живет в памяти одного процесса и теряется при перезапуске.
// Это штатный бэкенд контракта, а не заглушка для тестов.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"smartnote/internal/domain/entities"
	"smartnote/internal/server/ports/repositories"
	"smartnote/pkg/logger"
)

// NoteRepository реализует интерфейс repositories.NoteRepository поверх map.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*entities.Note
}

// NewNoteRepository создает новый in-memory репозиторий заметок.
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[string]*entities.Note)}
}

// Create сохраняет новую заметку.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[note.ID] = note.Clone()
	return nil
}

// GetByID получает заметку по ID и ID пользователя.
// Возвращает nil, nil если заметка не найдена.
func (r *NoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, nil
	}
	return note.Clone(), nil
}

// ListByUserID получает заметки пользователя, отсортированные по дате изменения.
func (r *NoteRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]*entities.Note, 0)
	for _, note := range r.notes {
		if note.UserID == userID {
			notes = append(notes, note.Clone())
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].UpdatedAt.Equal(notes[j].UpdatedAt) {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		}
		return notes[i].ID < notes[j].ID
	})

	return notes, nil
}

// Update обновляет существующую заметку.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.notes[note.ID]
	if !ok || current.UserID != note.UserID {
		log.Debug(ctx, "note not found or not owned by user", zap.String("noteID", note.ID))
		return repositories.ErrNotFound
	}

	r.notes[note.ID] = note.Clone()
	return nil
}

// Delete удаляет заметку. Удаление отсутствующего ID возвращает ErrNotFound.
func (r *NoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.notes[noteID]
	if !ok || current.UserID != userID {
		log.Debug(ctx, "note not found or not owned by user", zap.String("noteID", noteID))
		return repositories.ErrNotFound
	}

	delete(r.notes, noteID)
	return nil
}
