// Package app реализует бизнес-логику приложения на стороне сервера.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"smartnote/internal/domain/entities"
	cachePorts "smartnote/internal/server/ports/cache"
	"smartnote/internal/server/ports/repositories"
	"smartnote/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound       = errors.New("entity not found")
	ErrInvalidParams  = errors.New("invalid parameters")
	ErrCategoryExists = errors.New("category with this name already exists")
)

// Константы для логирования.
const (
	LogUseCaseCreateNote = "note use case: create note"
	LogUseCaseListNotes  = "note use case: list notes"
	LogUseCaseSearch     = "note use case: search notes"
	LogUseCaseUpdateNote = "note use case: update note"
	LogUseCaseDeleteNote = "note use case: delete note"

	LogCacheHit        = "notes list served from cache"
	ErrorCacheDecode   = "failed to decode cached notes list"
	ErrorCacheWrite    = "failed to cache notes list"
	ErrorCacheInvalide = "failed to invalidate notes cache"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	cache    cachePorts.Cache
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, cache cachePorts.Cache) *NoteUseCase {
	return &NoteUseCase{
		noteRepo: noteRepo,
		cache:    cache,
	}
}

// notesCacheKey возвращает ключ кэша списка заметок пользователя.
func notesCacheKey(userID string) string {
	return "notes:" + userID
}

// CreateNote создает новую заметку. Заголовок и содержимое обязательны.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID, title, content string, categoryID *string) (*entities.Note, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseCreateNote)

	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("title and content are required: %w", ErrInvalidParams)
	}

	note := entities.NewNote(userID, title, content, categoryID)
	if err := uc.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	uc.invalidate(ctx, userID)
	return note, nil
}

// ListNotes возвращает заметки пользователя, при возможности из кэша.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseListNotes)

	key := notesCacheKey(userID)
	if cached, err := uc.cache.Get(ctx, key); err == nil && cached != "" {
		var notes []*entities.Note
		if err := json.Unmarshal([]byte(cached), &notes); err == nil {
			log.Debug(ctx, LogCacheHit)
			return notes, nil
		}
		log.Warn(ctx, ErrorCacheDecode)
	}

	notes, err := uc.noteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	if encoded, err := json.Marshal(notes); err == nil {
		if err := uc.cache.Set(ctx, key, string(encoded), 0); err != nil {
			log.Warn(ctx, ErrorCacheWrite, zap.Error(err))
		}
	}

	return notes, nil
}

// SearchNotes возвращает заметки, содержащие запрос в заголовке или содержимом
// без учета регистра. Пустой запрос возвращает всю коллекцию.
func (uc *NoteUseCase) SearchNotes(ctx context.Context, userID, query string) ([]*entities.Note, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseSearch)

	notes, err := uc.ListNotes(ctx, userID)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return notes, nil
	}

	matched := make([]*entities.Note, 0)
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Title), query) ||
			strings.Contains(strings.ToLower(note.Content), query) {
			matched = append(matched, note)
		}
	}

	return matched, nil
}

// UpdateNote выполняет полную замену изменяемых полей заметки.
// ID, владелец и CreatedAt неизменяемы; UpdatedAt не убывает.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, userID, noteID, title, content string, categoryID *string) (*entities.Note, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseUpdateNote)

	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required: %w", ErrInvalidParams)
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	note.Title = title
	note.Content = content
	note.CategoryID = categoryID
	note.Touch()

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	uc.invalidate(ctx, userID)
	return note, nil
}

// DeleteNote удаляет заметку. Отсутствующий ID дает ErrNotFound.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID string) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseDeleteNote)

	if err := uc.noteRepo.Delete(ctx, noteID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	uc.invalidate(ctx, userID)
	return nil
}

// invalidate сбрасывает кэш списка заметок пользователя. Ошибка кэша не фатальна.
func (uc *NoteUseCase) invalidate(ctx context.Context, userID string) {
	if err := uc.cache.Delete(ctx, notesCacheKey(userID)); err != nil {
		logger.Log(ctx).Warn(ctx, ErrorCacheInvalide, zap.Error(err))
	}
}
