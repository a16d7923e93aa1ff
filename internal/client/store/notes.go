// Package store содержит клиентские хранилища состояния: кэшированные
// коллекции заметок и категорий с флагами загрузки и ошибки, обогащение
// заметок категориями и стенограмму диалога с ассистентом.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"smartnote/internal/client/gateway"
	"smartnote/internal/domain/entities"
	"smartnote/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogNotesFetch           = "fetching notes"
	LogNotesEndpointMissing = "notes endpoint missing, treating as empty collection"
)

// NotesGateway - операции API, нужные хранилищу заметок.
type NotesGateway interface {
	ListNotes(ctx context.Context) ([]*entities.Note, error)
	CreateNote(ctx context.Context, input gateway.CreateNoteInput) (*entities.Note, error)
	UpdateNote(ctx context.Context, input gateway.UpdateNoteInput) (*entities.Note, error)
	DeleteNote(ctx context.Context, id string) error
	SearchNotes(ctx context.Context, query string) ([]*entities.Note, error)
}

// Ключи сортировки списка заметок.
type SortKey string

const (
	SortUpdated SortKey = "updated"
	SortCreated SortKey = "created"
	SortTitle   SortKey = "title"
)

// ListOptions - параметры отбора и упорядочивания списка заметок.
// Category == nil означает все заметки; указатель на пустую строку -
// только заметки без категории.
type ListOptions struct {
	Category *string
	Query    string
	Sort     SortKey
	Desc     bool
}

// NotesSnapshot - консистентный срез состояния хранилища.
type NotesSnapshot struct {
	Notes   []*entities.Note
	Loading bool
	Err     string
}

// NotesStore кэширует коллекцию заметок пользователя. Авторитетное
// состояние живет на сервере: каждая мутация применяет к кэшу ответ
// сервера, а не локальный прогноз.
type NotesStore struct {
	gw NotesGateway

	mu      sync.RWMutex
	notes   []*entities.Note
	loading bool
	errMsg  string

	// Мутации одной заметки сериализуются, чтобы параллельные
	// обновление и удаление не оставили кэш в рваном состоянии.
	locks    *keyedLocks
	createMu sync.Mutex
}

// NewNotesStore создает хранилище заметок поверх клиента API.
func NewNotesStore(gw NotesGateway) *NotesStore {
	return &NotesStore{
		gw:    gw,
		notes: []*entities.Note{},
		locks: newKeyedLocks(),
	}
}

// Fetch загружает коллекцию с сервера. Отсутствие endpoint означает
// пустую коллекцию, а не ошибку.
func (s *NotesStore) Fetch(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Debug(ctx, LogNotesFetch)

	s.setLoading(true)
	defer s.setLoading(false)

	notes, err := s.gw.ListNotes(ctx)
	if err != nil {
		if gateway.IsEndpointMissing(err) {
			log.Debug(ctx, LogNotesEndpointMissing)
			s.replaceAll([]*entities.Note{}, "")
			return nil
		}
		s.setError(FriendlyMessage(err))
		return err
	}

	if notes == nil {
		notes = []*entities.Note{}
	}
	s.replaceAll(notes, "")
	return nil
}

// Create создает заметку и добавляет ответ сервера в кэш.
func (s *NotesStore) Create(ctx context.Context, input gateway.CreateNoteInput) (*entities.Note, error) {
	s.createMu.Lock()
	defer s.createMu.Unlock()

	note, err := s.gw.CreateNote(ctx, input)
	if err != nil {
		s.setError(FriendlyMessage(err))
		return nil, err
	}

	s.mu.Lock()
	s.notes = append([]*entities.Note{note}, s.notes...)
	s.errMsg = ""
	s.mu.Unlock()

	return note, nil
}

// Update полностью заменяет заметку и применяет ответ сервера к кэшу.
func (s *NotesStore) Update(ctx context.Context, input gateway.UpdateNoteInput) (*entities.Note, error) {
	lock := s.locks.get(input.ID)
	lock.Lock()
	defer lock.Unlock()

	note, err := s.gw.UpdateNote(ctx, input)
	if err != nil {
		s.setError(FriendlyMessage(err))
		return nil, err
	}

	s.mu.Lock()
	for i, cached := range s.notes {
		if cached.ID == note.ID {
			s.notes[i] = note
			break
		}
	}
	s.errMsg = ""
	s.mu.Unlock()

	return note, nil
}

// Delete удаляет заметку и убирает ее из кэша.
func (s *NotesStore) Delete(ctx context.Context, id string) error {
	lock := s.locks.get(id)
	lock.Lock()
	defer lock.Unlock()

	if err := s.gw.DeleteNote(ctx, id); err != nil {
		s.setError(FriendlyMessage(err))
		return err
	}

	s.mu.Lock()
	filtered := s.notes[:0]
	for _, cached := range s.notes {
		if cached.ID != id {
			filtered = append(filtered, cached)
		}
	}
	s.notes = filtered
	s.errMsg = ""
	s.mu.Unlock()

	return nil
}

// Search ищет заметки на сервере, не трогая кэшированную коллекцию.
func (s *NotesStore) Search(ctx context.Context, query string) ([]*entities.Note, error) {
	notes, err := s.gw.SearchNotes(ctx, query)
	if err != nil {
		s.setError(FriendlyMessage(err))
		return nil, err
	}
	if notes == nil {
		notes = []*entities.Note{}
	}
	return notes, nil
}

// Snapshot возвращает консистентный срез состояния.
func (s *NotesStore) Snapshot() NotesSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]*entities.Note, len(s.notes))
	copy(notes, s.notes)
	return NotesSnapshot{Notes: notes, Loading: s.loading, Err: s.errMsg}
}

// Notes возвращает кэшированную коллекцию.
func (s *NotesStore) Notes() []*entities.Note {
	return s.Snapshot().Notes
}

// List возвращает кэшированные заметки, отобранные и упорядоченные
// по opts. Кэш не меняется.
func (s *NotesStore) List(opts ListOptions) []*entities.Note {
	notes := s.Notes()

	if opts.Category != nil {
		filtered := make([]*entities.Note, 0, len(notes))
		for _, note := range notes {
			switch {
			case *opts.Category == "" && note.CategoryID == nil:
				filtered = append(filtered, note)
			case note.CategoryID != nil && *note.CategoryID == *opts.Category:
				filtered = append(filtered, note)
			}
		}
		notes = filtered
	}

	if opts.Query != "" {
		notes = gateway.FilterNotes(notes, opts.Query)
	}

	sortNotes(notes, opts.Sort, opts.Desc)
	return notes
}

// sortNotes упорядочивает заметки по ключу. Равные значения
// упорядочиваются по идентификатору для стабильного результата.
func sortNotes(notes []*entities.Note, key SortKey, desc bool) {
	less := func(i, j int) bool {
		a, b := notes[i], notes[j]
		switch key {
		case SortTitle:
			if !strings.EqualFold(a.Title, b.Title) {
				return strings.ToLower(a.Title) < strings.ToLower(b.Title)
			}
		case SortCreated:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		default:
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
		}
		return a.ID < b.ID
	}

	if desc {
		sort.SliceStable(notes, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(notes, less)
}

// replaceAll заменяет коллекцию и сообщение об ошибке атомарно.
func (s *NotesStore) replaceAll(notes []*entities.Note, errMsg string) {
	s.mu.Lock()
	s.notes = notes
	s.errMsg = errMsg
	s.mu.Unlock()
}

func (s *NotesStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *NotesStore) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}
