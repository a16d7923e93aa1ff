package store

import (
	"context"
	"sync"

	"smartnote/internal/client/gateway"
	"smartnote/internal/domain/entities"
	"smartnote/pkg/logger"
)

// LogCategoriesFetch - сообщение логирования загрузки категорий.
const LogCategoriesFetch = "fetching categories"

// CategoriesGateway - операции API, нужные хранилищу категорий.
type CategoriesGateway interface {
	ListCategories(ctx context.Context) ([]*entities.Category, error)
	CreateCategory(ctx context.Context, input gateway.CreateCategoryInput) (*entities.Category, error)
	UpdateCategory(ctx context.Context, input gateway.UpdateCategoryInput) (*entities.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CategoriesSnapshot - консистентный срез состояния хранилища.
type CategoriesSnapshot struct {
	Categories []*entities.Category
	Loading    bool
	Err        string
}

// CategoriesStore кэширует коллекцию категорий пользователя.
type CategoriesStore struct {
	gw CategoriesGateway

	mu         sync.RWMutex
	categories []*entities.Category
	loading    bool
	errMsg     string

	locks    *keyedLocks
	createMu sync.Mutex
}

// NewCategoriesStore создает хранилище категорий поверх клиента API.
func NewCategoriesStore(gw CategoriesGateway) *CategoriesStore {
	return &CategoriesStore{
		gw:         gw,
		categories: []*entities.Category{},
		locks:      newKeyedLocks(),
	}
}

// Fetch загружает коллекцию с сервера. Отсутствие endpoint означает
// пустую коллекцию, а не ошибку.
func (s *CategoriesStore) Fetch(ctx context.Context) error {
	logger.Log(ctx).Debug(ctx, LogCategoriesFetch)

	s.setLoading(true)
	defer s.setLoading(false)

	categories, err := s.gw.ListCategories(ctx)
	if err != nil {
		if gateway.IsEndpointMissing(err) {
			s.replaceAll([]*entities.Category{}, "")
			return nil
		}
		s.setError(FriendlyMessage(err))
		return err
	}

	if categories == nil {
		categories = []*entities.Category{}
	}
	s.replaceAll(categories, "")
	return nil
}

// Create создает категорию и добавляет ответ сервера в кэш.
func (s *CategoriesStore) Create(ctx context.Context, input gateway.CreateCategoryInput) (*entities.Category, error) {
	s.createMu.Lock()
	defer s.createMu.Unlock()

	category, err := s.gw.CreateCategory(ctx, input)
	if err != nil {
		s.setError(FriendlyMessage(err))
		return nil, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, category)
	s.errMsg = ""
	s.mu.Unlock()

	return category, nil
}

// Update полностью заменяет категорию и применяет ответ сервера к кэшу.
func (s *CategoriesStore) Update(ctx context.Context, input gateway.UpdateCategoryInput) (*entities.Category, error) {
	lock := s.locks.get(input.ID)
	lock.Lock()
	defer lock.Unlock()

	category, err := s.gw.UpdateCategory(ctx, input)
	if err != nil {
		s.setError(FriendlyMessage(err))
		return nil, err
	}

	s.mu.Lock()
	for i, cached := range s.categories {
		if cached.ID == category.ID {
			s.categories[i] = category
			break
		}
	}
	s.errMsg = ""
	s.mu.Unlock()

	return category, nil
}

// Delete удаляет категорию и убирает ее из кэша. Заметки, ссылавшиеся
// на категорию, остаются: обогащение покажет их без категории.
func (s *CategoriesStore) Delete(ctx context.Context, id string) error {
	lock := s.locks.get(id)
	lock.Lock()
	defer lock.Unlock()

	if err := s.gw.DeleteCategory(ctx, id); err != nil {
		s.setError(FriendlyMessage(err))
		return err
	}

	s.mu.Lock()
	filtered := s.categories[:0]
	for _, cached := range s.categories {
		if cached.ID != id {
			filtered = append(filtered, cached)
		}
	}
	s.categories = filtered
	s.errMsg = ""
	s.mu.Unlock()

	return nil
}

// Snapshot возвращает консистентный срез состояния.
func (s *CategoriesStore) Snapshot() CategoriesSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]*entities.Category, len(s.categories))
	copy(categories, s.categories)
	return CategoriesSnapshot{Categories: categories, Loading: s.loading, Err: s.errMsg}
}

// Categories возвращает кэшированную коллекцию.
func (s *CategoriesStore) Categories() []*entities.Category {
	return s.Snapshot().Categories
}

func (s *CategoriesStore) replaceAll(categories []*entities.Category, errMsg string) {
	s.mu.Lock()
	s.categories = categories
	s.errMsg = errMsg
	s.mu.Unlock()
}

func (s *CategoriesStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *CategoriesStore) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}
