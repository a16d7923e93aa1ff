package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"smartnote/internal/domain/entities"
	"smartnote/internal/server/ports/repositories"
	"smartnote/pkg/logger"
)

// CategoryRepository реализует интерфейс repositories.CategoryRepository поверх map.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*entities.Category
}

// NewCategoryRepository создает новый in-memory репозиторий категорий.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string]*entities.Category)}
}

// Create сохраняет новую категорию.
func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.Create"))
	log.Debug(ctx, "creating new category", zap.String("userID", category.UserID))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = category.Clone()
	return nil
}

// GetByID получает категорию по ID и ID пользователя.
// Возвращает nil, nil если категория не найдена.
func (r *CategoryRepository) GetByID(ctx context.Context, categoryID, userID string) (*entities.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[categoryID]
	if !ok || category.UserID != userID {
		return nil, nil
	}
	return category.Clone(), nil
}

// GetByName ищет категорию пользователя по имени без учета регистра.
func (r *CategoryRepository) GetByName(ctx context.Context, name, userID string) (*entities.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.categories {
		if category.UserID == userID && strings.EqualFold(category.Name, name) {
			return category.Clone(), nil
		}
	}
	return nil, nil
}

// ListByUserID получает категории пользователя, отсортированные по имени.
func (r *CategoryRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*entities.Category, 0)
	for _, category := range r.categories {
		if category.UserID == userID {
			categories = append(categories, category.Clone())
		}
	}

	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})

	return categories, nil
}

// Update обновляет существующую категорию.
func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.Update"))

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.categories[category.ID]
	if !ok || current.UserID != category.UserID {
		log.Debug(ctx, "category not found or not owned by user", zap.String("categoryID", category.ID))
		return repositories.ErrNotFound
	}

	r.categories[category.ID] = category.Clone()
	return nil
}

// Delete удаляет категорию. Заметки с ссылкой на нее не затрагиваются.
func (r *CategoryRepository) Delete(ctx context.Context, categoryID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.Delete"))

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.categories[categoryID]
	if !ok || current.UserID != userID {
		log.Debug(ctx, "category not found or not owned by user", zap.String("categoryID", categoryID))
		return repositories.ErrNotFound
	}

	delete(r.categories, categoryID)
	return nil
}
