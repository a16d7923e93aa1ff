package repositories

import (
	"context"

	"smartnote/internal/domain/entities"
)

// CategoryRepository определяет интерфейс хранилища категорий.
// Удаление категории не каскадирует на заметки: висячие ссылки
// разрешаются на стороне клиента.
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, categoryID, userID string) (*entities.Category, error)
	// GetByName ищет категорию по имени без учета регистра.
	// Возвращает nil, nil если категория не найдена.
	GetByName(ctx context.Context, name, userID string) (*entities.Category, error)
	ListByUserID(ctx context.Context, userID string) ([]*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, categoryID, userID string) error
}
