package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"smartnote/internal/domain/entities"
	"smartnote/internal/server/ports/repositories"
	"smartnote/pkg/logger"
)

// Константы для логирования.
const (
	LogUseCaseCreateCategory = "category use case: create category"
	LogUseCaseListCategories = "category use case: list categories"
	LogUseCaseUpdateCategory = "category use case: update category"
	LogUseCaseDeleteCategory = "category use case: delete category"
)

// CategoryUseCase представляет собой бизнес-логику работы с категориями.
type CategoryUseCase struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryUseCase создает новый экземпляр CategoryUseCase.
func NewCategoryUseCase(categoryRepo repositories.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// CreateCategory создает новую категорию. Имя обязательно и уникально
// в рамках пользователя без учета регистра.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, userID, name, color string) (*entities.Category, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseCreateCategory)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrInvalidParams)
	}

	existing, err := uc.categoryRepo.GetByName(ctx, name, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := entities.NewCategory(userID, name, color)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// ListCategories возвращает категории пользователя.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, userID string) ([]*entities.Category, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseListCategories)

	categories, err := uc.categoryRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// UpdateCategory обновляет имя и цвет категории с проверкой уникальности имени.
func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, userID, categoryID, name, color string) (*entities.Category, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseUpdateCategory)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrInvalidParams)
	}

	category, err := uc.categoryRepo.GetByID(ctx, categoryID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, ErrNotFound
	}

	existing, err := uc.categoryRepo.GetByName(ctx, name, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil && existing.ID != categoryID {
		return nil, ErrCategoryExists
	}

	category.Name = name
	category.Color = color
	category.Touch()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory удаляет категорию. Заметки с ссылкой на нее не изменяются:
// висячие ссылки разрешает клиентская сторона.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogUseCaseDeleteCategory)

	if err := uc.categoryRepo.Delete(ctx, categoryID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
