package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"smartnote/internal/domain/entities"
	"smartnote/internal/server/ports/repositories"
	"smartnote/pkg/logger"
)

// CategoryRepository реализует интерфейс repositories.CategoryRepository поверх Postgres.
type CategoryRepository struct {
	pool PgxPool
}

// NewCategoryRepository создает новый репозиторий категорий.
func NewCategoryRepository(pool PgxPool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create сохраняет новую категорию в БД.
func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.Create"))
	log.Debug(ctx, "creating new category", zap.String("userID", category.UserID))

	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, user_id, name, color, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.UserID, category.Name, category.Color, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		log.Error(ctx, "failed to create category", zap.Error(err))
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID получает категорию по ID и ID пользователя.
func (r *CategoryRepository) GetByID(ctx context.Context, categoryID, userID string) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.GetByID"))

	var category entities.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, color, created_at, updated_at
         FROM categories
         WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.Color, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		log.Error(ctx, "failed to get category", zap.Error(err))
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// GetByName ищет категорию пользователя по имени без учета регистра.
func (r *CategoryRepository) GetByName(ctx context.Context, name, userID string) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.GetByName"))

	var category entities.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, color, created_at, updated_at
         FROM categories
         WHERE lower(name) = lower($1) AND user_id = $2`,
		name, userID,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.Color, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		log.Error(ctx, "failed to get category by name", zap.Error(err))
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}

	return &category, nil
}

// ListByUserID получает категории пользователя, отсортированные по имени.
func (r *CategoryRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.ListByUserID"))
	log.Debug(ctx, "listing categories", zap.String("userID", userID))

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, color, created_at, updated_at
         FROM categories
         WHERE user_id = $1
         ORDER BY lower(name)`,
		userID,
	)
	if err != nil {
		log.Error(ctx, "failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*entities.Category, 0)
	for rows.Next() {
		var category entities.Category
		err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Color, &category.CreatedAt, &category.UpdatedAt)
		if err != nil {
			log.Error(ctx, "failed to scan category", zap.Error(err))
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

// Update обновляет существующую категорию.
func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.Update"))

	result, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $1, color = $2, updated_at = $3
         WHERE id = $4 AND user_id = $5`,
		category.Name, category.Color, category.UpdatedAt, category.ID, category.UserID,
	)
	if err != nil {
		log.Error(ctx, "failed to update category", zap.Error(err))
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "category not found or not owned by user")
		return repositories.ErrNotFound
	}

	return nil
}

// Delete удаляет категорию. Ссылки заметок на нее остаются висячими.
func (r *CategoryRepository) Delete(ctx context.Context, categoryID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "CategoryRepository.Delete"))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete category", zap.Error(err))
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "category not found or not owned by user")
		return repositories.ErrNotFound
	}

	return nil
}
