package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/server/adapters/memory"
	"smartnote/internal/server/app"
)

func newCategoryUseCase() *app.CategoryUseCase {
	return app.NewCategoryUseCase(memory.NewCategoryRepository())
}

func TestCreateCategory(t *testing.T) {
	uc := newCategoryUseCase()

	category, err := uc.CreateCategory(context.Background(), "user-1", "Work", "#ff0000")
	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Work", category.Name)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	uc := newCategoryUseCase()
	ctx := context.Background()

	_, err := uc.CreateCategory(ctx, "user-1", "Work", "#ff0000")
	require.NoError(t, err)

	// Уникальность без учета регистра в рамках одного пользователя.
	_, err = uc.CreateCategory(ctx, "user-1", "wOrK", "#00ff00")
	assert.ErrorIs(t, err, app.ErrCategoryExists)

	// Другой пользователь может использовать то же имя.
	_, err = uc.CreateCategory(ctx, "user-2", "Work", "#00ff00")
	assert.NoError(t, err)
}

func TestCreateCategoryValidation(t *testing.T) {
	uc := newCategoryUseCase()

	_, err := uc.CreateCategory(context.Background(), "user-1", "   ", "#fff")
	assert.ErrorIs(t, err, app.ErrInvalidParams)
}

func TestUpdateCategory(t *testing.T) {
	uc := newCategoryUseCase()
	ctx := context.Background()

	category, err := uc.CreateCategory(ctx, "user-1", "Work", "#ff0000")
	require.NoError(t, err)

	// Смена регистра собственного имени не конфликт.
	updated, err := uc.UpdateCategory(ctx, "user-1", category.ID, "WORK", "#00ff00")
	require.NoError(t, err)
	assert.Equal(t, "WORK", updated.Name)
	assert.Equal(t, "#00ff00", updated.Color)
}

func TestUpdateCategoryDuplicateName(t *testing.T) {
	uc := newCategoryUseCase()
	ctx := context.Background()

	_, err := uc.CreateCategory(ctx, "user-1", "Work", "#ff0000")
	require.NoError(t, err)
	other, err := uc.CreateCategory(ctx, "user-1", "Home", "#00ff00")
	require.NoError(t, err)

	_, err = uc.UpdateCategory(ctx, "user-1", other.ID, "work", "#0000ff")
	assert.ErrorIs(t, err, app.ErrCategoryExists)
}

func TestUpdateCategoryMissing(t *testing.T) {
	uc := newCategoryUseCase()

	_, err := uc.UpdateCategory(context.Background(), "user-1", "missing", "Work", "#fff")
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestDeleteCategory(t *testing.T) {
	uc := newCategoryUseCase()
	ctx := context.Background()

	category, err := uc.CreateCategory(ctx, "user-1", "Work", "#ff0000")
	require.NoError(t, err)

	require.NoError(t, uc.DeleteCategory(ctx, "user-1", category.ID))
	assert.ErrorIs(t, uc.DeleteCategory(ctx, "user-1", category.ID), app.ErrNotFound)
}
