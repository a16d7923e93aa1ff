package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/domain/entities"
	"smartnote/internal/server/adapters/memory"
	"smartnote/internal/server/ports/repositories"
)

func TestNoteRepositoryCreateAndGet(t *testing.T) {
	repo := memory.NewNoteRepository()
	ctx := context.Background()

	note := entities.NewNote("user-1", "Shopping", "milk", nil)
	require.NoError(t, repo.Create(ctx, note))

	found, err := repo.GetByID(ctx, note.ID, "user-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, note.ID, found.ID)
	assert.Equal(t, "Shopping", found.Title)
}

func TestNoteRepositoryGetMissing(t *testing.T) {
	repo := memory.NewNoteRepository()

	found, err := repo.GetByID(context.Background(), "missing", "user-1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestNoteRepositoryUserIsolation(t *testing.T) {
	repo := memory.NewNoteRepository()
	ctx := context.Background()

	note := entities.NewNote("user-1", "Private", "secret", nil)
	require.NoError(t, repo.Create(ctx, note))

	// Чужая заметка недоступна ни чтением, ни списком.
	found, err := repo.GetByID(ctx, note.ID, "user-2")
	require.NoError(t, err)
	assert.Nil(t, found)

	list, err := repo.ListByUserID(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNoteRepositoryListOrder(t *testing.T) {
	repo := memory.NewNoteRepository()
	ctx := context.Background()

	now := time.Now()
	old := entities.NewNote("user-1", "Old", "content", nil)
	old.UpdatedAt = now.Add(-time.Hour)
	fresh := entities.NewNote("user-1", "Fresh", "content", nil)
	fresh.UpdatedAt = now

	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, fresh))

	list, err := repo.ListByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Fresh", list[0].Title)
	assert.Equal(t, "Old", list[1].Title)
}

func TestNoteRepositoryUpdate(t *testing.T) {
	repo := memory.NewNoteRepository()
	ctx := context.Background()

	note := entities.NewNote("user-1", "Shopping", "milk", nil)
	require.NoError(t, repo.Create(ctx, note))

	note.Title = "Groceries"
	require.NoError(t, repo.Update(ctx, note))

	found, err := repo.GetByID(ctx, note.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", found.Title)
}

func TestNoteRepositoryUpdateMissing(t *testing.T) {
	repo := memory.NewNoteRepository()

	note := entities.NewNote("user-1", "Shopping", "milk", nil)
	err := repo.Update(context.Background(), note)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestNoteRepositoryDelete(t *testing.T) {
	repo := memory.NewNoteRepository()
	ctx := context.Background()

	note := entities.NewNote("user-1", "Shopping", "milk", nil)
	require.NoError(t, repo.Create(ctx, note))
	require.NoError(t, repo.Delete(ctx, note.ID, "user-1"))

	found, err := repo.GetByID(ctx, note.ID, "user-1")
	require.NoError(t, err)
	assert.Nil(t, found)

	assert.ErrorIs(t, repo.Delete(ctx, note.ID, "user-1"), repositories.ErrNotFound)
}

func TestNoteRepositoryReturnsCopies(t *testing.T) {
	repo := memory.NewNoteRepository()
	ctx := context.Background()

	note := entities.NewNote("user-1", "Shopping", "milk", nil)
	require.NoError(t, repo.Create(ctx, note))

	found, err := repo.GetByID(ctx, note.ID, "user-1")
	require.NoError(t, err)
	found.Title = "Mutated"

	again, err := repo.GetByID(ctx, note.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Shopping", again.Title)
}
