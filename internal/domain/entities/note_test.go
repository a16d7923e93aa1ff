package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/undefinedlabs/go-mpatch"

	"smartnote/internal/domain/entities"
)

func patchNow(t *testing.T, fixed time.Time) {
	t.Helper()

	patch, err := mpatch.PatchMethod(time.Now, func() time.Time { return fixed })
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, patch.Unpatch())
	})
}

func TestNewNote(t *testing.T) {
	categoryID := "cat-1"
	note := entities.NewNote("user-1", "Shopping", "milk, bread", &categoryID)

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "user-1", note.UserID)
	assert.Equal(t, "Shopping", note.Title)
	assert.Equal(t, "milk, bread", note.Content)
	require.NotNil(t, note.CategoryID)
	assert.Equal(t, "cat-1", *note.CategoryID)
	assert.True(t, note.UpdatedAt.Equal(note.CreatedAt))
}

func TestNoteTouch(t *testing.T) {
	note := entities.NewNote("user-1", "Shopping", "milk", nil)
	created := note.CreatedAt

	patchNow(t, created.Add(time.Hour))
	note.Touch()

	assert.True(t, note.UpdatedAt.Equal(created.Add(time.Hour)))
	assert.False(t, note.UpdatedAt.Before(note.CreatedAt))
}

func TestNoteTouchClockMovedBack(t *testing.T) {
	note := entities.NewNote("user-1", "Shopping", "milk", nil)
	created := note.CreatedAt

	// Часы переведены назад: UpdatedAt не должен стать раньше CreatedAt.
	patchNow(t, created.Add(-time.Hour))
	note.Touch()

	assert.True(t, note.UpdatedAt.Equal(created))
	assert.False(t, note.UpdatedAt.Before(note.CreatedAt))
}

func TestNoteClone(t *testing.T) {
	categoryID := "cat-1"
	note := entities.NewNote("user-1", "Shopping", "milk", &categoryID)

	clone := note.Clone()
	*clone.CategoryID = "cat-2"
	clone.Title = "Changed"

	assert.Equal(t, "cat-1", *note.CategoryID)
	assert.Equal(t, "Shopping", note.Title)
}

func TestNewCategory(t *testing.T) {
	category := entities.NewCategory("user-1", "Work", "#ff0000")

	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "user-1", category.UserID)
	assert.Equal(t, "Work", category.Name)
	assert.Equal(t, "#ff0000", category.Color)
	assert.True(t, category.UpdatedAt.Equal(category.CreatedAt))
}

func TestValidRole(t *testing.T) {
	assert.True(t, entities.ValidRole(entities.RoleUser))
	assert.True(t, entities.ValidRole(entities.RoleAssistant))
	assert.True(t, entities.ValidRole(entities.RoleSystem))
	assert.False(t, entities.ValidRole("moderator"))
	assert.False(t, entities.ValidRole(""))
}
