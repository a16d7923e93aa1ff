package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/client/store"
	"smartnote/internal/domain/entities"
)

func TestEnrich(t *testing.T) {
	workID := "cat-work"
	missingID := "cat-missing"

	notes := []*entities.Note{
		{ID: "n1", Title: "Report", CategoryID: &workID},
		{ID: "n2", Title: "Loose note"},
		{ID: "n3", Title: "Dangling", CategoryID: &missingID},
	}
	categories := []*entities.Category{
		{ID: workID, Name: "Work"},
		{ID: "cat-home", Name: "Home"},
	}

	enriched := store.Enrich(notes, categories)
	require.Len(t, enriched, 3)

	// Порядок заметок сохраняется.
	assert.Equal(t, "n1", enriched[0].Note.ID)
	assert.Equal(t, "n2", enriched[1].Note.ID)
	assert.Equal(t, "n3", enriched[2].Note.ID)

	require.NotNil(t, enriched[0].Category)
	assert.Equal(t, "Work", enriched[0].Category.Name)

	// Без категории и с висячей ссылкой - nil.
	assert.Nil(t, enriched[1].Category)
	assert.Nil(t, enriched[2].Category)
}

func TestEnrichEmpty(t *testing.T) {
	assert.Empty(t, store.Enrich(nil, nil))
}
