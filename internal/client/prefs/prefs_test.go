package prefs_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/client/prefs"
	"smartnote/internal/client/store"
)

func openStore(t *testing.T, path string) *prefs.Store {
	t.Helper()

	s, err := prefs.Open(context.Background(), path)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func TestLoadListStateDefault(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	state, err := s.LoadListState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.SortUpdated, state.Sort)
	assert.True(t, state.Desc)
	assert.Nil(t, state.Category)
	assert.Empty(t, state.LastQuery)
}

func TestSaveAndLoadListState(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))
	ctx := context.Background()

	categoryID := "cat-1"
	saved := prefs.ListState{
		Category:  &categoryID,
		Sort:      store.SortTitle,
		Desc:      false,
		LastQuery: "grocery",
	}
	require.NoError(t, s.SaveListState(ctx, saved))

	loaded, err := s.LoadListState(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded.Category)
	assert.Equal(t, "cat-1", *loaded.Category)
	assert.Equal(t, store.SortTitle, loaded.Sort)
	assert.False(t, loaded.Desc)
	assert.Equal(t, "grocery", loaded.LastQuery)
}

func TestSaveListStateOverwrites(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))
	ctx := context.Background()

	require.NoError(t, s.SaveListState(ctx, prefs.ListState{Sort: store.SortTitle}))
	require.NoError(t, s.SaveListState(ctx, prefs.ListState{Sort: store.SortCreated, LastQuery: "milk"}))

	loaded, err := s.LoadListState(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.SortCreated, loaded.Sort)
	assert.Equal(t, "milk", loaded.LastQuery)
}

func TestListStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	first, err := prefs.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.SaveListState(ctx, prefs.ListState{Sort: store.SortTitle, LastQuery: "bread"}))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	loaded, err := second.LoadListState(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.SortTitle, loaded.Sort)
	assert.Equal(t, "bread", loaded.LastQuery)
}
