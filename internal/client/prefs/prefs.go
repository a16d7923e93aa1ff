// Package prefs хранит пользовательские настройки клиента в локальной
// базе SQLite. Сохраняется только состояние списка заметок: фильтр по
// категории, ключ и направление сортировки, последний поисковый запрос.
// Стенограмма диалога и кэш коллекций не переживают перезапуск.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"smartnote/internal/client/store"
)

// listStateKey - ключ состояния списка заметок в таблице настроек.
const listStateKey = "notes_list_state"

// ListState - сохраняемое состояние списка заметок.
type ListState struct {
	Category  *string       `json:"category,omitempty"`
	Sort      store.SortKey `json:"sort"`
	Desc      bool          `json:"desc"`
	LastQuery string        `json:"last_query"`
}

// DefaultListState возвращает состояние списка по умолчанию.
func DefaultListState() ListState {
	return ListState{Sort: store.SortUpdated, Desc: true}
}

// Store - хранилище настроек поверх SQLite.
type Store struct {
	db *sql.DB
}

// Open открывает или создает базу настроек по пути path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init preferences schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close закрывает базу настроек.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveListState сохраняет состояние списка заметок.
func (s *Store) SaveListState(ctx context.Context, state ListState) error {
	value, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode list state: %w", err)
	}

	const query = `INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, listStateKey, string(value)); err != nil {
		return fmt.Errorf("failed to save list state: %w", err)
	}
	return nil
}

// LoadListState возвращает сохраненное состояние списка заметок
// или состояние по умолчанию, если его еще не сохраняли.
func (s *Store) LoadListState(ctx context.Context) (ListState, error) {
	const query = `SELECT value FROM preferences WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, listStateKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultListState(), nil
	}
	if err != nil {
		return DefaultListState(), fmt.Errorf("failed to load list state: %w", err)
	}

	var state ListState
	if err := json.Unmarshal([]byte(value), &state); err != nil {
		return DefaultListState(), fmt.Errorf("failed to decode list state: %w", err)
	}
	if state.Sort == "" {
		state.Sort = store.SortUpdated
	}
	return state, nil
}
