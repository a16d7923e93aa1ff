// Package postgres предоставляет реализации репозиториев поверх PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool описывает подмножество pgxpool.Pool, используемое репозиториями.
// Выделено в интерфейс для подмены в тестах.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repositories связывает репозитории с одним пулом соединений.
type Repositories struct {
	pool PgxPool
}

// NewRepositories создает набор репозиториев поверх пула.
func NewRepositories(pool PgxPool) *Repositories {
	return &Repositories{pool: pool}
}

// Notes возвращает репозиторий заметок.
func (r *Repositories) Notes() *NoteRepository {
	return NewNoteRepository(r.pool)
}

// Categories возвращает репозиторий категорий.
func (r *Repositories) Categories() *CategoryRepository {
	return NewCategoryRepository(r.pool)
}
