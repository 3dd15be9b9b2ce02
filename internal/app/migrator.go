package app

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Migrator обёртка над goose для применения embedded миграций
type Migrator struct {
	db         *sql.DB
	migrations fs.FS
}

// NewMigrator создает новый мигратор
func NewMigrator(db *sql.DB, migrations fs.FS) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("app: set goose dialect: %w", err)
	}
	goose.SetBaseFS(migrations)

	return &Migrator{db: db, migrations: migrations}, nil
}

// Run применяет все pending миграции
func (m *Migrator) Run(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, "migrations"); err != nil {
		return fmt.Errorf("app: apply migrations: %w", err)
	}
	return nil
}

// Version возвращает текущую версию схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("app: get schema version: %w", err)
	}
	return version, nil
}

// EnsureSchema повторно применяет миграции
// Используется как одноразовое самовосстановление, когда рабочая таблица
// оказалась удаленной (например после частичного восстановления БД)
func (m *Migrator) EnsureSchema(ctx context.Context) error {
	return m.Run(ctx)
}
