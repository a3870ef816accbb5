// Package repomanager provides a concrete RepositoryManager for PostgreSQL
// and SQLite, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganatecnica/obradiary/internal/dbx"
	"github.com/ganatecnica/obradiary/internal/server/migrations"
	"github.com/ganatecnica/obradiary/internal/server/repositories/diary"
	"github.com/ganatecnica/obradiary/internal/server/repositories/documents"
	"github.com/ganatecnica/obradiary/internal/server/repositories/projects"
	"github.com/ganatecnica/obradiary/internal/server/repositories/roles"
	"github.com/ganatecnica/obradiary/internal/server/repositories/workers"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends repositories whose handles are bound to one
// SQL dialect, and exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// NewRepositoryManager constructs a RepositoryManager for the dialect.
func NewRepositoryManager(d dbx.Dialect) (*SQLRepositoryManager, error) {
	switch d {
	case dbx.DialectPostgres, dbx.DialectSQLite:
		return &SQLRepositoryManager{dialect: d}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) Workers(db dbx.DBTX) workers.Repository {
	return workers.NewSQLRepository(dbx.Bind(db, m.dialect))
}

func (m *SQLRepositoryManager) Roles(db dbx.DBTX) roles.Repository {
	return roles.NewSQLRepository(dbx.Bind(db, m.dialect))
}

func (m *SQLRepositoryManager) Projects(db dbx.DBTX) projects.Repository {
	return projects.NewSQLRepository(dbx.Bind(db, m.dialect))
}

func (m *SQLRepositoryManager) Diary(db dbx.DBTX) diary.Repository {
	return diary.NewSQLRepository(dbx.Bind(db, m.dialect))
}

func (m *SQLRepositoryManager) Documents(db dbx.DBTX) documents.Repository {
	return documents.NewSQLRepository(dbx.Bind(db, m.dialect))
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations of the
// manager's dialect and runs them against db.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	gooseDialect, dir := "pgx", migrations.PostgresDir
	if m.dialect == dbx.DialectSQLite {
		gooseDialect, dir = "sqlite3", migrations.SQLiteDir
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return err
	}
	return nil
}
