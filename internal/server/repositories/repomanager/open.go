package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ganatecnica/obradiary/internal/dbx"
	"github.com/ganatecnica/obradiary/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// sqlitePragmas are appended to plain SQLite file paths.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Open connects to the store named by driver ("pgx" or "sqlite") and dsn,
// pings it and returns the handle with a manager for its dialect. For
// SQLite, a plain file path gets its parent directory created and the
// connection pragmas applied.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, *SQLRepositoryManager, error) {
	var dialect dbx.Dialect

	switch driver {
	case DriverPostgres:
		dialect = dbx.DialectPostgres
	case DriverSQLite:
		dialect = dbx.DialectSQLite
		var err error
		if dsn, err = sqliteDSN(dsn); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if dialect == dbx.DialectSQLite {
		// one writer at a time; concurrent writers wait on busy_timeout
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	m, err := NewRepositoryManager(dialect)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, m, nil
}

func sqliteDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, "?") || dsn == ":memory:" {
		return dsn, nil
	}
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return "", fmt.Errorf("sqlite data dir: %w", err)
	}
	return "file:" + dsn + "?" + sqlitePragmas, nil
}
