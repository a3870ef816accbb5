package dbx

import (
	"context"
	"database/sql"
	"strings"
)

// Dialect names the SQL flavour a handle speaks. Repositories write
// PostgreSQL-style positional placeholders ($1, $2, ...) in every dialect.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Bind returns a DBTX that speaks the given dialect. For PostgreSQL the
// handle is returned unchanged; for SQLite every query is rewritten from
// $N to ?N placeholders before it reaches the driver.
func Bind(db DBTX, d Dialect) DBTX {
	if d != DialectSQLite {
		return db
	}
	return &rebinder{db: db}
}

type rebinder struct {
	db DBTX
}

func (r *rebinder) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, Rebind(query), args...)
}

func (r *rebinder) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, Rebind(query), args...)
}

func (r *rebinder) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.QueryRowContext(ctx, Rebind(query), args...)
}

// Rebind rewrites $N placeholders to the numbered ?N form understood by
// SQLite. Text inside single-quoted literals is left untouched.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query))

	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '$' && !inLiteral && i+1 < len(query) && isDigit(query[i+1]):
			b.WriteByte('?')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
