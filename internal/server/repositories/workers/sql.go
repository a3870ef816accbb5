// Package workers provides SQL-backed storage for personnel records.
package workers

import (
	"context"

	"github.com/ganatecnica/obradiary/internal/dbx"
	"github.com/ganatecnica/obradiary/internal/server/models"
)

// SQLRepository implements worker storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, w *models.Worker) error {
	query := `INSERT INTO workers (id, name, email, phone, active, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, w.ID, w.Name, w.Email, w.Phone, w.Active, w.CreatedAt.UTC())
	return dbx.StoreError("insert worker", err)
}

// Get returns common.ErrNotFound when no worker has the given id.
func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Worker, error) {
	query := `SELECT id, name, email, phone, active, created_at FROM workers WHERE id=$1`

	var w models.Worker
	err := r.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Name, &w.Email, &w.Phone, &w.Active, &w.CreatedAt)
	if err != nil {
		return nil, dbx.StoreError("select worker", err)
	}
	return &w, nil
}
