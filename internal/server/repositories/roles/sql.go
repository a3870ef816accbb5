// Package roles provides SQL-backed storage for role definitions.
package roles

import (
	"context"
	"database/sql"

	"github.com/ganatecnica/obradiary/internal/dbx"
	"github.com/ganatecnica/obradiary/internal/server/models"
)

const selectRole = `SELECT id, name, description, color, is_active, created_at FROM roles`

// SQLRepository implements role storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, role *models.Role) error {
	query := `INSERT INTO roles (id, name, description, color, is_active, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, role.ID, role.Name, role.Description, role.Color, role.IsActive, role.CreatedAt.UTC())
	return dbx.StoreError("insert role", err)
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Role, error) {
	role, err := scanRole(r.db.QueryRowContext(ctx, selectRole+` WHERE id=$1`, id))
	if err != nil {
		return nil, dbx.StoreError("select role", err)
	}
	return role, nil
}

// ListActive returns active roles ordered by name.
func (r *SQLRepository) ListActive(ctx context.Context) ([]*models.Role, error) {
	rows, err := r.db.QueryContext(ctx, selectRole+` WHERE is_active=$1 ORDER BY name`, true)
	if err != nil {
		return nil, dbx.StoreError("select roles", err)
	}
	defer rows.Close()

	var result []*models.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, dbx.StoreError("scan role", err)
		}
		result = append(result, role)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.StoreError("select roles", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRole(s scanner) (*models.Role, error) {
	var (
		role models.Role
		desc sql.NullString
	)
	if err := s.Scan(&role.ID, &role.Name, &desc, &role.Color, &role.IsActive, &role.CreatedAt); err != nil {
		return nil, err
	}
	role.Description = desc.String
	return &role, nil
}
