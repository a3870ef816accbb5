// Package projects provides SQL-backed storage for projects and their
// personnel-role assignments.
package projects

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/dbx"
	"github.com/ganatecnica/obradiary/internal/server/models"
)

// SQLRepository implements project storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, p *models.Project) error {
	query := `
		INSERT INTO projects (id, name, customer_name, address, email, phone, have_documents, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.CustomerName, p.Address, p.Email, p.Phone, p.HaveDocuments, p.Active, p.CreatedAt.UTC())
	return dbx.StoreError("insert project", err)
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	query := `
		SELECT id, name, customer_name, address, email, phone, have_documents, active, finalized, created_at
		FROM projects WHERE id=$1`

	var (
		p         models.Project
		finalized dbx.Day
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.CustomerName, &p.Address, &p.Email, &p.Phone,
		&p.HaveDocuments, &p.Active, &finalized, &p.CreatedAt,
	)
	if err != nil {
		return nil, dbx.StoreError("select project", err)
	}
	if finalized.Valid {
		p.Finalized = &finalized.Time
	}
	return &p, nil
}

func (r *SQLRepository) Finalize(ctx context.Context, id string, day time.Time) (bool, error) {
	query := `UPDATE projects SET finalized=$2, active=$3 WHERE id=$1 AND finalized IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, dbx.DayArg(day), false)
	if err != nil {
		return false, dbx.StoreError("finalize project", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, dbx.StoreError("finalize project", err)
	}
	return n == 1, nil
}

func (r *SQLRepository) SetHaveDocuments(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE projects SET have_documents=$2 WHERE id=$1`, id, true)
	if err != nil {
		return dbx.StoreError("update project", err)
	}
	return expectOne(res, "update project")
}

// UpsertPersonnel assigns the worker to the project, replacing any
// previous role and notes.
func (r *SQLRepository) UpsertPersonnel(ctx context.Context, a *models.PersonnelAssignment) error {
	query := `
		INSERT INTO project_personnel (project_id, worker_id, role_id, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id, worker_id)
		DO UPDATE SET role_id = EXCLUDED.role_id, notes = EXCLUDED.notes`
	roleID := sql.NullString{String: a.RoleID, Valid: a.RoleID != ""}
	_, err := r.db.ExecContext(ctx, query, a.ProjectID, a.WorkerID, roleID, a.Notes)
	return dbx.StoreError("upsert personnel", err)
}

func (r *SQLRepository) AssignedRole(ctx context.Context, projectID, workerID string) (*models.Role, error) {
	query := `
		SELECT r.id, r.name, r.description, r.color, r.is_active, r.created_at
		FROM project_personnel pp
		JOIN roles r ON r.id = pp.role_id
		WHERE pp.project_id=$1 AND pp.worker_id=$2`

	var role models.Role
	err := r.db.QueryRowContext(ctx, query, projectID, workerID).Scan(
		&role.ID, &role.Name, &role.Description, &role.Color, &role.IsActive, &role.CreatedAt,
	)
	if err != nil {
		return nil, dbx.StoreError("select assigned role", err)
	}
	return &role, nil
}

func expectOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return dbx.StoreError(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, common.ErrNotFound)
	}
	return nil
}
