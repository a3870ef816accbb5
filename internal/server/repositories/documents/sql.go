// Package documents provides SQL-backed storage for project document
// metadata. The binary content is kept in object storage.
package documents

import (
	"context"
	"fmt"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/dbx"
	"github.com/ganatecnica/obradiary/internal/server/models"
)

const selectDocument = `SELECT id, project_id, file_name, content_type, storage_key, upload_status, created_at FROM documents`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, d *models.Document) error {
	query := `
		INSERT INTO documents (id, project_id, file_name, content_type, storage_key, upload_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.ProjectID, d.FileName, d.ContentType, d.StorageKey, d.UploadStatus, d.CreatedAt.UTC())
	return dbx.StoreError("insert document", err)
}

func (r *SQLRepository) Get(ctx context.Context, projectID, id string) (*models.Document, error) {
	var d models.Document
	err := r.db.QueryRowContext(ctx, selectDocument+` WHERE project_id=$1 AND id=$2`, projectID, id).Scan(
		&d.ID, &d.ProjectID, &d.FileName, &d.ContentType, &d.StorageKey, &d.UploadStatus, &d.CreatedAt,
	)
	if err != nil {
		return nil, dbx.StoreError("select document", err)
	}
	return &d, nil
}

func (r *SQLRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Document, error) {
	rows, err := r.db.QueryContext(ctx, selectDocument+` WHERE project_id=$1 ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, dbx.StoreError("select documents", err)
	}
	defer rows.Close()

	result := []*models.Document{}
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.FileName, &d.ContentType, &d.StorageKey, &d.UploadStatus, &d.CreatedAt); err != nil {
			return nil, dbx.StoreError("scan document", err)
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.StoreError("select documents", err)
	}
	return result, nil
}

func (r *SQLRepository) MarkUploaded(ctx context.Context, projectID, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE documents SET upload_status=$3 WHERE project_id=$1 AND id=$2`,
		projectID, id, models.UploadCompleted)
	if err != nil {
		return dbx.StoreError("update document", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dbx.StoreError("update document", err)
	}
	if n == 0 {
		return fmt.Errorf("update document: %w", common.ErrNotFound)
	}
	return nil
}
