package documents

import (
	"context"

	"github.com/ganatecnica/obradiary/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, d *models.Document) error
	Get(ctx context.Context, projectID, id string) (*models.Document, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.Document, error)
	MarkUploaded(ctx context.Context, projectID, id string) error
}
