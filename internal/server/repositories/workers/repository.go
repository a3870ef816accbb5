package workers

import (
	"context"

	"github.com/ganatecnica/obradiary/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, w *models.Worker) error
	Get(ctx context.Context, id string) (*models.Worker, error)
}
