package roles

import (
	"context"

	"github.com/ganatecnica/obradiary/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.Role) error
	Get(ctx context.Context, id string) (*models.Role, error)
	ListActive(ctx context.Context) ([]*models.Role, error)
}
