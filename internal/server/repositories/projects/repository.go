package projects

import (
	"context"
	"time"

	"github.com/ganatecnica/obradiary/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Project) error
	Get(ctx context.Context, id string) (*models.Project, error)
	// Finalize sets finalized=day and active=false unless the project is
	// already finalized; it reports whether a row changed.
	Finalize(ctx context.Context, id string, day time.Time) (bool, error)
	SetHaveDocuments(ctx context.Context, id string) error

	UpsertPersonnel(ctx context.Context, a *models.PersonnelAssignment) error
	// AssignedRole returns the role the worker holds on the project, or
	// common.ErrNotFound when unassigned or assigned without a role.
	AssignedRole(ctx context.Context, projectID, workerID string) (*models.Role, error)
}
