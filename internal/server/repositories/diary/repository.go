package diary

import (
	"context"
	"time"

	"github.com/ganatecnica/obradiary/internal/server/models"
)

// Filter narrows List. Empty fields do not constrain. Day, when set,
// overrides From and To.
type Filter struct {
	ProjectID   string
	WorkerID    string
	Day         *time.Time
	From        *time.Time
	To          *time.Time
	MaestroOnly bool
}

type Repository interface {
	// Create inserts a new entry; a clash on (project, worker, day) returns
	// common.ErrDuplicateEntry.
	Create(ctx context.Context, e *models.DiaryEntry) error
	Get(ctx context.Context, id string) (*models.DiaryEntry, error)
	FindByKey(ctx context.Context, projectID, workerID string, day time.Time) (*models.DiaryEntry, error)
	// Close sets end_time on an entry that is still open. It returns false
	// when the entry was already closed.
	Close(ctx context.Context, id string, end time.Time, notes *string, at time.Time) (bool, error)
	Update(ctx context.Context, id string, start time.Time, end *time.Time, notes string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// List returns matching entries ordered by day, then start time, newest first.
	List(ctx context.Context, f Filter) ([]*models.DiaryEntry, error)
}
