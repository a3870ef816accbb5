package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/dbx"
	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type CreateProjectInput struct {
	Name         string
	CustomerName string
	Address      string
	Email        string
	Phone        string
}

type AssignPersonnelInput struct {
	WorkerID string
	RoleID   string
	Notes    string
}

// ProjectService manages projects, their personnel and finalization.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	loc         *time.Location
	now         func() time.Time
}

func NewProjectService(db *sql.DB, repomanager repomanager.RepositoryManager, loc *time.Location) *ProjectService {
	return &ProjectService{db: db, repomanager: repomanager, loc: loc, now: time.Now}
}

func (s *ProjectService) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}

	p := &models.Project{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		CustomerName: in.CustomerName,
		Address:      in.Address,
		Email:        in.Email,
		Phone:        in.Phone,
		Active:       true,
		CreatedAt:    s.now(),
	}
	if err := s.repomanager.Projects(s.db).Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	p, err := s.repomanager.Projects(s.db).Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", id, err)
	}
	return s.localizeProject(p), nil
}

// Finalize closes the project for good: finalized is set to day and active
// cleared in one conditional write. A second call fails with
// common.ErrAlreadyFinalized and leaves the first date in place.
func (s *ProjectService) Finalize(ctx context.Context, id string, day time.Time) (*models.Project, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if day.IsZero() {
		return nil, fmt.Errorf("%w: finalizedDate is required", common.ErrValidation)
	}

	repo := s.repomanager.Projects(s.db)

	changed, err := repo.Finalize(ctx, id, day)
	if err != nil {
		return nil, err
	}

	p, err := repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", id, err)
	}
	if !changed {
		return nil, common.ErrAlreadyFinalized
	}
	return s.localizeProject(p), nil
}

// AssignPersonnel puts a worker on the project, replacing any earlier role.
// ClockIn snapshots the role assigned here.
func (s *ProjectService) AssignPersonnel(ctx context.Context, projectID string, in AssignPersonnelInput) (*models.PersonnelAssignment, error) {
	if err := requireID("id", projectID); err != nil {
		return nil, err
	}
	if err := requireID("workerId", in.WorkerID); err != nil {
		return nil, err
	}
	if in.RoleID != "" {
		if err := requireID("roleId", in.RoleID); err != nil {
			return nil, err
		}
	}

	a := &models.PersonnelAssignment{ProjectID: projectID, WorkerID: in.WorkerID, RoleID: in.RoleID, Notes: in.Notes}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Projects(tx).Get(ctx, projectID); err != nil {
			return fmt.Errorf("project %s: %w", projectID, err)
		}
		if _, err := s.repomanager.Workers(tx).Get(ctx, in.WorkerID); err != nil {
			return fmt.Errorf("worker %s: %w", in.WorkerID, err)
		}
		if in.RoleID != "" {
			if _, err := s.repomanager.Roles(tx).Get(ctx, in.RoleID); err != nil {
				return fmt.Errorf("role %s: %w", in.RoleID, err)
			}
		}
		return s.repomanager.Projects(tx).UpsertPersonnel(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ProjectService) localizeProject(p *models.Project) *models.Project {
	if p.Finalized != nil {
		d := time.Date(p.Finalized.Year(), p.Finalized.Month(), p.Finalized.Day(), 0, 0, 0, 0, s.loc)
		p.Finalized = &d
	}
	return p
}
