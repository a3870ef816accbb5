package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/server/repositories/repomanager"
	"github.com/ganatecnica/obradiary/internal/timex"
	"github.com/google/uuid"
)

type ClockInInput struct {
	ProjectID string
	WorkerID  string
	// StartTime defaults to now.
	StartTime *time.Time
	// EndTime records a finished day in one step.
	EndTime   *time.Time
	Notes     string
	IsMaestro bool
}

type ClockOutInput struct {
	ProjectID string
	WorkerID  string
	// EndTime defaults to now and also selects the day to close.
	EndTime *time.Time
	// Notes replaces the entry's notes when non-empty.
	Notes string
}

type UpdateEntryInput struct {
	StartTime time.Time
	// EndTime nil reopens the entry.
	EndTime *time.Time
	Notes   string
}

// DiaryService owns the clock-in/clock-out lifecycle of diary entries.
// Days are computed at midnight in loc.
type DiaryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	loc         *time.Location
	now         func() time.Time
}

func NewDiaryService(db *sql.DB, repomanager repomanager.RepositoryManager, loc *time.Location) *DiaryService {
	return &DiaryService{
		db:          db,
		repomanager: repomanager,
		loc:         loc,
		now:         time.Now,
	}
}

// ClockIn creates the entry for (project, worker, day of StartTime),
// snapshotting the worker's role on the project. A second clock-in for the
// same day fails with common.ErrDuplicateEntry; the store's unique
// constraint decides, so concurrent attempts yield exactly one entry.
func (s *DiaryService) ClockIn(ctx context.Context, in ClockInInput) (*models.DiaryEntry, error) {
	if err := requireID("projectId", in.ProjectID); err != nil {
		return nil, err
	}
	if err := requireID("workerId", in.WorkerID); err != nil {
		return nil, err
	}

	now := s.now()
	start := now
	if in.StartTime != nil {
		start = *in.StartTime
	}
	if err := models.CheckTimeRange(start, in.EndTime); err != nil {
		return nil, err
	}

	project, err := s.openProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	worker, err := s.repomanager.Workers(s.db).Get(ctx, in.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("worker %s: %w", in.WorkerID, err)
	}

	entry := &models.DiaryEntry{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		WorkerID:  worker.ID,
		Date:      timex.StartOfDay(start, s.loc),
		StartTime: start,
		EndTime:   in.EndTime,
		Notes:     in.Notes,
		IsMaestro: in.IsMaestro,
		CreatedAt: now,
		UpdatedAt: now,
	}

	role, err := s.repomanager.Projects(s.db).AssignedRole(ctx, project.ID, worker.ID)
	switch {
	case err == nil:
		snap := role.Snapshot()
		entry.RoleID = role.ID
		entry.RoleSnapshot = &snap
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("role of worker %s: %w", worker.ID, err)
	}

	if err := s.repomanager.Diary(s.db).Create(ctx, entry); err != nil {
		return nil, err
	}

	entry.Worker = &models.WorkerRef{ID: worker.ID, Name: worker.Name, Email: worker.Email}
	entry.Project = &models.ProjectRef{ID: project.ID, Name: project.Name}
	return localize(entry, s.loc), nil
}

// ClockOut closes the open entry of the day EndTime falls on.
func (s *DiaryService) ClockOut(ctx context.Context, in ClockOutInput) (*models.DiaryEntry, error) {
	if err := requireID("projectId", in.ProjectID); err != nil {
		return nil, err
	}
	if err := requireID("workerId", in.WorkerID); err != nil {
		return nil, err
	}

	now := s.now()
	end := now
	if in.EndTime != nil {
		end = *in.EndTime
	}

	if _, err := s.openProject(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Diary(s.db)

	entry, err := repo.FindByKey(ctx, in.ProjectID, in.WorkerID, timex.StartOfDay(end, s.loc))
	if err != nil {
		return nil, fmt.Errorf("no diary entry for this date: %w", err)
	}
	if entry.EndTime != nil {
		return nil, common.ErrAlreadyClockedOut
	}
	if err := models.CheckTimeRange(entry.StartTime, &end); err != nil {
		return nil, err
	}

	var notes *string
	if in.Notes != "" {
		notes = &in.Notes
	}

	closed, err := repo.Close(ctx, entry.ID, end, notes, now)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, common.ErrAlreadyClockedOut
	}

	updated, err := repo.Get(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	return localize(updated, s.loc), nil
}

// UpdateEntry corrects the times and notes of an entry. The entry keeps
// its day; status and hours follow from the new times.
func (s *DiaryService) UpdateEntry(ctx context.Context, id string, in UpdateEntryInput) (*models.DiaryEntry, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if in.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime is required", common.ErrValidation)
	}
	if err := models.CheckTimeRange(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	repo := s.repomanager.Diary(s.db)

	entry, err := repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("diary entry %s: %w", id, err)
	}
	if _, err := s.openProject(ctx, entry.ProjectID); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, id, in.StartTime, in.EndTime, in.Notes, s.now()); err != nil {
		return nil, err
	}

	updated, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return localize(updated, s.loc), nil
}

func (s *DiaryService) DeleteEntry(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}

	repo := s.repomanager.Diary(s.db)

	entry, err := repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("diary entry %s: %w", id, err)
	}
	if _, err := s.openProject(ctx, entry.ProjectID); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

func (s *DiaryService) GetEntry(ctx context.Context, id string) (*models.DiaryEntry, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	entry, err := s.repomanager.Diary(s.db).Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("diary entry %s: %w", id, err)
	}
	return localize(entry, s.loc), nil
}

// openProject loads the project and rejects finalized ones.
func (s *DiaryService) openProject(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.repomanager.Projects(s.db).Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", id, err)
	}
	if project.IsFinalized() {
		return nil, common.ErrProjectFinalized
	}
	return project, nil
}
