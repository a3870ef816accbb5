package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/server/repositories/diary"
	"github.com/ganatecnica/obradiary/internal/server/repositories/repomanager"
)

// DateFilter selects entries by calendar day. Day, when set, takes
// precedence over From/To; either bound of the range may be open.
type DateFilter struct {
	Day  *time.Time
	From *time.Time
	To   *time.Time
}

type ListFilter struct {
	ProjectID string
	WorkerID  string
	DateFilter
}

// ReportService serves the read-side diary views. Reads are not isolated
// from concurrent writes.
type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	loc         *time.Location
}

func NewReportService(db *sql.DB, repomanager repomanager.RepositoryManager, loc *time.Location) *ReportService {
	return &ReportService{db: db, repomanager: repomanager, loc: loc}
}

func (s *ReportService) ListByFilter(ctx context.Context, f ListFilter) ([]*models.DiaryEntry, error) {
	if f.ProjectID != "" {
		if err := requireID("project", f.ProjectID); err != nil {
			return nil, err
		}
	}
	if f.WorkerID != "" {
		if err := requireID("worker", f.WorkerID); err != nil {
			return nil, err
		}
	}
	return s.list(ctx, diary.Filter{
		ProjectID: f.ProjectID,
		WorkerID:  f.WorkerID,
		Day:       f.Day,
		From:      f.From,
		To:        f.To,
	})
}

func (s *ReportService) ProjectDiaryView(ctx context.Context, projectID string, f DateFilter) (*models.ProjectDiary, error) {
	if err := requireID("id", projectID); err != nil {
		return nil, err
	}

	project, err := s.repomanager.Projects(s.db).Get(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", projectID, err)
	}

	entries, err := s.list(ctx, diary.Filter{ProjectID: projectID, Day: f.Day, From: f.From, To: f.To})
	if err != nil {
		return nil, err
	}

	return &models.ProjectDiary{
		Project: models.ProjectRef{ID: project.ID, Name: project.Name},
		Days:    GroupByDay(entries),
		Stats:   ProjectStats(entries),
	}, nil
}

func (s *ReportService) WorkerDiaryView(ctx context.Context, workerID, projectID string, f DateFilter) (*models.WorkerDiary, error) {
	if err := requireID("id", workerID); err != nil {
		return nil, err
	}
	if projectID != "" {
		if err := requireID("project", projectID); err != nil {
			return nil, err
		}
	}

	worker, err := s.repomanager.Workers(s.db).Get(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("worker %s: %w", workerID, err)
	}

	entries, err := s.list(ctx, diary.Filter{WorkerID: workerID, ProjectID: projectID, Day: f.Day, From: f.From, To: f.To})
	if err != nil {
		return nil, err
	}

	return &models.WorkerDiary{
		Worker:  models.WorkerRef{ID: worker.ID, Name: worker.Name, Email: worker.Email},
		Entries: entries,
		Stats:   WorkerStats(entries),
	}, nil
}

// WorkHistory rolls all of a worker's entries up per project. For projects
// where the worker never led, the project's maestros are looked up across
// its whole history.
func (s *ReportService) WorkHistory(ctx context.Context, workerID string) (*models.WorkHistory, error) {
	if err := requireID("id", workerID); err != nil {
		return nil, err
	}

	entries, err := s.list(ctx, diary.Filter{WorkerID: workerID})
	if err != nil {
		return nil, err
	}

	history := BuildWorkHistory(entries)

	for i := range history.Projects {
		row := &history.Projects[i]
		if row.WasMaestro {
			continue
		}
		maestroEntries, err := s.list(ctx, diary.Filter{ProjectID: row.Project.ID, MaestroOnly: true})
		if err != nil {
			return nil, err
		}
		row.Maestros = DistinctWorkers(maestroEntries)
	}

	return history, nil
}

func (s *ReportService) list(ctx context.Context, f diary.Filter) ([]*models.DiaryEntry, error) {
	entries, err := s.repomanager.Diary(s.db).List(ctx, f)
	if err != nil {
		return nil, err
	}
	return localizeAll(entries, s.loc), nil
}
