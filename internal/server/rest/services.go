package rest

import (
	"context"
	"time"

	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/server/services"
)

// The handlers depend on these narrow views of the services so tests can
// supply fakes.

type DiaryService interface {
	ClockIn(ctx context.Context, in services.ClockInInput) (*models.DiaryEntry, error)
	ClockOut(ctx context.Context, in services.ClockOutInput) (*models.DiaryEntry, error)
	UpdateEntry(ctx context.Context, id string, in services.UpdateEntryInput) (*models.DiaryEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (*models.DiaryEntry, error)
}

type ReportService interface {
	ListByFilter(ctx context.Context, f services.ListFilter) ([]*models.DiaryEntry, error)
	ProjectDiaryView(ctx context.Context, projectID string, f services.DateFilter) (*models.ProjectDiary, error)
	WorkerDiaryView(ctx context.Context, workerID, projectID string, f services.DateFilter) (*models.WorkerDiary, error)
	WorkHistory(ctx context.Context, workerID string) (*models.WorkHistory, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, in services.CreateProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	Finalize(ctx context.Context, id string, day time.Time) (*models.Project, error)
	AssignPersonnel(ctx context.Context, projectID string, in services.AssignPersonnelInput) (*models.PersonnelAssignment, error)
}

type PersonnelService interface {
	CreateWorker(ctx context.Context, in services.CreateWorkerInput) (*models.Worker, error)
	GetWorker(ctx context.Context, id string) (*models.Worker, error)
	CreateRole(ctx context.Context, in services.CreateRoleInput) (*models.Role, error)
	ListRoles(ctx context.Context) ([]*models.Role, error)
}

type DocumentService interface {
	RequestUpload(ctx context.Context, projectID, fileName, contentType string) (*models.UploadTask, error)
	MarkUploaded(ctx context.Context, projectID, docID string) error
	List(ctx context.Context, projectID string) ([]*models.Document, error)
	DownloadURL(ctx context.Context, projectID, docID string) (string, error)
	ListObjects(ctx context.Context, projectID string) ([]string, error)
}
