package rest

import (
	"time"

	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/timex"
)

// Requests. Timestamps travel as strings and are parsed with
// timex.ParseTimestamp in the server's location.

type clockInRequest struct {
	ProjectID string  `json:"projectId"`
	WorkerID  string  `json:"workerId"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Notes     string  `json:"notes"`
	IsMaestro bool    `json:"isMaestro"`
}

type clockOutRequest struct {
	ProjectID string  `json:"projectId"`
	WorkerID  string  `json:"workerId"`
	EndTime   *string `json:"endTime"`
	Notes     string  `json:"notes"`
}

// updateEntryRequest accepts a status field from older clients; it is
// ignored since status follows from endTime.
type updateEntryRequest struct {
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Notes     string  `json:"notes"`
	Status    string  `json:"status"`
}

type finalizeRequest struct {
	FinalizedDate string `json:"finalizedDate"`
}

type createWorkerRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Active *bool  `json:"active"`
}

type createRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"isActive"`
}

type createProjectRequest struct {
	Name         string `json:"name"`
	CustomerName string `json:"customerName"`
	Address      string `json:"address"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

type assignPersonnelRequest struct {
	WorkerID string `json:"workerId"`
	RoleID   string `json:"roleId"`
	Notes    string `json:"notes"`
}

type uploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// Responses.

type workerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type projectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type roleSnapshot struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type entryResponse struct {
	ID           string        `json:"id"`
	ProjectID    string        `json:"projectId"`
	WorkerID     string        `json:"workerId"`
	Date         string        `json:"date"`
	StartTime    time.Time     `json:"startTime"`
	EndTime      *time.Time    `json:"endTime"`
	Notes        string        `json:"notes"`
	IsMaestro    bool          `json:"isMaestro"`
	RoleID       string        `json:"roleId,omitempty"`
	RoleSnapshot *roleSnapshot `json:"roleSnapshot,omitempty"`
	Status       string        `json:"status"`
	TotalHours   float64       `json:"totalHours"`
	Worker       *workerRef    `json:"worker,omitempty"`
	Project      *projectRef   `json:"project,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func toEntry(e *models.DiaryEntry) entryResponse {
	out := entryResponse{
		ID:         e.ID,
		ProjectID:  e.ProjectID,
		WorkerID:   e.WorkerID,
		Date:       timex.FormatDay(e.Date),
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Notes:      e.Notes,
		IsMaestro:  e.IsMaestro,
		RoleID:     e.RoleID,
		Status:     string(e.Status()),
		TotalHours: e.TotalHours(),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.RoleSnapshot != nil {
		out.RoleSnapshot = &roleSnapshot{
			Name:        e.RoleSnapshot.Name(),
			Description: e.RoleSnapshot.Description(),
			Color:       e.RoleSnapshot.Color(),
		}
	}
	if e.Worker != nil {
		out.Worker = &workerRef{ID: e.Worker.ID, Name: e.Worker.Name, Email: e.Worker.Email}
	}
	if e.Project != nil {
		out.Project = &projectRef{ID: e.Project.ID, Name: e.Project.Name}
	}
	return out
}

func toEntries(entries []*models.DiaryEntry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntry(e))
	}
	return out
}

type projectDiaryStats struct {
	TotalEntries  int     `json:"totalEntries"`
	ActiveWorkers int     `json:"activeWorkers"`
	TotalHours    float64 `json:"totalHours"`
	UniqueWorkers int     `json:"uniqueWorkers"`
}

type projectDiaryResponse struct {
	Project projectRef                 `json:"project"`
	Diary   map[string][]entryResponse `json:"diary"`
	Stats   projectDiaryStats          `json:"stats"`
}

func toProjectDiary(v *models.ProjectDiary) projectDiaryResponse {
	days := make(map[string][]entryResponse, len(v.Days))
	for day, entries := range v.Days {
		days[day] = toEntries(entries)
	}
	return projectDiaryResponse{
		Project: projectRef{ID: v.Project.ID, Name: v.Project.Name},
		Diary:   days,
		Stats: projectDiaryStats{
			TotalEntries:  v.Stats.TotalEntries,
			ActiveWorkers: v.Stats.ActiveWorkers,
			TotalHours:    v.Stats.TotalHours,
			UniqueWorkers: v.Stats.UniqueWorkers,
		},
	}
}

type workerDiaryStats struct {
	TotalEntries       int     `json:"totalEntries"`
	TotalHours         float64 `json:"totalHours"`
	AverageHoursPerDay float64 `json:"averageHoursPerDay"`
	ProjectsWorked     int     `json:"projectsWorked"`
	ActiveEntries      int     `json:"activeEntries"`
}

type workerDiaryResponse struct {
	Worker  workerRef        `json:"worker"`
	Entries []entryResponse  `json:"entries"`
	Stats   workerDiaryStats `json:"stats"`
}

func toWorkerDiary(v *models.WorkerDiary) workerDiaryResponse {
	return workerDiaryResponse{
		Worker:  workerRef{ID: v.Worker.ID, Name: v.Worker.Name, Email: v.Worker.Email},
		Entries: toEntries(v.Entries),
		Stats: workerDiaryStats{
			TotalEntries:       v.Stats.TotalEntries,
			TotalHours:         v.Stats.TotalHours,
			AverageHoursPerDay: v.Stats.AverageHoursPerDay,
			ProjectsWorked:     v.Stats.ProjectsWorked,
			ActiveEntries:      v.Stats.ActiveEntries,
		},
	}
}

type dateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type projectHistory struct {
	Project    projectRef  `json:"project"`
	TotalHours float64     `json:"totalHours"`
	TotalDays  int         `json:"totalDays"`
	DateRange  dateRange   `json:"dateRange"`
	WasMaestro bool        `json:"wasMaestro"`
	Maestros   []workerRef `json:"maestros"`
}

type workSummary struct {
	TotalProjects   int     `json:"totalProjects"`
	TotalDaysWorked int     `json:"totalDaysWorked"`
	TotalHours      float64 `json:"totalHours"`
}

type workHistoryResponse struct {
	Projects []projectHistory `json:"projects"`
	Summary  workSummary      `json:"summary"`
}

func toWorkHistory(h *models.WorkHistory) workHistoryResponse {
	out := workHistoryResponse{
		Projects: make([]projectHistory, 0, len(h.Projects)),
		Summary: workSummary{
			TotalProjects:   h.Summary.TotalProjects,
			TotalDaysWorked: h.Summary.TotalDaysWorked,
			TotalHours:      h.Summary.TotalHours,
		},
	}
	for _, p := range h.Projects {
		row := projectHistory{
			Project:    projectRef{ID: p.Project.ID, Name: p.Project.Name},
			TotalHours: p.TotalHours,
			TotalDays:  p.TotalDays,
			DateRange:  dateRange{Start: timex.FormatDay(p.DateRange.Start), End: timex.FormatDay(p.DateRange.End)},
			WasMaestro: p.WasMaestro,
		}
		// nil stays null on the wire
		for _, m := range p.Maestros {
			row.Maestros = append(row.Maestros, workerRef{ID: m.ID, Name: m.Name, Email: m.Email})
		}
		out.Projects = append(out.Projects, row)
	}
	return out
}

type projectResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CustomerName  string  `json:"customerName"`
	Address       string  `json:"address"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	HaveDocuments bool    `json:"haveDocuments"`
	Active        bool    `json:"active"`
	Finalized     *string `json:"finalized,omitempty"`
}

func toProject(p *models.Project) projectResponse {
	out := projectResponse{
		ID:            p.ID,
		Name:          p.Name,
		CustomerName:  p.CustomerName,
		Address:       p.Address,
		Email:         p.Email,
		Phone:         p.Phone,
		HaveDocuments: p.HaveDocuments,
		Active:        p.Active,
	}
	if p.Finalized != nil {
		d := timex.FormatDay(*p.Finalized)
		out.Finalized = &d
	}
	return out
}

type assignmentResponse struct {
	ProjectID string `json:"projectId"`
	WorkerID  string `json:"workerId"`
	RoleID    string `json:"roleId,omitempty"`
	Notes     string `json:"notes"`
}

type workerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Active bool   `json:"active"`
}

func toWorker(w *models.Worker) workerResponse {
	return workerResponse{ID: w.ID, Name: w.Name, Email: w.Email, Phone: w.Phone, Active: w.Active}
}

type roleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    bool   `json:"isActive"`
}

func toRole(r *models.Role) roleResponse {
	return roleResponse{ID: r.ID, Name: r.Name, Description: r.Description, Color: r.Color, IsActive: r.IsActive}
}

type documentResponse struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType,omitempty"`
	StorageKey   string    `json:"storageKey"`
	UploadStatus string    `json:"uploadStatus"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toDocument(d *models.Document) documentResponse {
	return documentResponse{
		ID:           d.ID,
		ProjectID:    d.ProjectID,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		StorageKey:   d.StorageKey,
		UploadStatus: d.UploadStatus,
		CreatedAt:    d.CreatedAt,
	}
}

type uploadResponse struct {
	Document  documentResponse `json:"document"`
	UploadURL string           `json:"uploadUrl"`
}
