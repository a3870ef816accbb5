package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/dbx"
	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/server/repositories/diary"
	"github.com/ganatecnica/obradiary/internal/server/repositories/documents"
	"github.com/ganatecnica/obradiary/internal/server/repositories/projects"
	"github.com/ganatecnica/obradiary/internal/server/repositories/roles"
	"github.com/ganatecnica/obradiary/internal/server/repositories/workers"
)

// memStore backs every fake repository with maps guarded by one mutex.
type memStore struct {
	mu        sync.Mutex
	workers   map[string]models.Worker
	roles     map[string]models.Role
	projects  map[string]models.Project
	personnel map[[2]string]models.PersonnelAssignment
	entries   map[string]models.DiaryEntry
	documents map[string]models.Document

	// failList, when set, is returned by diary List.
	failList error
}

func newMemStore() *memStore {
	return &memStore{
		workers:   map[string]models.Worker{},
		roles:     map[string]models.Role{},
		projects:  map[string]models.Project{},
		personnel: map[[2]string]models.PersonnelAssignment{},
		entries:   map[string]models.DiaryEntry{},
		documents: map[string]models.Document{},
	}
}

type fakeRepoManager struct {
	store *memStore
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Workers(dbx.DBTX) workers.Repository         { return &fakeWorkers{m.store} }
func (m *fakeRepoManager) Roles(dbx.DBTX) roles.Repository             { return &fakeRoles{m.store} }
func (m *fakeRepoManager) Projects(dbx.DBTX) projects.Repository       { return &fakeProjects{m.store} }
func (m *fakeRepoManager) Diary(dbx.DBTX) diary.Repository             { return &fakeDiary{m.store} }
func (m *fakeRepoManager) Documents(dbx.DBTX) documents.Repository     { return &fakeDocuments{m.store} }

type fakeWorkers struct{ s *memStore }

func (f *fakeWorkers) Create(_ context.Context, w *models.Worker) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.workers[w.ID] = *w
	return nil
}

func (f *fakeWorkers) Get(_ context.Context, id string) (*models.Worker, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	w, ok := f.s.workers[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &w, nil
}

type fakeRoles struct{ s *memStore }

func (f *fakeRoles) Create(_ context.Context, r *models.Role) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.roles[r.ID] = *r
	return nil
}

func (f *fakeRoles) Get(_ context.Context, id string) (*models.Role, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	r, ok := f.s.roles[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRoles) ListActive(context.Context) ([]*models.Role, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.Role
	for _, r := range f.s.roles {
		if r.IsActive {
			r := r
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeProjects struct{ s *memStore }

func (f *fakeProjects) Create(_ context.Context, p *models.Project) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.projects[p.ID] = *p
	return nil
}

func (f *fakeProjects) Get(_ context.Context, id string) (*models.Project, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.projects[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProjects) Finalize(_ context.Context, id string, day time.Time) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.projects[id]
	if !ok || p.Finalized != nil {
		return false, nil
	}
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	p.Finalized = &d
	p.Active = false
	f.s.projects[id] = p
	return true, nil
}

func (f *fakeProjects) SetHaveDocuments(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.projects[id]
	if !ok {
		return common.ErrNotFound
	}
	p.HaveDocuments = true
	f.s.projects[id] = p
	return nil
}

func (f *fakeProjects) UpsertPersonnel(_ context.Context, a *models.PersonnelAssignment) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.personnel[[2]string{a.ProjectID, a.WorkerID}] = *a
	return nil
}

func (f *fakeProjects) AssignedRole(_ context.Context, projectID, workerID string) (*models.Role, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.personnel[[2]string{projectID, workerID}]
	if !ok || a.RoleID == "" {
		return nil, common.ErrNotFound
	}
	r, ok := f.s.roles[a.RoleID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &r, nil
}

// fakeDiary mimics the SQL store: days are kept as UTC midnight of the
// civil date and (project, worker, day) is unique.
type fakeDiary struct{ s *memStore }

func storedDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (f *fakeDiary) withRefs(e models.DiaryEntry) *models.DiaryEntry {
	if w, ok := f.s.workers[e.WorkerID]; ok {
		e.Worker = &models.WorkerRef{ID: w.ID, Name: w.Name, Email: w.Email}
	}
	if p, ok := f.s.projects[e.ProjectID]; ok {
		e.Project = &models.ProjectRef{ID: p.ID, Name: p.Name}
	}
	return &e
}

func (f *fakeDiary) Create(_ context.Context, e *models.DiaryEntry) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	day := storedDay(e.Date)
	for _, x := range f.s.entries {
		if x.ProjectID == e.ProjectID && x.WorkerID == e.WorkerID && x.Date.Equal(day) {
			return common.ErrDuplicateEntry
		}
	}
	stored := *e
	stored.Date = day
	stored.Worker, stored.Project = nil, nil
	f.s.entries[e.ID] = stored
	return nil
}

func (f *fakeDiary) Get(_ context.Context, id string) (*models.DiaryEntry, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	e, ok := f.s.entries[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return f.withRefs(e), nil
}

func (f *fakeDiary) FindByKey(_ context.Context, projectID, workerID string, day time.Time) (*models.DiaryEntry, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d := storedDay(day)
	for _, e := range f.s.entries {
		if e.ProjectID == projectID && e.WorkerID == workerID && e.Date.Equal(d) {
			return f.withRefs(e), nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeDiary) Close(_ context.Context, id string, end time.Time, notes *string, at time.Time) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	e, ok := f.s.entries[id]
	if !ok || e.EndTime != nil {
		return false, nil
	}
	e.EndTime = &end
	if notes != nil {
		e.Notes = *notes
	}
	e.UpdatedAt = at
	f.s.entries[id] = e
	return true, nil
}

func (f *fakeDiary) Update(_ context.Context, id string, start time.Time, end *time.Time, notes string, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	e, ok := f.s.entries[id]
	if !ok {
		return common.ErrNotFound
	}
	e.StartTime, e.EndTime, e.Notes, e.UpdatedAt = start, end, notes, at
	f.s.entries[id] = e
	return nil
}

func (f *fakeDiary) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.entries[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.s.entries, id)
	return nil
}

func (f *fakeDiary) List(_ context.Context, flt diary.Filter) ([]*models.DiaryEntry, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failList != nil {
		return nil, f.s.failList
	}

	out := []*models.DiaryEntry{}
	for _, e := range f.s.entries {
		if flt.ProjectID != "" && e.ProjectID != flt.ProjectID {
			continue
		}
		if flt.WorkerID != "" && e.WorkerID != flt.WorkerID {
			continue
		}
		if flt.MaestroOnly && !e.IsMaestro {
			continue
		}
		if flt.Day != nil {
			if !e.Date.Equal(storedDay(*flt.Day)) {
				continue
			}
		} else {
			if flt.From != nil && e.Date.Before(storedDay(*flt.From)) {
				continue
			}
			if flt.To != nil && e.Date.After(storedDay(*flt.To)) {
				continue
			}
		}
		out = append(out, f.withRefs(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

type fakeDocuments struct{ s *memStore }

func (f *fakeDocuments) Create(_ context.Context, d *models.Document) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.documents[d.ID] = *d
	return nil
}

func (f *fakeDocuments) Get(_ context.Context, projectID, id string) (*models.Document, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.documents[id]
	if !ok || d.ProjectID != projectID {
		return nil, common.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDocuments) ListByProject(_ context.Context, projectID string) ([]*models.Document, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*models.Document{}
	for _, d := range f.s.documents {
		if d.ProjectID == projectID {
			d := d
			out = append(out, &d)
		}
	}
	return out, nil
}

func (f *fakeDocuments) MarkUploaded(_ context.Context, projectID, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.documents[id]
	if !ok || d.ProjectID != projectID {
		return common.ErrNotFound
	}
	d.UploadStatus = models.UploadCompleted
	f.s.documents[id] = d
	return nil
}

// fixture ids
const (
	projectID = "11111111-1111-1111-1111-111111111111"
	workerID  = "22222222-2222-2222-2222-222222222222"
	worker2ID = "33333333-3333-3333-3333-333333333333"
	roleID    = "44444444-4444-4444-4444-444444444444"
	missingID = "99999999-9999-9999-9999-999999999999"
)

// seed adds one open project, two workers and a role.
func seed(s *memStore) {
	s.projects[projectID] = models.Project{ID: projectID, Name: "Casa Pérez", Active: true}
	s.workers[workerID] = models.Worker{ID: workerID, Name: "Juan", Email: "juan@example.com", Active: true}
	s.workers[worker2ID] = models.Worker{ID: worker2ID, Name: "Ana", Email: "ana@example.com", Active: true}
	s.roles[roleID] = models.Role{ID: roleID, Name: "Albañil", Description: "Obra negra", Color: "#FF0000", IsActive: true}
}

func at(h, m int) time.Time {
	return time.Date(2024, 1, 10, h, m, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }
