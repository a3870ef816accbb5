package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) (*sql.DB, *repomanager.SQLRepositoryManager) {
	t.Helper()
	ctx := context.Background()

	db, rm, err := repomanager.Open(ctx, repomanager.DriverSQLite, filepath.Join(t.TempDir(), "data", "diary.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, rm.RunMigrations(ctx, db))
	return db, rm
}

func TestSQLite_ConcurrentClockInCreatesOneEntry(t *testing.T) {
	db, rm := openSQLite(t)
	ctx := context.Background()

	personnel := NewPersonnelService(db, rm)
	projects := NewProjectService(db, rm, time.UTC)
	diary := NewDiaryService(db, rm, time.UTC)

	w, err := personnel.CreateWorker(ctx, CreateWorkerInput{Name: "Juan"})
	require.NoError(t, err)
	p, err := projects.CreateProject(ctx, CreateProjectInput{Name: "Casa Pérez"})
	require.NoError(t, err)

	const n = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok, dup    int
		unexpected []error
	)
	start := at(8, 0)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := diary.ClockIn(ctx, ClockInInput{ProjectID: p.ID, WorkerID: w.ID, StartTime: &start})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, common.ErrDuplicateEntry):
				dup++
			default:
				unexpected = append(unexpected, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, unexpected)
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)

	reports := NewReportService(db, rm, time.UTC)
	entries, err := reports.ListByFilter(ctx, ListFilter{ProjectID: p.ID})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSQLite_DiaryLifecycle(t *testing.T) {
	db, rm := openSQLite(t)
	ctx := context.Background()

	personnel := NewPersonnelService(db, rm)
	projects := NewProjectService(db, rm, time.UTC)
	diary := NewDiaryService(db, rm, time.UTC)
	reports := NewReportService(db, rm, time.UTC)

	w, err := personnel.CreateWorker(ctx, CreateWorkerInput{Name: "Juan", Email: "juan@example.com"})
	require.NoError(t, err)
	r, err := personnel.CreateRole(ctx, CreateRoleInput{Name: "Albañil"})
	require.NoError(t, err)
	p, err := projects.CreateProject(ctx, CreateProjectInput{Name: "Casa Pérez"})
	require.NoError(t, err)

	_, err = projects.AssignPersonnel(ctx, p.ID, AssignPersonnelInput{WorkerID: w.ID, RoleID: r.ID})
	require.NoError(t, err)

	e, err := diary.ClockIn(ctx, ClockInInput{ProjectID: p.ID, WorkerID: w.ID, StartTime: ptr(at(8, 0)), IsMaestro: true})
	require.NoError(t, err)
	require.NotNil(t, e.RoleSnapshot)
	assert.Equal(t, "Albañil", e.RoleSnapshot.Name())

	_, err = diary.ClockIn(ctx, ClockInInput{ProjectID: p.ID, WorkerID: w.ID, StartTime: ptr(at(13, 0))})
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	e, err = diary.ClockOut(ctx, ClockOutInput{ProjectID: p.ID, WorkerID: w.ID, EndTime: ptr(at(17, 0))})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, e.Status())
	assert.InDelta(t, 9.0, e.TotalHours(), 1e-9)
	assert.Equal(t, "2024-01-10", e.Date.Format("2006-01-02"))
	require.NotNil(t, e.Worker)
	assert.Equal(t, "Juan", e.Worker.Name)

	_, err = diary.ClockOut(ctx, ClockOutInput{ProjectID: p.ID, WorkerID: w.ID, EndTime: ptr(at(18, 0))})
	assert.ErrorIs(t, err, common.ErrAlreadyClockedOut)

	view, err := reports.ProjectDiaryView(ctx, p.ID, DateFilter{Day: ptr(day(10))})
	require.NoError(t, err)
	assert.Len(t, view.Days["2024-01-10"], 1)
	assert.InDelta(t, 9.0, view.Stats.TotalHours, 1e-9)

	history, err := reports.WorkHistory(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, history.Projects, 1)
	assert.True(t, history.Projects[0].WasMaestro)

	fp, err := projects.Finalize(ctx, p.ID, day(20))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-20", fp.Finalized.Format("2006-01-02"))
	assert.False(t, fp.Active)

	_, err = projects.Finalize(ctx, p.ID, day(21))
	assert.ErrorIs(t, err, common.ErrAlreadyFinalized)

	err = diary.DeleteEntry(ctx, e.ID)
	assert.ErrorIs(t, err, common.ErrProjectFinalized)
}
