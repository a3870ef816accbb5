package models

import "time"

// ProjectDiary is a project's entries bucketed by calendar day
// ("YYYY-MM-DD"), with statistics over the same filtered set.
type ProjectDiary struct {
	Project ProjectRef
	Days    map[string][]*DiaryEntry
	Stats   ProjectDiaryStats
}

type ProjectDiaryStats struct {
	TotalEntries  int
	ActiveWorkers int
	TotalHours    float64
	UniqueWorkers int
}

// WorkerDiary is a worker's entries, newest first, with statistics.
type WorkerDiary struct {
	Worker  WorkerRef
	Entries []*DiaryEntry
	Stats   WorkerDiaryStats
}

type WorkerDiaryStats struct {
	TotalEntries       int
	TotalHours         float64
	AverageHoursPerDay float64
	ProjectsWorked     int
	ActiveEntries      int
}

type DateRange struct {
	Start time.Time
	End   time.Time
}

// ProjectHistory aggregates one worker's entries on one project. Maestros
// lists who led the project and is nil when the worker was maestro there
// or nobody ever was.
type ProjectHistory struct {
	Project    ProjectRef
	TotalHours float64
	TotalDays  int
	DateRange  DateRange
	WasMaestro bool
	Maestros   []WorkerRef
}

type WorkSummary struct {
	TotalProjects   int
	TotalDaysWorked int
	TotalHours      float64
}

type WorkHistory struct {
	Projects []ProjectHistory
	Summary  WorkSummary
}
