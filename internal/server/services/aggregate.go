package services

import (
	"slices"

	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/timex"
)

// GroupByDay buckets entries by their "YYYY-MM-DD" day, keeping input order
// inside each bucket.
func GroupByDay(entries []*models.DiaryEntry) map[string][]*models.DiaryEntry {
	days := make(map[string][]*models.DiaryEntry)
	for _, e := range entries {
		key := timex.FormatDay(e.Date)
		days[key] = append(days[key], e)
	}
	return days
}

func ProjectStats(entries []*models.DiaryEntry) models.ProjectDiaryStats {
	stats := models.ProjectDiaryStats{TotalEntries: len(entries)}
	workers := make(map[string]struct{})
	for _, e := range entries {
		if e.Status() == models.StatusActive {
			stats.ActiveWorkers++
		}
		stats.TotalHours += e.TotalHours()
		workers[e.WorkerID] = struct{}{}
	}
	stats.UniqueWorkers = len(workers)
	return stats
}

func WorkerStats(entries []*models.DiaryEntry) models.WorkerDiaryStats {
	stats := models.WorkerDiaryStats{TotalEntries: len(entries)}
	projects := make(map[string]struct{})
	for _, e := range entries {
		if e.Status() == models.StatusActive {
			stats.ActiveEntries++
		}
		stats.TotalHours += e.TotalHours()
		projects[e.ProjectID] = struct{}{}
	}
	if stats.TotalEntries > 0 {
		stats.AverageHoursPerDay = stats.TotalHours / float64(stats.TotalEntries)
	}
	stats.ProjectsWorked = len(projects)
	return stats
}

// BuildWorkHistory groups one worker's entries by project, most recently
// worked project first. Maestros is left for the caller to fill.
func BuildWorkHistory(entries []*models.DiaryEntry) *models.WorkHistory {
	history := &models.WorkHistory{Projects: []models.ProjectHistory{}}

	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.ProjectID]
		if !ok {
			ref := models.ProjectRef{ID: e.ProjectID}
			if e.Project != nil {
				ref = *e.Project
			}
			history.Projects = append(history.Projects, models.ProjectHistory{
				Project:   ref,
				DateRange: models.DateRange{Start: e.Date, End: e.Date},
			})
			i = len(history.Projects) - 1
			index[e.ProjectID] = i
		}

		row := &history.Projects[i]
		hours := e.TotalHours()
		row.TotalHours += hours
		row.TotalDays++
		if e.Date.Before(row.DateRange.Start) {
			row.DateRange.Start = e.Date
		}
		if e.Date.After(row.DateRange.End) {
			row.DateRange.End = e.Date
		}
		if e.IsMaestro {
			row.WasMaestro = true
		}

		history.Summary.TotalDaysWorked++
		history.Summary.TotalHours += hours
	}

	slices.SortStableFunc(history.Projects, func(a, b models.ProjectHistory) int {
		return b.DateRange.End.Compare(a.DateRange.End)
	})
	history.Summary.TotalProjects = len(history.Projects)
	return history
}

// DistinctWorkers returns the entries' workers in first-seen order, or nil
// when there are none.
func DistinctWorkers(entries []*models.DiaryEntry) []models.WorkerRef {
	var (
		result []models.WorkerRef
		seen   = make(map[string]struct{})
	)
	for _, e := range entries {
		if _, ok := seen[e.WorkerID]; ok {
			continue
		}
		seen[e.WorkerID] = struct{}{}
		ref := models.WorkerRef{ID: e.WorkerID}
		if e.Worker != nil {
			ref = *e.Worker
		}
		result = append(result, ref)
	}
	return result
}
