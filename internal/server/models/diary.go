package models

import (
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
)

// EntryStatus is derived from EndTime and never stored.
type EntryStatus string

const (
	StatusActive    EntryStatus = "active"
	StatusCompleted EntryStatus = "completed"
)

// RoleSnapshot is an immutable copy of a role's display attributes taken
// when a diary entry is created.
type RoleSnapshot struct {
	name        string
	description string
	color       string
}

func NewRoleSnapshot(name, description, color string) RoleSnapshot {
	return RoleSnapshot{name: name, description: description, color: color}
}

func (s RoleSnapshot) Name() string        { return s.name }
func (s RoleSnapshot) Description() string { return s.description }
func (s RoleSnapshot) Color() string       { return s.color }

// DiaryEntry is one worker's attendance on one project for one calendar day.
// (ProjectID, WorkerID, Date) is unique.
type DiaryEntry struct {
	ID        string
	ProjectID string
	WorkerID  string
	// Date is midnight of the entry's calendar day in the server timezone.
	Date      time.Time
	StartTime time.Time
	// EndTime is nil while the worker is still clocked in.
	EndTime   *time.Time
	Notes     string
	IsMaestro bool

	// RoleID and RoleSnapshot are set together, or both absent.
	RoleID       string
	RoleSnapshot *RoleSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time

	// Expanded on read; nil when the row was loaded without joins.
	Worker  *WorkerRef
	Project *ProjectRef
}

func (e DiaryEntry) Status() EntryStatus {
	if e.EndTime == nil {
		return StatusActive
	}
	return StatusCompleted
}

// TotalHours is the elapsed time in decimal hours, 0 while clocked in.
func (e DiaryEntry) TotalHours() float64 {
	if e.EndTime == nil {
		return 0
	}
	d := e.EndTime.Sub(e.StartTime)
	if d < 0 {
		return 0
	}
	return d.Hours()
}

// CheckTimeRange reports common.ErrInvalidTimeRange unless end is absent or
// strictly after start.
func CheckTimeRange(start time.Time, end *time.Time) error {
	if end != nil && !end.After(start) {
		return common.ErrInvalidTimeRange
	}
	return nil
}
