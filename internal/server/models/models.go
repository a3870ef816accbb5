// Package models defines server-side data models persisted in the database.
package models

import "time"

// Worker is a person who can be assigned to projects and clock in.
type Worker struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
}

// Role is a named trade or position. Entries hold a snapshot of it, so
// editing a role never rewrites past diary entries.
type Role struct {
	ID          string
	Name        string
	Description string
	Color       string
	IsActive    bool
	CreatedAt   time.Time
}

// DefaultRoleColor is used when a role is created without a color.
const DefaultRoleColor = "#3B82F6"

// Snapshot captures the role's current display attributes.
func (r Role) Snapshot() RoleSnapshot {
	return NewRoleSnapshot(r.Name, r.Description, r.Color)
}

// Project is a job site. Finalized, once set, is terminal.
type Project struct {
	ID            string
	Name          string
	CustomerName  string
	Address       string
	Email         string
	Phone         string
	HaveDocuments bool
	Active        bool
	// Finalized is the closing day, nil while the project is open.
	Finalized *time.Time
	CreatedAt time.Time
}

func (p Project) IsFinalized() bool {
	return p.Finalized != nil
}

// PersonnelAssignment places a worker on a project, optionally with a role.
// ClockIn reads it to snapshot the worker's role onto the entry.
type PersonnelAssignment struct {
	ProjectID string
	WorkerID  string
	// RoleID is empty when the worker has no role on the project.
	RoleID string
	Notes  string
}

// WorkerRef and ProjectRef are the expanded display forms attached to
// diary entries on read.
type WorkerRef struct {
	ID    string
	Name  string
	Email string
}

type ProjectRef struct {
	ID   string
	Name string
}
