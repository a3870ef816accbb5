// Package diary provides SQL-backed storage for attendance entries.
package diary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/dbx"
	"github.com/ganatecnica/obradiary/internal/server/models"
)

const selectEntry = `
	SELECT d.id, d.project_id, d.worker_id, d.work_date, d.start_time, d.end_time, d.notes, d.is_maestro,
		d.role_id, d.role_name, d.role_description, d.role_color, d.created_at, d.updated_at,
		w.name, w.email, p.name
	FROM diary_entries d
	JOIN workers w ON w.id = d.worker_id
	JOIN projects p ON p.id = d.project_id`

// SQLRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, e *models.DiaryEntry) error {
	query := `
		INSERT INTO diary_entries (id, project_id, worker_id, work_date, start_time, end_time, notes, is_maestro,
			role_id, role_name, role_description, role_color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	var roleID, roleName, roleDesc, roleColor sql.NullString
	if e.RoleSnapshot != nil {
		roleID = sql.NullString{String: e.RoleID, Valid: e.RoleID != ""}
		roleName = sql.NullString{String: e.RoleSnapshot.Name(), Valid: true}
		roleDesc = sql.NullString{String: e.RoleSnapshot.Description(), Valid: true}
		roleColor = sql.NullString{String: e.RoleSnapshot.Color(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.ProjectID, e.WorkerID, dbx.DayArg(e.Date), e.StartTime.UTC(), nullTime(e.EndTime), e.Notes, e.IsMaestro,
		roleID, roleName, roleDesc, roleColor, e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	if dbx.IsUniqueViolation(err) {
		return common.ErrDuplicateEntry
	}
	return dbx.StoreError("insert diary entry", err)
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.DiaryEntry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, selectEntry+` WHERE d.id=$1`, id))
	if err != nil {
		return nil, dbx.StoreError("select diary entry", err)
	}
	return e, nil
}

func (r *SQLRepository) FindByKey(ctx context.Context, projectID, workerID string, day time.Time) (*models.DiaryEntry, error) {
	query := selectEntry + ` WHERE d.project_id=$1 AND d.worker_id=$2 AND d.work_date=$3`
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, projectID, workerID, dbx.DayArg(day)))
	if err != nil {
		return nil, dbx.StoreError("select diary entry", err)
	}
	return e, nil
}

// Close only touches notes when notes is non-nil.
func (r *SQLRepository) Close(ctx context.Context, id string, end time.Time, notes *string, at time.Time) (bool, error) {
	query := `
		UPDATE diary_entries SET end_time=$2, notes=COALESCE($3, notes), updated_at=$4
		WHERE id=$1 AND end_time IS NULL`

	var n sql.NullString
	if notes != nil {
		n = sql.NullString{String: *notes, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query, id, end.UTC(), n, at.UTC())
	if err != nil {
		return false, dbx.StoreError("close diary entry", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, dbx.StoreError("close diary entry", err)
	}
	return affected == 1, nil
}

func (r *SQLRepository) Update(ctx context.Context, id string, start time.Time, end *time.Time, notes string, at time.Time) error {
	query := `UPDATE diary_entries SET start_time=$2, end_time=$3, notes=$4, updated_at=$5 WHERE id=$1`
	res, err := r.db.ExecContext(ctx, query, id, start.UTC(), nullTime(end), notes, at.UTC())
	if err != nil {
		return dbx.StoreError("update diary entry", err)
	}
	return expectOne(res, "update diary entry")
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diary_entries WHERE id=$1`, id)
	if err != nil {
		return dbx.StoreError("delete diary entry", err)
	}
	return expectOne(res, "delete diary entry")
}

func (r *SQLRepository) List(ctx context.Context, f Filter) ([]*models.DiaryEntry, error) {
	where, args := f.build()
	query := selectEntry + where + ` ORDER BY d.work_date DESC, d.start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.StoreError("select diary entries", err)
	}
	defer rows.Close()

	result := []*models.DiaryEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, dbx.StoreError("scan diary entry", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.StoreError("select diary entries", err)
	}
	return result, nil
}

func (f Filter) build() (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.ProjectID != "" {
		add("d.project_id=$%d", f.ProjectID)
	}
	if f.WorkerID != "" {
		add("d.worker_id=$%d", f.WorkerID)
	}
	switch {
	case f.Day != nil:
		add("d.work_date=$%d", dbx.DayArg(*f.Day))
	default:
		if f.From != nil {
			add("d.work_date>=$%d", dbx.DayArg(*f.From))
		}
		if f.To != nil {
			add("d.work_date<=$%d", dbx.DayArg(*f.To))
		}
	}
	if f.MaestroOnly {
		add("d.is_maestro=$%d", true)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.DiaryEntry, error) {
	var (
		e                                     models.DiaryEntry
		day                                   dbx.Day
		end                                   sql.NullTime
		roleID, roleName, roleDesc, roleColor sql.NullString
		worker                                models.WorkerRef
		project                               models.ProjectRef
	)
	err := s.Scan(
		&e.ID, &e.ProjectID, &e.WorkerID, &day, &e.StartTime, &end, &e.Notes, &e.IsMaestro,
		&roleID, &roleName, &roleDesc, &roleColor, &e.CreatedAt, &e.UpdatedAt,
		&worker.Name, &worker.Email, &project.Name,
	)
	if err != nil {
		return nil, err
	}
	if !day.Valid {
		return nil, errors.New("diary entry without work_date")
	}

	e.Date = day.Time
	if end.Valid {
		e.EndTime = &end.Time
	}
	e.RoleID = roleID.String
	if roleName.Valid {
		snap := models.NewRoleSnapshot(roleName.String, roleDesc.String, roleColor.String)
		e.RoleSnapshot = &snap
	}

	worker.ID = e.WorkerID
	project.ID = e.ProjectID
	e.Worker = &worker
	e.Project = &project
	return &e, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func expectOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return dbx.StoreError(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, common.ErrNotFound)
	}
	return nil
}
