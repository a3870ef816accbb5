package dbx

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
)

const dayLayout = "2006-01-02"

// Day scans a calendar-day column. pgx returns DATE as time.Time at UTC
// midnight; the SQLite schema keeps days as "YYYY-MM-DD" text. The zero
// value with Valid=false represents NULL.
type Day struct {
	Time  time.Time
	Valid bool
}

func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("dbx.Day: unsupported type %T", src)
	}
	d.Valid = true
	return nil
}

func (d *Day) parse(s string) error {
	if len(s) > len(dayLayout) {
		s = s[:len(dayLayout)]
	}
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("dbx.Day: %w", err)
	}
	d.Time, d.Valid = t, true
	return nil
}

// DayArg renders t's calendar day for use as a query argument. Both
// drivers accept the text form for DATE and TEXT columns.
func DayArg(t time.Time) string {
	return t.Format(dayLayout)
}

// StoreError maps a driver error onto the shared sentinels: no rows becomes
// common.ErrNotFound, a uniqueness conflict becomes ErrUniqueViolation and
// anything else is reported as common.ErrStoreUnavailable.
func StoreError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, common.ErrNotFound)
	case IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
	default:
		return fmt.Errorf("%s: %w: %w", op, common.ErrStoreUnavailable, err)
	}
}
