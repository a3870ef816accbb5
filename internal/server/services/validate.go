package services

import (
	"fmt"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/timex"
	"github.com/google/uuid"
)

// requireID rejects empty or malformed ids with common.ErrValidation.
func requireID(field, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s is required", common.ErrValidation, field)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s is not a valid id", common.ErrValidation, field)
	}
	return nil
}

// localize presents stored values in loc: the day is re-anchored at local
// midnight, timestamps are converted.
func localize(e *models.DiaryEntry, loc *time.Location) *models.DiaryEntry {
	e.Date = timex.CivilDay(e.Date, loc)
	e.StartTime = e.StartTime.In(loc)
	if e.EndTime != nil {
		end := e.EndTime.In(loc)
		e.EndTime = &end
	}
	return e
}

func localizeAll(entries []*models.DiaryEntry, loc *time.Location) []*models.DiaryEntry {
	for _, e := range entries {
		localize(e, loc)
	}
	return entries
}
