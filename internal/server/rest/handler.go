// Package rest exposes the diary services as a JSON HTTP API.
package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/logging"
	"github.com/ganatecnica/obradiary/internal/server/services"
	"github.com/ganatecnica/obradiary/internal/timex"
)

// maxBodyBytes caps request bodies; none of the API payloads come close.
const maxBodyBytes = 1 << 20

type Handler struct {
	diary     DiaryService
	reports   ReportService
	projects  ProjectService
	personnel PersonnelService
	documents DocumentService
	loc       *time.Location
	logger    logging.Logger
}

type Services struct {
	Diary     DiaryService
	Reports   ReportService
	Projects  ProjectService
	Personnel PersonnelService
	Documents DocumentService
}

func NewHandler(s Services, loc *time.Location, l logging.Logger) *Handler {
	return &Handler{
		diary:     s.Diary,
		reports:   s.Reports,
		projects:  s.Projects,
		personnel: s.Personnel,
		documents: s.Documents,
		loc:       loc,
		logger:    l.With("module", "rest"),
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", common.ErrValidation, err)
	}
	return nil
}

func (h *Handler) parseTime(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := timex.ParseTimestamp(*s, h.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrValidation, field, err)
	}
	return &t, nil
}

func (h *Handler) parseDay(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := timex.ParseDay(s, h.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrValidation, field, err)
	}
	return &t, nil
}

// dateFilter reads date, startDate and endDate from the query string.
func (h *Handler) dateFilter(r *http.Request) (services.DateFilter, error) {
	q := r.URL.Query()

	var (
		f   services.DateFilter
		err error
	)
	if f.Day, err = h.parseDay("date", q.Get("date")); err != nil {
		return f, err
	}
	if f.From, err = h.parseDay("startDate", q.Get("startDate")); err != nil {
		return f, err
	}
	if f.To, err = h.parseDay("endDate", q.Get("endDate")); err != nil {
		return f, err
	}
	return f, nil
}
