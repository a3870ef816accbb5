package rest

import (
	"fmt"
	"net/http"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/server/services"
)

func (h *Handler) clockIn(w http.ResponseWriter, r *http.Request) {
	var req clockInRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	start, err := h.parseTime("startTime", req.StartTime)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	end, err := h.parseTime("endTime", req.EndTime)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	e, err := h.diary.ClockIn(r.Context(), services.ClockInInput{
		ProjectID: req.ProjectID,
		WorkerID:  req.WorkerID,
		StartTime: start,
		EndTime:   end,
		Notes:     req.Notes,
		IsMaestro: req.IsMaestro,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "clock-in recorded", "entry_id", e.ID, "project_id", e.ProjectID, "worker_id", e.WorkerID)
	writeJSON(w, http.StatusCreated, toEntry(e))
}

func (h *Handler) clockOut(w http.ResponseWriter, r *http.Request) {
	var req clockOutRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	end, err := h.parseTime("endTime", req.EndTime)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	e, err := h.diary.ClockOut(r.Context(), services.ClockOutInput{
		ProjectID: req.ProjectID,
		WorkerID:  req.WorkerID,
		EndTime:   end,
		Notes:     req.Notes,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "clock-out recorded", "entry_id", e.ID, "total_hours", e.TotalHours())
	writeJSON(w, http.StatusOK, toEntry(e))
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	var req updateEntryRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	start, err := h.parseTime("startTime", &req.StartTime)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if start == nil {
		h.writeError(w, r, fmt.Errorf("%w: startTime is required", common.ErrValidation))
		return
	}
	end, err := h.parseTime("endTime", req.EndTime)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	e, err := h.diary.UpdateEntry(r.Context(), r.PathValue("id"), services.UpdateEntryInput{
		StartTime: *start,
		EndTime:   end,
		Notes:     req.Notes,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntry(e))
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.diary.DeleteEntry(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "diary entry deleted", "id": id})
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	e, err := h.diary.GetEntry(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntry(e))
}
