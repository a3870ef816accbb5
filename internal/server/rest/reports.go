package rest

import (
	"net/http"

	"github.com/ganatecnica/obradiary/internal/server/services"
)

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	df, err := h.dateFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	entries, err := h.reports.ListByFilter(r.Context(), services.ListFilter{
		ProjectID:  q.Get("project"),
		WorkerID:   q.Get("worker"),
		DateFilter: df,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntries(entries))
}

func (h *Handler) projectDiary(w http.ResponseWriter, r *http.Request) {
	df, err := h.dateFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	v, err := h.reports.ProjectDiaryView(r.Context(), r.PathValue("id"), df)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectDiary(v))
}

func (h *Handler) workerDiary(w http.ResponseWriter, r *http.Request) {
	df, err := h.dateFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	v, err := h.reports.WorkerDiaryView(r.Context(), r.PathValue("id"), r.URL.Query().Get("project"), df)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerDiary(v))
}

func (h *Handler) workHistory(w http.ResponseWriter, r *http.Request) {
	v, err := h.reports.WorkHistory(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkHistory(v))
}
