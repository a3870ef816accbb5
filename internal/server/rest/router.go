package rest

import (
	"net/http"
	"time"
)

// Routes registers the API on a ServeMux and wraps it with recovery,
// request timeout and access logging, outermost last.
func (h *Handler) Routes(timeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// diary
	mux.HandleFunc("POST /diary", h.clockIn)
	mux.HandleFunc("PUT /diary/clock-out", h.clockOut)
	mux.HandleFunc("GET /diary", h.listEntries)
	mux.HandleFunc("GET /diary/{id}", h.getEntry)
	mux.HandleFunc("PUT /diary/{id}", h.updateEntry)
	mux.HandleFunc("DELETE /diary/{id}", h.deleteEntry)
	mux.HandleFunc("GET /diary/project/{id}", h.projectDiary)
	mux.HandleFunc("GET /diary/worker/{id}", h.workerDiary)

	// personnel and roles
	mux.HandleFunc("POST /personal", h.createWorker)
	mux.HandleFunc("GET /personal/{id}", h.getWorker)
	mux.HandleFunc("GET /personal/{id}/work-history", h.workHistory)
	mux.HandleFunc("POST /roles", h.createRole)
	mux.HandleFunc("GET /roles", h.listRoles)

	// projects
	mux.HandleFunc("POST /proyectos", h.createProject)
	mux.HandleFunc("GET /proyectos/{id}", h.getProject)
	mux.HandleFunc("PUT /proyectos/{id}/finalize", h.finalizeProject)
	mux.HandleFunc("PUT /proyectos/{id}/personal", h.assignPersonnel)

	// documents
	mux.HandleFunc("POST /proyectos/{id}/documents", h.requestUpload)
	mux.HandleFunc("GET /proyectos/{id}/documents", h.listDocuments)
	mux.HandleFunc("GET /proyectos/{id}/documents/objects", h.listObjects)
	mux.HandleFunc("GET /proyectos/{id}/documents/{docId}/url", h.documentURL)
	mux.HandleFunc("PUT /proyectos/{id}/documents/{docId}/uploaded", h.markUploaded)

	var handler http.Handler = mux
	handler = h.recoverer(handler)
	handler = withTimeout(handler, timeout)
	handler = h.accessLog(handler)
	return handler
}
