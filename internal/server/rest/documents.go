package rest

import (
	"net/http"
)

func (h *Handler) requestUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	task, err := h.documents.RequestUpload(r.Context(), r.PathValue("id"), req.FileName, req.ContentType)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{Document: toDocument(&task.Document), UploadURL: task.URL})
}

func (h *Handler) markUploaded(w http.ResponseWriter, r *http.Request) {
	projectID, docID := r.PathValue("id"), r.PathValue("docId")
	if err := h.documents.MarkUploaded(r.Context(), projectID, docID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": docID, "uploadStatus": "completed"})
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.List(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocument(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) documentURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.documents.DownloadURL(r.Context(), r.PathValue("id"), r.PathValue("docId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) listObjects(w http.ResponseWriter, r *http.Request) {
	keys, err := h.documents.ListObjects(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"keys": keys})
}
