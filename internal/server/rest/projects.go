package rest

import (
	"fmt"
	"net/http"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/server/services"
)

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.projects.CreateProject(r.Context(), services.CreateProjectInput{
		Name:         req.Name,
		CustomerName: req.CustomerName,
		Address:      req.Address,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProject(p))
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProject(p))
}

func (h *Handler) finalizeProject(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	day, err := h.parseDay("finalizedDate", req.FinalizedDate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if day == nil {
		h.writeError(w, r, fmt.Errorf("%w: finalizedDate is required", common.ErrValidation))
		return
	}

	p, err := h.projects.Finalize(r.Context(), r.PathValue("id"), *day)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "project finalized", "project_id", p.ID, "finalized", req.FinalizedDate)
	writeJSON(w, http.StatusOK, toProject(p))
}

func (h *Handler) assignPersonnel(w http.ResponseWriter, r *http.Request) {
	var req assignPersonnelRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	a, err := h.projects.AssignPersonnel(r.Context(), r.PathValue("id"), services.AssignPersonnelInput{
		WorkerID: req.WorkerID,
		RoleID:   req.RoleID,
		Notes:    req.Notes,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assignmentResponse{ProjectID: a.ProjectID, WorkerID: a.WorkerID, RoleID: a.RoleID, Notes: a.Notes})
}
