package rest

import (
	"net/http"

	"github.com/ganatecnica/obradiary/internal/server/services"
)

func (h *Handler) createWorker(w http.ResponseWriter, r *http.Request) {
	var req createWorkerRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	wk, err := h.personnel.CreateWorker(r.Context(), services.CreateWorkerInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: req.Active,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorker(wk))
}

func (h *Handler) getWorker(w http.ResponseWriter, r *http.Request) {
	wk, err := h.personnel.GetWorker(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorker(wk))
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var req createRoleRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	role, err := h.personnel.CreateRole(r.Context(), services.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRole(role))
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.personnel.ListRoles(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, toRole(role))
	}
	writeJSON(w, http.StatusOK, out)
}
