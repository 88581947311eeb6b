package handler

import (
	"net/http"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

func (h *Handler) CreateWorkSite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name" validate:"required"`
		Timezone     string `json:"timezone" validate:"required"`
		WeekStartDay *int32 `json:"weekStartDay" validate:"required,min=0,max=6"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	site := &domain.WorkSite{
		Name:         req.Name,
		Timezone:     req.Timezone,
		WeekStartDay: *req.WeekStartDay,
	}
	if err := h.repository.CreateWorkSite(site); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "work site created", site)
}

func (h *Handler) GetWorkSite(w http.ResponseWriter, r *http.Request) {
	site := r.Context().Value(WorkSiteCtx).(*domain.WorkSite)
	h.successResponse(w, r, "work site fetched", site)
}
