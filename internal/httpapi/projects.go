package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(w, "limit must be an integer")
			return
		}
		limit = parsed
	}

	projects, err := h.catalog.List(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	project, found, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "project not found"})
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	res := h.sync.Sync(r.Context())
	if !res.Success {
		writeJSON(w, http.StatusBadGateway, syncResponse{Success: false, Error: res.Error})
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{
		Success: true,
		Count:   &res.Count,
		Created: &res.Created,
		Skipped: &res.Skipped,
	})
}

func projectIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid project id")
		return 0, false
	}
	return id, true
}
