package api

import (
	"net/http"

	"github.com/erazemk/omara/internal/wardrobe"
)

// PlannerHandler handles outfit planning endpoints.
type PlannerHandler struct {
	Svc *wardrobe.Service
}

type savePlanRequest struct {
	ItemIDs []string `json:"itemIds"`
	Note    string   `json:"note"`
	// ConfirmIroning accepts new items that still need ironing.
	ConfirmIroning bool `json:"confirmIroning"`
}

type beginSelectionRequest struct {
	Date   string `json:"date"`
	ItemID string `json:"itemId"`
}

type toggleRequest struct {
	ItemID string `json:"itemId"`
}

type commitRequest struct {
	Note string `json:"note"`
}

// ActiveDays handles GET /api/planner/days.
func (h *PlannerHandler) ActiveDays(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Svc.ActiveDays())
}

// Day handles GET /api/planner/days/{date}.
func (h *PlannerHandler) Day(w http.ResponseWriter, r *http.Request) {
	day, err := h.Svc.Day(r.PathValue("date"))
	if err != nil {
		serviceError(w, r, "get day", err)
		return
	}
	jsonResponse(w, http.StatusOK, day)
}

// SavePlan handles PUT /api/planner/days/{date}.
func (h *PlannerHandler) SavePlan(w http.ResponseWriter, r *http.Request) {
	var req savePlanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.Svc.SavePlan(r.Context(), r.PathValue("date"), req.ItemIDs, req.Note, req.ConfirmIroning)
	if err != nil {
		serviceError(w, r, "save plan", err)
		return
	}
	jsonResponse(w, http.StatusOK, plan)
}

// Selectable handles GET /api/planner/selectable.
func (h *PlannerHandler) Selectable(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Svc.Selectable())
}

// Begin handles POST /api/planner/selections.
func (h *PlannerHandler) Begin(w http.ResponseWriter, r *http.Request) {
	var req beginSelectionRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	view, err := h.Svc.BeginSelection(req.Date, req.ItemID)
	if err != nil {
		serviceError(w, r, "start selection", err)
		return
	}
	jsonResponse(w, http.StatusCreated, view)
}

// Get handles GET /api/planner/selections/{id}.
func (h *PlannerHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.Selection(r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "get selection", err)
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// Toggle handles POST /api/planner/selections/{id}/toggle.
func (h *PlannerHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Svc.Toggle(r.PathValue("id"), req.ItemID)
	if err != nil {
		serviceError(w, r, "toggle item", err)
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// Confirm handles POST /api/planner/selections/{id}/confirm.
func (h *PlannerHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.Confirm(r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "confirm item", err)
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// Decline handles POST /api/planner/selections/{id}/decline.
func (h *PlannerHandler) Decline(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.Decline(r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "decline item", err)
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// Commit handles POST /api/planner/selections/{id}/commit.
func (h *PlannerHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	plan, err := h.Svc.Commit(r.Context(), r.PathValue("id"), req.Note)
	if err != nil {
		serviceError(w, r, "save plan", err)
		return
	}
	jsonResponse(w, http.StatusOK, plan)
}

// End handles DELETE /api/planner/selections/{id}.
func (h *PlannerHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.EndSelection(r.PathValue("id")); err != nil {
		serviceError(w, r, "end selection", err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "selection discarded"})
}
