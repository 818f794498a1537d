package api

import (
	"net/http"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/wardrobe"
)

// LaundryHandler handles laundry and wear endpoints.
type LaundryHandler struct {
	Svc *wardrobe.Service
}

type ironingRequest struct {
	IroningStatus model.Ironing `json:"ironingStatus"`
}

type wearRequest struct {
	Date string `json:"date"`
}

type washRequest struct {
	Categories []string `json:"categories"`
}

// MoveToLaundry handles POST /api/items/{id}/laundry.
func (h *LaundryHandler) MoveToLaundry(w http.ResponseWriter, r *http.Request) {
	item, err := h.Svc.MoveToLaundry(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "move item to laundry", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// MarkItemWashed handles POST /api/items/{id}/washed.
func (h *LaundryHandler) MarkItemWashed(w http.ResponseWriter, r *http.Request) {
	item, err := h.Svc.MarkItemWashed(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "mark item washed", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// PutAway handles POST /api/items/{id}/put-away.
func (h *LaundryHandler) PutAway(w http.ResponseWriter, r *http.Request) {
	item, err := h.Svc.PutAway(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "put item away", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// SetIroning handles PUT /api/items/{id}/ironing.
func (h *LaundryHandler) SetIroning(w http.ResponseWriter, r *http.Request) {
	var req ironingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Svc.SetIroning(r.Context(), r.PathValue("id"), req.IroningStatus)
	if err != nil {
		serviceError(w, r, "set ironing status", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// LogWear handles POST /api/items/{id}/wear. An empty body logs today.
func (h *LaundryHandler) LogWear(w http.ResponseWriter, r *http.Request) {
	var req wearRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	item, err := h.Svc.LogWear(r.Context(), r.PathValue("id"), req.Date)
	if err != nil {
		serviceError(w, r, "log wear", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// MarkWashed handles POST /api/laundry/washed. Without categories every item
// in the laundry is marked washed.
func (h *LaundryHandler) MarkWashed(w http.ResponseWriter, r *http.Request) {
	var req washRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	changed, err := h.Svc.MarkWashed(r.Context(), req.Categories)
	if err != nil {
		serviceError(w, r, "mark laundry washed", err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"washed": changed})
}

// Notifications handles GET /api/notifications.
func (h *LaundryHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Svc.Notifications())
}
