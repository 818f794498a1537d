package api

import (
	"net/http"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/wardrobe"
)

// AIHandler handles suggestions, insights and bulk import endpoints.
type AIHandler struct {
	Svc            *wardrobe.Service
	MaxArchiveSize int64
}

type suggestRequest struct {
	Occasion model.Occasion `json:"occasion"`
}

type bulkAddRequest struct {
	Items []wardrobe.ItemDraft `json:"items"`
}

// Suggest handles POST /api/suggestions.
func (h *AIHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	suggestion, err := h.Svc.Suggest(r.Context(), req.Occasion)
	if err != nil {
		serviceError(w, r, "suggest outfit", err)
		return
	}
	jsonResponse(w, http.StatusOK, suggestion)
}

// MostWorn handles GET /api/insights/most-worn.
func (h *AIHandler) MostWorn(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Svc.Rank())
}

// Import handles POST /api/import with a zip file in the "archive" field.
func (h *AIHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxArchiveSize)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("archive")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "archive file required")
		return
	}
	defer file.Close()

	images, err := h.Svc.ImportArchive(r.Context(), file, header.Size)
	if err != nil {
		serviceError(w, r, "import archive", err)
		return
	}
	jsonResponse(w, http.StatusOK, images)
}

// BulkAdd handles POST /api/items/bulk.
func (h *AIHandler) BulkAdd(w http.ResponseWriter, r *http.Request) {
	var req bulkAddRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := h.Svc.BulkAdd(r.Context(), req.Items)
	if err != nil {
		serviceError(w, r, "add items", err)
		return
	}
	jsonResponse(w, http.StatusCreated, items)
}
