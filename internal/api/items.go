package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/erazemk/omara/internal/imaging"
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/wardrobe"
)

// ItemsHandler handles clothing item and image endpoints.
type ItemsHandler struct {
	Svc          *wardrobe.Service
	MaxImageSize int64
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.Svc.ListItems(wardrobe.ItemFilter{
		Status:   model.Status(q.Get("status")),
		Category: q.Get("category"),
		Occasion: model.Occasion(q.Get("occasion")),
		Query:    q.Get("q"),
	})
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. The image is referenced by the imageUrl
// returned from POST /api/images.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wardrobe.ItemDraft
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Svc.CreateItem(r.Context(), req)
	if err != nil {
		serviceError(w, r, "create item", err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Svc.GetItem(r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "get item", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req wardrobe.ItemDraft
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Svc.UpdateItem(r.Context(), r.PathValue("id"), req)
	if err != nil {
		serviceError(w, r, "update item", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, r, "delete item", err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// readImage reads the "image" file of a multipart upload.
func (h *ItemsHandler) readImage(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxImageSize)

	if err := r.ParseMultipartForm(h.MaxImageSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return nil, false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, "image too large")
			return nil, false
		}
		jsonError(w, http.StatusInternalServerError, "failed to read image")
		return nil, false
	}

	// Validate by content, not by the client's Content-Type.
	if _, ok := imaging.DetectMIME(data); !ok {
		jsonError(w, http.StatusBadRequest, "image must be JPEG, PNG, or GIF")
		return nil, false
	}
	return data, true
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readImage(w, r)
	if !ok {
		return
	}

	item, err := h.Svc.SetImage(r.Context(), r.PathValue("id"), bytes.NewReader(data))
	if err != nil {
		serviceError(w, r, "save image", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// CreateImage handles POST /api/images.
func (h *ItemsHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readImage(w, r)
	if !ok {
		return
	}

	url, err := h.Svc.StoreImage(r.Context(), bytes.NewReader(data))
	if err != nil {
		serviceError(w, r, "save image", err)
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]string{"imageUrl": url})
}

// GetImage handles GET /api/images/{id}.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := h.Svc.Image(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "get image", err)
		return
	}

	// Image ids are content hashes; the bytes behind an id never change.
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Write(data)
}
