package api

import (
	"net/http"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/wardrobe"
)

// SettingsHandler handles categories, settings and onboarding endpoints.
type SettingsHandler struct {
	Svc *wardrobe.Service
}

type categoryRequest struct {
	Name string `json:"name"`
}

// ListCategories handles GET /api/categories.
func (h *SettingsHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Svc.Categories())
}

// AddCategory handles POST /api/categories.
func (h *SettingsHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	categories, err := h.Svc.AddCategory(r.Context(), req.Name)
	if err != nil {
		serviceError(w, r, "add category", err)
		return
	}
	jsonResponse(w, http.StatusCreated, categories)
}

// DeleteCategory handles DELETE /api/categories/{name}.
func (h *SettingsHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.DeleteCategory(r.Context(), r.PathValue("name"))
	if err != nil {
		serviceError(w, r, "delete category", err)
		return
	}
	jsonResponse(w, http.StatusOK, categories)
}

// GetApp handles GET /api/settings/app.
func (h *SettingsHandler) GetApp(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Svc.AppSettings())
}

// UpdateApp handles PUT /api/settings/app.
func (h *SettingsHandler) UpdateApp(w http.ResponseWriter, r *http.Request) {
	req := h.Svc.AppSettings()
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.Svc.SaveAppSettings(r.Context(), req)
	if err != nil {
		serviceError(w, r, "save settings", err)
		return
	}
	jsonResponse(w, http.StatusOK, settings)
}

// GetNotifications handles GET /api/settings/notifications.
func (h *SettingsHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Svc.NotificationSettings())
}

// UpdateNotifications handles PUT /api/settings/notifications.
func (h *SettingsHandler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	req := h.Svc.NotificationSettings()
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.Svc.SaveNotificationSettings(r.Context(), req)
	if err != nil {
		serviceError(w, r, "save notification settings", err)
		return
	}
	jsonResponse(w, http.StatusOK, settings)
}

// GetOnboarding handles GET /api/onboarding.
func (h *SettingsHandler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]bool{"onboardingComplete": h.Svc.Onboarded()})
}

// CompleteOnboarding handles POST /api/onboarding.
func (h *SettingsHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.CompleteOnboarding(r.Context()); err != nil {
		serviceError(w, r, "complete onboarding", err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"onboardingComplete": true})
}

// InventoryHandler handles household inventory endpoints.
type InventoryHandler struct {
	Svc *wardrobe.Service
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Svc.ListInventory())
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.InventoryItem
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = ""

	item, err := h.Svc.SaveInventoryItem(r.Context(), req)
	if err != nil {
		serviceError(w, r, "create inventory item", err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/inventory/{id}.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.InventoryItem
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = r.PathValue("id")

	item, err := h.Svc.SaveInventoryItem(r.Context(), req)
	if err != nil {
		serviceError(w, r, "update inventory item", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteInventoryItem(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, r, "delete inventory item", err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "inventory item deleted"})
}
