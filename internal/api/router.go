package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/omara/internal/metrics"
	"github.com/erazemk/omara/internal/wardrobe"
)

// Limits bounds request body sizes.
type Limits struct {
	MaxImageSize   int64
	MaxArchiveSize int64
}

// DefaultLimits are used for zero Limits fields.
var DefaultLimits = Limits{
	MaxImageSize:   10 << 20,
	MaxArchiveSize: 100 << 20,
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(svc *wardrobe.Service, m *metrics.Metrics, logger *slog.Logger, limits Limits) http.Handler {
	if limits.MaxImageSize <= 0 {
		limits.MaxImageSize = DefaultLimits.MaxImageSize
	}
	if limits.MaxArchiveSize <= 0 {
		limits.MaxArchiveSize = DefaultLimits.MaxArchiveSize
	}

	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Svc: svc, MaxImageSize: limits.MaxImageSize}
	laundryHandler := &LaundryHandler{Svc: svc}
	plannerHandler := &PlannerHandler{Svc: svc}
	settingsHandler := &SettingsHandler{Svc: svc}
	inventoryHandler := &InventoryHandler{Svc: svc}
	aiHandler := &AIHandler{Svc: svc, MaxArchiveSize: limits.MaxArchiveSize}

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("POST /api/items/bulk", aiHandler.BulkAdd)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)
	mux.HandleFunc("PUT /api/items/{id}/image", itemsHandler.UploadImage)

	// Images.
	mux.HandleFunc("POST /api/images", itemsHandler.CreateImage)
	mux.HandleFunc("GET /api/images/{id}", itemsHandler.GetImage)

	// Laundry.
	mux.HandleFunc("POST /api/items/{id}/laundry", laundryHandler.MoveToLaundry)
	mux.HandleFunc("POST /api/items/{id}/washed", laundryHandler.MarkItemWashed)
	mux.HandleFunc("POST /api/items/{id}/put-away", laundryHandler.PutAway)
	mux.HandleFunc("PUT /api/items/{id}/ironing", laundryHandler.SetIroning)
	mux.HandleFunc("POST /api/items/{id}/wear", laundryHandler.LogWear)
	mux.HandleFunc("POST /api/laundry/washed", laundryHandler.MarkWashed)
	mux.HandleFunc("GET /api/notifications", laundryHandler.Notifications)

	// Planner.
	mux.HandleFunc("GET /api/planner/days", plannerHandler.ActiveDays)
	mux.HandleFunc("GET /api/planner/days/{date}", plannerHandler.Day)
	mux.HandleFunc("PUT /api/planner/days/{date}", plannerHandler.SavePlan)
	mux.HandleFunc("GET /api/planner/selectable", plannerHandler.Selectable)
	mux.HandleFunc("POST /api/planner/selections", plannerHandler.Begin)
	mux.HandleFunc("GET /api/planner/selections/{id}", plannerHandler.Get)
	mux.HandleFunc("POST /api/planner/selections/{id}/toggle", plannerHandler.Toggle)
	mux.HandleFunc("POST /api/planner/selections/{id}/confirm", plannerHandler.Confirm)
	mux.HandleFunc("POST /api/planner/selections/{id}/decline", plannerHandler.Decline)
	mux.HandleFunc("POST /api/planner/selections/{id}/commit", plannerHandler.Commit)
	mux.HandleFunc("DELETE /api/planner/selections/{id}", plannerHandler.End)

	// Insights and AI.
	mux.HandleFunc("GET /api/insights/most-worn", aiHandler.MostWorn)
	mux.HandleFunc("POST /api/suggestions", aiHandler.Suggest)
	mux.HandleFunc("POST /api/import", aiHandler.Import)

	// Categories and settings.
	mux.HandleFunc("GET /api/categories", settingsHandler.ListCategories)
	mux.HandleFunc("POST /api/categories", settingsHandler.AddCategory)
	mux.HandleFunc("DELETE /api/categories/{name}", settingsHandler.DeleteCategory)
	mux.HandleFunc("GET /api/settings/app", settingsHandler.GetApp)
	mux.HandleFunc("PUT /api/settings/app", settingsHandler.UpdateApp)
	mux.HandleFunc("GET /api/settings/notifications", settingsHandler.GetNotifications)
	mux.HandleFunc("PUT /api/settings/notifications", settingsHandler.UpdateNotifications)
	mux.HandleFunc("GET /api/onboarding", settingsHandler.GetOnboarding)
	mux.HandleFunc("POST /api/onboarding", settingsHandler.CompleteOnboarding)

	// Household inventory.
	mux.HandleFunc("GET /api/inventory", inventoryHandler.List)
	mux.HandleFunc("POST /api/inventory", inventoryHandler.Create)
	mux.HandleFunc("PUT /api/inventory/{id}", inventoryHandler.Update)
	mux.HandleFunc("DELETE /api/inventory/{id}", inventoryHandler.Delete)

	// Operations.
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return LoggingMiddleware(logger, m)(mux)
}
