package wardrobe

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/reminder"
	"github.com/erazemk/omara/internal/store"
)

// Categories returns the category set in order.
func (s *Service) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// AddCategory appends a category. Names are unique ignoring case.
func (s *Service) AddCategory(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewValidationError("name", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if model.HasCategory(s.categories, name) {
		return nil, fmt.Errorf("category %q: %w", name, model.ErrDuplicateCategory)
	}
	categories := append(slices.Clone(s.categories), name)
	if err := store.SaveCategories(ctx, s.db, categories); err != nil {
		return nil, err
	}
	s.categories = categories
	return slices.Clone(categories), nil
}

// DeleteCategory removes a category. Items keep the deleted category.
func (s *Service) DeleteCategory(ctx context.Context, name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.categories, name)
	if i < 0 {
		return nil, fmt.Errorf("category %q: %w", name, model.ErrNotFound)
	}
	categories := slices.Delete(slices.Clone(s.categories), i, i+1)
	if err := store.SaveCategories(ctx, s.db, categories); err != nil {
		return nil, err
	}
	s.categories = categories
	return slices.Clone(categories), nil
}

// ListInventory returns the household inventory.
func (s *Service) ListInventory() []model.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.inventory)
}

// SaveInventoryItem creates an inventory item when its id is empty and
// replaces the existing one otherwise.
func (s *Service) SaveInventoryItem(ctx context.Context, item model.InventoryItem) (model.InventoryItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return model.InventoryItem{}, model.NewValidationError("name", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inventory := slices.Clone(s.inventory)
	if item.ID == "" {
		item.ID = uuid.NewString()
		inventory = append(inventory, item)
	} else {
		i := slices.IndexFunc(inventory, func(v model.InventoryItem) bool { return v.ID == item.ID })
		if i < 0 {
			return model.InventoryItem{}, fmt.Errorf("inventory item %q: %w", item.ID, model.ErrNotFound)
		}
		inventory[i] = item
	}

	if err := store.SaveInventory(ctx, s.db, inventory); err != nil {
		return model.InventoryItem{}, err
	}
	s.inventory = inventory
	return item, nil
}

// DeleteInventoryItem removes an inventory item.
func (s *Service) DeleteInventoryItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.inventory, func(v model.InventoryItem) bool { return v.ID == id })
	if i < 0 {
		return fmt.Errorf("inventory item %q: %w", id, model.ErrNotFound)
	}
	inventory := slices.Delete(slices.Clone(s.inventory), i, i+1)
	if err := store.SaveInventory(ctx, s.db, inventory); err != nil {
		return err
	}
	s.inventory = inventory
	return nil
}

// AppSettings returns the app settings.
func (s *Service) AppSettings() model.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app
}

// SaveAppSettings replaces the app settings.
func (s *Service) SaveAppSettings(ctx context.Context, settings model.AppSettings) (model.AppSettings, error) {
	if settings.Theme != model.ThemeLight && settings.Theme != model.ThemeDark {
		return model.AppSettings{}, model.NewValidationError("theme", fmt.Sprintf("unknown theme %q", settings.Theme))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.SaveAppSettings(ctx, s.db, settings); err != nil {
		return model.AppSettings{}, err
	}
	s.app = settings
	return settings, nil
}

// NotificationSettings returns the reminder settings.
func (s *Service) NotificationSettings() model.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notif
}

// SaveNotificationSettings replaces the reminder settings.
func (s *Service) SaveNotificationSettings(ctx context.Context, settings model.NotificationSettings) (model.NotificationSettings, error) {
	if _, _, err := reminder.ParseTime(settings.Time); err != nil {
		return model.NotificationSettings{}, model.NewValidationError("time", fmt.Sprintf("invalid time %q, want HH:MM", settings.Time))
	}

	s.mu.Lock()
	if err := store.SaveNotificationSettings(ctx, s.db, settings); err != nil {
		s.mu.Unlock()
		return model.NotificationSettings{}, err
	}
	s.notif = settings
	s.mu.Unlock()

	if s.onNotify != nil {
		s.onNotify(settings)
	}
	return settings, nil
}

// Onboarded reports whether onboarding was completed.
func (s *Service) Onboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onboarded
}

// CompleteOnboarding records that onboarding was completed.
func (s *Service) CompleteOnboarding(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.SaveOnboarding(ctx, s.db, true); err != nil {
		return err
	}
	s.onboarded = true
	return nil
}
