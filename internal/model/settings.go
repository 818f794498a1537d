package model

import (
	"strings"
)

// DefaultCategories is the category set a new wardrobe starts with.
var DefaultCategories = []string{
	"Top",
	"Bottom",
	"Dress",
	"Outerwear",
	"Shoes",
	"Accessory",
	"Nightsuit",
	"Hair Accessory",
	"Whites",
	"Bedsheets",
}

// HasCategory reports whether name is in categories, ignoring case.
func HasCategory(categories []string, name string) bool {
	for _, c := range categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// AppSettings holds user preferences.
type AppSettings struct {
	AIFeaturesEnabled bool   `json:"aiFeaturesEnabled"`
	Theme             string `json:"theme"`
}

// DefaultAppSettings returns the settings used before the user changes anything.
func DefaultAppSettings() AppSettings {
	return AppSettings{AIFeaturesEnabled: true, Theme: ThemeLight}
}

// NotificationSettings configures the daily planning reminder.
type NotificationSettings struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"` // "HH:MM"
}

// DefaultNotificationSettings returns the reminder settings of a new install.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Enabled: false, Time: "08:00"}
}

// InventoryItem is a non-clothing household item.
type InventoryItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Location *Location `json:"location,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}
