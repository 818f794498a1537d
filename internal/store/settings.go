package store

import (
	"context"
	"database/sql"
	"slices"

	"github.com/erazemk/omara/internal/model"
)

// LoadCategories returns the category set, or the default set when none is stored.
func LoadCategories(ctx context.Context, db *sql.DB) ([]string, error) {
	var categories []string
	found, err := Get(ctx, db, KeyCategories, &categories)
	if err != nil {
		return nil, err
	}
	if !found {
		return slices.Clone(model.DefaultCategories), nil
	}
	return categories, nil
}

// SaveCategories replaces the stored category set.
func SaveCategories(ctx context.Context, db *sql.DB, categories []string) error {
	return Set(ctx, db, KeyCategories, categories)
}

// LoadAppSettings returns the app settings. Missing fields keep their defaults.
func LoadAppSettings(ctx context.Context, db *sql.DB) (model.AppSettings, error) {
	settings := model.DefaultAppSettings()
	if _, err := Get(ctx, db, KeyAppSettings, &settings); err != nil {
		return model.AppSettings{}, err
	}
	return settings, nil
}

// SaveAppSettings stores the app settings.
func SaveAppSettings(ctx context.Context, db *sql.DB, settings model.AppSettings) error {
	return Set(ctx, db, KeyAppSettings, settings)
}

// LoadNotificationSettings returns the reminder settings.
func LoadNotificationSettings(ctx context.Context, db *sql.DB) (model.NotificationSettings, error) {
	settings := model.DefaultNotificationSettings()
	if _, err := Get(ctx, db, KeyNotificationSettings, &settings); err != nil {
		return model.NotificationSettings{}, err
	}
	return settings, nil
}

// SaveNotificationSettings stores the reminder settings.
func SaveNotificationSettings(ctx context.Context, db *sql.DB, settings model.NotificationSettings) error {
	return Set(ctx, db, KeyNotificationSettings, settings)
}

// LoadOnboarding reports whether onboarding was completed.
func LoadOnboarding(ctx context.Context, db *sql.DB) (bool, error) {
	var done bool
	if _, err := Get(ctx, db, KeyOnboarding, &done); err != nil {
		return false, err
	}
	return done, nil
}

// SaveOnboarding stores the onboarding flag.
func SaveOnboarding(ctx context.Context, db *sql.DB, done bool) error {
	return Set(ctx, db, KeyOnboarding, done)
}
