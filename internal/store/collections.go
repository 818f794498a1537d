package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection keys.
const (
	KeyWardrobe             = "wardrobe"
	KeyWearLog              = "wornLog"
	KeyPlans                = "plannedOutfits"
	KeyCategories           = "categories"
	KeyInventory            = "inventory"
	KeyAppSettings          = "appSettings"
	KeyNotificationSettings = "notificationSettings"
	KeyOnboarding           = "onboardingComplete"
)

// Entry is one collection write in a SaveAll batch.
type Entry struct {
	Key   string
	Value any
}

// Get decodes the collection stored under key into dst.
// It reports false and leaves dst untouched when the key is absent.
func Get(ctx context.Context, db *sql.DB, key string, dst any) (bool, error) {
	var raw string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM collections WHERE key = ?`, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("getting %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// Set stores v under key, replacing any previous value.
func Set(ctx context.Context, db *sql.DB, key string, v any) error {
	return SaveAll(ctx, db, Entry{Key: key, Value: v})
}

// SaveAll stores every entry in a single transaction.
func SaveAll(ctx context.Context, db *sql.DB, entries ...Entry) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		raw, err := json.Marshal(e.Value)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", e.Key, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO collections (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			e.Key, string(raw),
		)
		if err != nil {
			return fmt.Errorf("storing %s: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
