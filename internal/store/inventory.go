package store

import (
	"context"
	"database/sql"

	"github.com/erazemk/omara/internal/model"
)

// LoadInventory returns the household inventory.
func LoadInventory(ctx context.Context, db *sql.DB) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	if _, err := Get(ctx, db, KeyInventory, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveInventory replaces the stored household inventory.
func SaveInventory(ctx context.Context, db *sql.DB, items []model.InventoryItem) error {
	return Set(ctx, db, KeyInventory, items)
}
