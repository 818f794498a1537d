package store

import (
	"context"
	"database/sql"

	"github.com/erazemk/omara/internal/model"
)

// LoadWardrobe returns all clothing items. Empty when nothing is stored.
func LoadWardrobe(ctx context.Context, db *sql.DB) ([]model.ClothingItem, error) {
	items := []model.ClothingItem{}
	if _, err := Get(ctx, db, KeyWardrobe, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveWardrobe replaces the stored clothing items.
func SaveWardrobe(ctx context.Context, db *sql.DB, items []model.ClothingItem) error {
	return Set(ctx, db, KeyWardrobe, items)
}

// LoadWearLog returns the wear log in insertion order.
func LoadWearLog(ctx context.Context, db *sql.DB) ([]model.WornLogEntry, error) {
	log := []model.WornLogEntry{}
	if _, err := Get(ctx, db, KeyWearLog, &log); err != nil {
		return nil, err
	}
	return log, nil
}

// SaveWearLog replaces the stored wear log.
func SaveWearLog(ctx context.Context, db *sql.DB, log []model.WornLogEntry) error {
	return Set(ctx, db, KeyWearLog, log)
}

// LoadPlans returns the planned outfits keyed by date key.
func LoadPlans(ctx context.Context, db *sql.DB) (model.PlannedOutfits, error) {
	plans := model.PlannedOutfits{}
	if _, err := Get(ctx, db, KeyPlans, &plans); err != nil {
		return nil, err
	}
	if plans == nil {
		plans = model.PlannedOutfits{}
	}
	return plans, nil
}

// SavePlans replaces the stored planned outfits.
func SavePlans(ctx context.Context, db *sql.DB, plans model.PlannedOutfits) error {
	return Set(ctx, db, KeyPlans, plans)
}
