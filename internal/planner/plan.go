// Package planner manages date-keyed outfit plans and answers which items
// belong to a given day.
package planner

import (
	"fmt"
	"sort"

	"github.com/erazemk/omara/internal/datekey"
	"github.com/erazemk/omara/internal/model"
)

// SavePlan stores itemIDs and note as the plan for dateKey, replacing any
// existing plan for that day. Past days are read-only.
func SavePlan(plans model.PlannedOutfits, dateKey string, itemIDs []string, note, todayKey string) error {
	if !datekey.Valid(dateKey) {
		return model.NewValidationError("date", fmt.Sprintf("invalid date key %q", dateKey))
	}
	if datekey.Before(dateKey, todayKey) {
		return fmt.Errorf("saving plan for %s: %w", dateKey, model.ErrPastDate)
	}
	ids := dedupe(itemIDs)
	if len(ids) == 0 {
		return model.NewValidationError("itemIds", "at least one item required")
	}
	plans[dateKey] = model.PlannedOutfit{ItemIDs: ids, Note: note}
	return nil
}

// CheckAdditions checks the items that ids would add to the saved plan for
// dateKey. Items already in that plan stay as they are, even if they have
// since gone to the laundry or been deleted. A new item must exist and be
// Available. New items that need ironing pass only when ironingConfirmed.
func CheckAdditions(plans model.PlannedOutfits, dateKey string, ids []string, wardrobe []model.ClothingItem, ironingConfirmed bool) error {
	saved := make(map[string]bool)
	for _, id := range plans[dateKey].ItemIDs {
		saved[id] = true
	}

	byID := model.IndexItems(wardrobe)
	for _, id := range dedupe(ids) {
		if saved[id] {
			continue
		}
		item, ok := byID[id]
		if !ok {
			return model.NewValidationError("itemIds", fmt.Sprintf("unknown item %q", id))
		}
		if item.Status != model.StatusAvailable {
			return fmt.Errorf("planning %q: %w", id, model.ErrUnavailable)
		}
		if item.IroningStatus == model.NeedsIroning && !ironingConfirmed {
			return model.NewValidationError("itemIds", fmt.Sprintf("item %q needs ironing, confirm ironing to plan it", id))
		}
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Day is what the planner shows for one date.
type Day struct {
	Date string `json:"date"`
	// Past days are read-only and their items come from the wear log.
	Past  bool                 `json:"past"`
	Items []model.ClothingItem `json:"items"`
	Note  string               `json:"note,omitempty"`
	// Planned reports whether a plan record exists for the day.
	Planned bool `json:"planned"`
}

// ResolveDay returns the items for dateKey. Before todayKey the wear log is
// the record of what was worn and the plan record is ignored for items; from
// todayKey on the plan record is used. Ids that no longer resolve to a
// wardrobe item are dropped.
func ResolveDay(dateKey, todayKey string, plans model.PlannedOutfits, wearLog []model.WornLogEntry, wardrobe []model.ClothingItem) Day {
	plan, planned := plans[dateKey]
	day := Day{
		Date:    dateKey,
		Note:    plan.Note,
		Planned: planned,
		Items:   []model.ClothingItem{},
	}

	var ids []string
	if datekey.Before(dateKey, todayKey) {
		day.Past = true
		for _, e := range wearLog {
			if datekey.Key(e.Date) == dateKey {
				ids = append(ids, e.ItemID)
			}
		}
	} else {
		ids = plan.ItemIDs
	}

	byID := model.IndexItems(wardrobe)
	for _, id := range dedupe(ids) {
		if item, ok := byID[id]; ok {
			day.Items = append(day.Items, item)
		}
	}
	return day
}

// ActiveDays returns every date key that has a plan or a wear-log entry, sorted.
func ActiveDays(plans model.PlannedOutfits, wearLog []model.WornLogEntry) []string {
	set := make(map[string]bool, len(plans))
	for key := range plans {
		set[key] = true
	}
	for _, e := range wearLog {
		set[datekey.Key(e.Date)] = true
	}

	days := make([]string, 0, len(set))
	for key := range set {
		days = append(days, key)
	}
	sort.Strings(days)
	return days
}

// Selectable returns the items that may be added to a plan.
func Selectable(wardrobe []model.ClothingItem) []model.ClothingItem {
	out := []model.ClothingItem{}
	for _, item := range wardrobe {
		if item.Status == model.StatusAvailable {
			out = append(out, item)
		}
	}
	return out
}
