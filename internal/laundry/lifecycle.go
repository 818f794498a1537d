// Package laundry implements the laundry cycle of a clothing item
// (Available -> In Laundry -> Washed -> Available) and the scan that flags
// items left in the laundry too long.
package laundry

import (
	"fmt"
	"slices"
	"time"

	"github.com/erazemk/omara/internal/model"
)

func transitionError(item *model.ClothingItem, action string) error {
	return fmt.Errorf("%s %q from %q: %w", action, item.ID, item.Status, model.ErrInvalidTransition)
}

// MoveToLaundry puts an available item into the laundry. The ironing status
// is left as it is.
func MoveToLaundry(item *model.ClothingItem, now time.Time) error {
	if item.Status != model.StatusAvailable {
		return transitionError(item, "move to laundry")
	}
	enterLaundry(item, now)
	return nil
}

// Wear puts an item into the laundry because it was worn. Worn items always
// need ironing again. Valid from any status.
func Wear(item *model.ClothingItem, now time.Time) {
	enterLaundry(item, now)
	item.IroningStatus = model.NeedsIroning
}

func enterLaundry(item *model.ClothingItem, now time.Time) {
	at := now
	item.Status = model.StatusInLaundry
	item.AddedToLaundryAt = &at
}

// MarkWashed moves an item from the laundry to washed.
func MarkWashed(item *model.ClothingItem) error {
	if item.Status != model.StatusInLaundry {
		return transitionError(item, "mark washed")
	}
	item.Status = model.StatusWashed
	item.AddedToLaundryAt = nil
	return nil
}

// MarkWashedBulk marks every item in the laundry whose category is in
// categories as washed. An empty category list matches every item.
// Returns the ids of the items that changed.
func MarkWashedBulk(items []model.ClothingItem, categories []string) []string {
	var changed []string
	for i := range items {
		item := &items[i]
		if item.Status != model.StatusInLaundry {
			continue
		}
		if len(categories) > 0 && !slices.Contains(categories, item.Category) {
			continue
		}
		// Cannot fail: status checked above.
		_ = MarkWashed(item)
		changed = append(changed, item.ID)
	}
	return changed
}

// PutAway returns a washed item to the wardrobe. The ironing status is left
// as it is.
func PutAway(item *model.ClothingItem) error {
	if item.Status != model.StatusWashed {
		return transitionError(item, "put away")
	}
	item.Status = model.StatusAvailable
	return nil
}

// SetIroning sets the ironing status independently of the laundry status.
func SetIroning(item *model.ClothingItem, status model.Ironing) error {
	if !status.Valid() {
		return model.NewValidationError("ironingStatus", fmt.Sprintf("unknown ironing status %q", status))
	}
	item.IroningStatus = status
	return nil
}
