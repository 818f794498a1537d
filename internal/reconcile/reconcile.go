// Package reconcile migrates planned outfits whose day has passed into the
// wear log and sends their items to the laundry.
package reconcile

import (
	"sort"
	"time"

	"github.com/erazemk/omara/internal/datekey"
	"github.com/erazemk/omara/internal/laundry"
	"github.com/erazemk/omara/internal/model"
)

// Input is the state the reconciler reads. It is never modified.
type Input struct {
	Plans    model.PlannedOutfits
	WearLog  []model.WornLogEntry
	Wardrobe []model.ClothingItem
}

// Result is the reconciled state.
type Result struct {
	WearLog  []model.WornLogEntry
	Wardrobe []model.ClothingItem

	// Changed is false when nothing needed migrating; callers skip persisting then.
	Changed bool
	// Dates lists the date keys migrated by this run, ascending.
	Dates []string
	// Entries is the number of wear-log entries appended.
	Entries int
	// Missing lists planned item ids that are no longer in the wardrobe.
	Missing []string
}

// Run migrates every plan dated before now's day that has no wear-log entry
// on its day yet. Entries are dated at local noon of the plan's day and
// migrated items go into the laundry needing ironing. Running it again with
// the same plans changes nothing.
func Run(in Input, now time.Time) Result {
	today := datekey.Key(now)
	loc := now.Location()

	logged := make(map[string]bool, len(in.WearLog))
	for _, e := range in.WearLog {
		logged[datekey.Key(e.Date.In(loc))] = true
	}

	var due []string
	for key, plan := range in.Plans {
		if len(plan.ItemIDs) == 0 {
			continue
		}
		if datekey.Before(key, today) && !logged[key] {
			due = append(due, key)
		}
	}
	sort.Strings(due)

	res := Result{WearLog: in.WearLog, Wardrobe: in.Wardrobe}
	if len(due) == 0 {
		return res
	}

	wearLog := append([]model.WornLogEntry(nil), in.WearLog...)
	wardrobe := append([]model.ClothingItem(nil), in.Wardrobe...)

	for _, key := range due {
		noon, err := datekey.Noon(key, loc)
		if err != nil {
			// Malformed keys never come from the planner; leave them alone.
			continue
		}
		for _, id := range in.Plans[key].ItemIDs {
			wearLog = append(wearLog, model.WornLogEntry{ItemID: id, Date: noon})
			res.Entries++

			if i := model.FindItem(wardrobe, id); i >= 0 {
				laundry.Wear(&wardrobe[i], now)
			} else {
				res.Missing = append(res.Missing, id)
			}
		}
		res.Dates = append(res.Dates, key)
	}

	res.WearLog = wearLog
	res.Wardrobe = wardrobe
	res.Changed = true
	return res
}
