// Package insights derives wear statistics from the wear log.
package insights

import (
	"sort"

	"github.com/erazemk/omara/internal/model"
)

// Ranked is an item with the number of times it was worn.
type Ranked struct {
	Item  model.ClothingItem `json:"item"`
	Count int                `json:"count"`
}

// Rank counts wear-log entries per item, most worn first. Items no longer in
// the wardrobe are left out. Equal counts keep the order in which the items
// first appear in the wear log.
func Rank(wearLog []model.WornLogEntry, wardrobe []model.ClothingItem) []Ranked {
	counts := make(map[string]int)
	var order []string
	for _, e := range wearLog {
		if counts[e.ItemID] == 0 {
			order = append(order, e.ItemID)
		}
		counts[e.ItemID]++
	}

	byID := model.IndexItems(wardrobe)
	out := []Ranked{}
	for _, id := range order {
		item, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, Ranked{Item: item, Count: counts[id]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
