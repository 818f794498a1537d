package model

import "time"

// WornLogEntry records that an item was worn at a point in time.
// Entries are append-only and never mutated.
type WornLogEntry struct {
	ItemID string    `json:"itemId"`
	Date   time.Time `json:"date"`
}

// PlannedOutfit is the set of items planned for one date.
type PlannedOutfit struct {
	ItemIDs []string `json:"itemIds"`
	Note    string   `json:"note,omitempty"`
}

// PlannedOutfits maps date keys (YYYY-MM-DD) to plans.
type PlannedOutfits map[string]PlannedOutfit

// LaundryNotification warns that an item has been in the laundry too long.
type LaundryNotification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	ItemID  string `json:"itemId"`
}

// Suggestion is an outfit suggested for an occasion. Slot fields hold item ids.
type Suggestion struct {
	Reasoning string `json:"reasoning"`
	Top       string `json:"top,omitempty"`
	Bottom    string `json:"bottom,omitempty"`
	Dress     string `json:"dress,omitempty"`
	Outerwear string `json:"outerwear,omitempty"`
	Shoes     string `json:"shoes,omitempty"`
	Accessory string `json:"accessory,omitempty"`
}

// Slots returns pointers to the suggestion's item slots keyed by slot name.
func (s *Suggestion) Slots() map[string]*string {
	return map[string]*string{
		"top":       &s.Top,
		"bottom":    &s.Bottom,
		"dress":     &s.Dress,
		"outerwear": &s.Outerwear,
		"shoes":     &s.Shoes,
		"accessory": &s.Accessory,
	}
}

// Empty reports whether no slot is filled.
func (s *Suggestion) Empty() bool {
	for _, v := range s.Slots() {
		if *v != "" {
			return false
		}
	}
	return true
}
