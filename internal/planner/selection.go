package planner

import (
	"fmt"

	"github.com/erazemk/omara/internal/datekey"
	"github.com/erazemk/omara/internal/model"
)

// Outcome is the result of toggling an item in a Selection.
type Outcome string

// Toggle outcomes.
const (
	Added    Outcome = "added"
	Removed  Outcome = "removed"
	Rejected Outcome = "rejected"
	// Pending means the item needs ironing and waits for Confirm or Decline.
	Pending Outcome = "pending_confirmation"
)

// Selection is the set of items being picked for one date. Items that need
// ironing are only added after an explicit confirmation.
type Selection struct {
	Date string
	Note string

	past    bool
	ids     []string
	pending *model.ClothingItem
}

// NewSelection starts a selection for dateKey, seeded from its saved plan.
func NewSelection(dateKey, todayKey string, plans model.PlannedOutfits) *Selection {
	plan := plans[dateKey]
	return &Selection{
		Date: dateKey,
		Note: plan.Note,
		past: datekey.Before(dateKey, todayKey),
		ids:  dedupe(plan.ItemIDs),
	}
}

// ReadOnly reports whether the selection is for a past date.
func (s *Selection) ReadOnly() bool { return s.past }

// ItemIDs returns the selected item ids in selection order.
func (s *Selection) ItemIDs() []string {
	return append([]string(nil), s.ids...)
}

// Pending returns the item waiting for confirmation, if any.
func (s *Selection) Pending() *model.ClothingItem {
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle selects item, or deselects it if already selected.
func (s *Selection) Toggle(item model.ClothingItem) (Outcome, error) {
	if s.past {
		return Rejected, fmt.Errorf("changing plan for %s: %w", s.Date, model.ErrPastDate)
	}
	if s.pending != nil {
		return Rejected, fmt.Errorf("confirmation pending for %q", s.pending.ID)
	}
	if item.Status != model.StatusAvailable {
		return Rejected, fmt.Errorf("selecting %q: %w", item.ID, model.ErrUnavailable)
	}

	if s.Has(item.ID) {
		s.remove(item.ID)
		return Removed, nil
	}
	if item.IroningStatus == model.NeedsIroning {
		p := item
		s.pending = &p
		return Pending, nil
	}
	s.ids = append(s.ids, item.ID)
	return Added, nil
}

// Preselect adds an item handed in from outside the planner. Unlike Toggle
// it never deselects an item that is already part of the plan.
func (s *Selection) Preselect(item model.ClothingItem) (Outcome, error) {
	if s.Has(item.ID) && !s.past {
		return Rejected, nil
	}
	return s.Toggle(item)
}

// Confirm adds the pending item. current is that item as it is now; if it
// stopped being available since Toggle, the confirmation is dropped and the
// item is not added.
func (s *Selection) Confirm(current model.ClothingItem) (Outcome, error) {
	if s.pending == nil {
		return Rejected, fmt.Errorf("no confirmation pending")
	}
	if current.ID != s.pending.ID {
		return Rejected, fmt.Errorf("confirming %q: pending item is %q", current.ID, s.pending.ID)
	}
	s.pending = nil
	if current.Status != model.StatusAvailable {
		return Rejected, fmt.Errorf("selecting %q: %w", current.ID, model.ErrUnavailable)
	}
	s.ids = append(s.ids, current.ID)
	return Added, nil
}

// Decline drops the pending item, leaving the selection unchanged.
func (s *Selection) Decline() (Outcome, error) {
	if s.pending == nil {
		return Rejected, fmt.Errorf("no confirmation pending")
	}
	s.pending = nil
	return Rejected, nil
}

// Commit writes the selection into plans.
func (s *Selection) Commit(plans model.PlannedOutfits, todayKey string) error {
	if s.pending != nil {
		return fmt.Errorf("confirmation pending for %q", s.pending.ID)
	}
	return SavePlan(plans, s.Date, s.ids, s.Note, todayKey)
}

func (s *Selection) remove(id string) {
	out := s.ids[:0]
	for _, v := range s.ids {
		if v != id {
			out = append(out, v)
		}
	}
	s.ids = out
}
