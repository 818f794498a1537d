package wardrobe

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/erazemk/omara/internal/datekey"
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/planner"
	"github.com/erazemk/omara/internal/store"
)

// maxSessions bounds the number of open selection sessions. The oldest
// session is dropped when a new one would exceed it.
const maxSessions = 32

// Day resolves the items shown for dateKey.
func (s *Service) Day(dateKey string) (planner.Day, error) {
	s.catchUp()

	if !datekey.Valid(dateKey) {
		return planner.Day{}, model.NewValidationError("date", fmt.Sprintf("invalid date key %q", dateKey))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return planner.ResolveDay(dateKey, s.today(), s.plans, s.wearLog, s.wardrobe), nil
}

// ActiveDays returns the date keys that have a plan or wear-log entries.
func (s *Service) ActiveDays() []string {
	s.catchUp()
	s.mu.Lock()
	defer s.mu.Unlock()
	return planner.ActiveDays(s.plans, s.wearLog)
}

// Selectable returns the items that can be added to a plan.
func (s *Service) Selectable() []model.ClothingItem {
	s.catchUp()
	s.mu.Lock()
	defer s.mu.Unlock()
	return planner.Selectable(s.wardrobe)
}

// Plans returns a copy of all plan records.
func (s *Service) Plans() model.PlannedOutfits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.plans)
}

// SavePlan stores the plan for dateKey, replacing any previous plan. Items
// not yet in that plan must be available; those that need ironing are only
// accepted with ironingConfirmed.
func (s *Service) SavePlan(ctx context.Context, dateKey string, itemIDs []string, note string, ironingConfirmed bool) (model.PlannedOutfit, error) {
	s.catchUp()

	s.mu.Lock()
	defer s.mu.Unlock()

	plans := maps.Clone(s.plans)
	if err := planner.SavePlan(plans, dateKey, itemIDs, note, s.today()); err != nil {
		return model.PlannedOutfit{}, err
	}
	if err := planner.CheckAdditions(s.plans, dateKey, itemIDs, s.wardrobe, ironingConfirmed); err != nil {
		return model.PlannedOutfit{}, err
	}
	if err := s.savePlans(ctx, plans); err != nil {
		return model.PlannedOutfit{}, err
	}

	s.log.Info("plan saved", "date", dateKey, "items", len(plans[dateKey].ItemIDs))
	return plans[dateKey], nil
}

// savePlans persists and publishes plans. Callers hold s.mu.
func (s *Service) savePlans(ctx context.Context, plans model.PlannedOutfits) error {
	if err := store.SavePlans(ctx, s.db, plans); err != nil {
		return err
	}
	s.plans = plans
	return nil
}

// SelectionView is the state of a selection session.
type SelectionView struct {
	ID       string              `json:"id"`
	Date     string              `json:"date"`
	Note     string              `json:"note"`
	ReadOnly bool                `json:"readOnly"`
	ItemIDs  []string            `json:"itemIds"`
	Pending  *model.ClothingItem `json:"pending,omitempty"`

	// Outcome and Reason describe the last action.
	Outcome planner.Outcome `json:"outcome,omitempty"`
	Reason  string          `json:"reason,omitempty"`
}

func viewOf(id string, sel *planner.Selection) SelectionView {
	return SelectionView{
		ID:       id,
		Date:     sel.Date,
		Note:     sel.Note,
		ReadOnly: sel.ReadOnly(),
		ItemIDs:  sel.ItemIDs(),
		Pending:  sel.Pending(),
	}
}

// BeginSelection opens a selection session for dateKey, tomorrow when empty,
// seeded from its saved plan. A non-empty preselectID is added right away
// following the usual rules.
func (s *Service) BeginSelection(dateKey, preselectID string) (SelectionView, error) {
	s.catchUp()
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	if dateKey == "" {
		tomorrow, err := datekey.AddDays(today, 1, s.now().Location())
		if err != nil {
			return SelectionView{}, err
		}
		dateKey = tomorrow
	}
	if !datekey.Valid(dateKey) {
		return SelectionView{}, model.NewValidationError("date", fmt.Sprintf("invalid date key %q", dateKey))
	}

	sel := planner.NewSelection(dateKey, today, s.plans)
	var outcome planner.Outcome
	var reason string
	if preselectID != "" {
		i := model.FindItem(s.wardrobe, preselectID)
		if i < 0 {
			return SelectionView{}, fmt.Errorf("item %q: %w", preselectID, model.ErrNotFound)
		}
		var err error
		outcome, err = sel.Preselect(s.wardrobe[i])
		if err != nil {
			reason = err.Error()
		}
	}

	id := uuid.NewString()
	s.addSession(id, sel)

	view := viewOf(id, sel)
	view.Outcome, view.Reason = outcome, reason
	return view, nil
}

// addSession registers sel, dropping the oldest session when full.
// Callers hold s.mu.
func (s *Service) addSession(id string, sel *planner.Selection) {
	if len(s.sessionOrder) >= maxSessions {
		oldest := s.sessionOrder[0]
		s.sessionOrder = s.sessionOrder[1:]
		delete(s.sessions, oldest)
	}
	s.sessions[id] = sel
	s.sessionOrder = append(s.sessionOrder, id)
}

func (s *Service) removeSession(id string) {
	delete(s.sessions, id)
	s.sessionOrder = slices.DeleteFunc(s.sessionOrder, func(v string) bool { return v == id })
}

// session returns the selection with the given id. Callers hold s.mu.
func (s *Service) session(id string) (*planner.Selection, error) {
	sel, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("selection %q: %w", id, model.ErrNotFound)
	}
	return sel, nil
}

// Selection returns the state of a session.
func (s *Service) Selection(sessionID string) (SelectionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.session(sessionID)
	if err != nil {
		return SelectionView{}, err
	}
	return viewOf(sessionID, sel), nil
}

// Toggle selects or deselects an item in a session. Rejections are reported
// in the returned view, not as errors.
func (s *Service) Toggle(sessionID, itemID string) (SelectionView, error) {
	s.catchUp()
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.session(sessionID)
	if err != nil {
		return SelectionView{}, err
	}
	i := model.FindItem(s.wardrobe, itemID)
	if i < 0 {
		return SelectionView{}, fmt.Errorf("item %q: %w", itemID, model.ErrNotFound)
	}

	outcome, err := sel.Toggle(s.wardrobe[i])
	view := viewOf(sessionID, sel)
	view.Outcome = outcome
	if err != nil {
		view.Reason = err.Error()
	}
	return view, nil
}

// Confirm adds the item waiting for ironing confirmation, provided it is
// still available.
func (s *Service) Confirm(sessionID string) (SelectionView, error) {
	return s.resolvePending(sessionID, func(sel *planner.Selection) (planner.Outcome, error) {
		var current model.ClothingItem
		if p := sel.Pending(); p != nil {
			current = model.ClothingItem{ID: p.ID}
			if i := model.FindItem(s.wardrobe, p.ID); i >= 0 {
				current = s.wardrobe[i]
			}
		}
		return sel.Confirm(current)
	})
}

// Decline drops the item waiting for ironing confirmation.
func (s *Service) Decline(sessionID string) (SelectionView, error) {
	return s.resolvePending(sessionID, (*planner.Selection).Decline)
}

func (s *Service) resolvePending(sessionID string, fn func(*planner.Selection) (planner.Outcome, error)) (SelectionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.session(sessionID)
	if err != nil {
		return SelectionView{}, err
	}
	outcome, err := fn(sel)
	view := viewOf(sessionID, sel)
	view.Outcome = outcome
	if err != nil {
		view.Reason = err.Error()
	}
	return view, nil
}

// Commit saves a session's selection as the plan for its date and closes
// the session.
func (s *Service) Commit(ctx context.Context, sessionID, note string) (model.PlannedOutfit, error) {
	s.catchUp()
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.session(sessionID)
	if err != nil {
		return model.PlannedOutfit{}, err
	}
	if sel.Pending() != nil {
		return model.PlannedOutfit{}, model.NewValidationError("pending", "confirm or decline the pending item first")
	}
	sel.Note = note

	plans := maps.Clone(s.plans)
	if err := sel.Commit(plans, s.today()); err != nil {
		return model.PlannedOutfit{}, err
	}
	// Items may have left the wardrobe or gone to the laundry since they
	// were selected. Ironing was confirmed in the session.
	if err := planner.CheckAdditions(s.plans, sel.Date, sel.ItemIDs(), s.wardrobe, true); err != nil {
		return model.PlannedOutfit{}, err
	}
	if err := s.savePlans(ctx, plans); err != nil {
		return model.PlannedOutfit{}, err
	}
	s.removeSession(sessionID)

	s.log.Info("plan saved", "date", sel.Date, "items", len(plans[sel.Date].ItemIDs))
	return plans[sel.Date], nil
}

// EndSelection discards a session without saving.
func (s *Service) EndSelection(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.session(sessionID); err != nil {
		return err
	}
	s.removeSession(sessionID)
	return nil
}
