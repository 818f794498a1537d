package wardrobe

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/erazemk/omara/internal/datekey"
	"github.com/erazemk/omara/internal/laundry"
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/reconcile"
	"github.com/erazemk/omara/internal/store"
)

// MoveToLaundry sends an available item to the laundry.
func (s *Service) MoveToLaundry(ctx context.Context, id string) (model.ClothingItem, error) {
	now := s.now()
	return s.withItem(ctx, id, func(item *model.ClothingItem) error {
		return laundry.MoveToLaundry(item, now)
	})
}

// MarkItemWashed marks one item in the laundry as washed.
func (s *Service) MarkItemWashed(ctx context.Context, id string) (model.ClothingItem, error) {
	return s.withItem(ctx, id, laundry.MarkWashed)
}

// MarkWashed marks every item in the laundry whose category is in categories
// as washed. An empty list marks all of them. Returns the changed ids.
func (s *Service) MarkWashed(ctx context.Context, categories []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := slices.Clone(s.wardrobe)
	changed := laundry.MarkWashedBulk(items, categories)
	if len(changed) == 0 {
		return []string{}, nil
	}
	if err := s.saveWardrobe(ctx, items); err != nil {
		return nil, err
	}

	s.log.Info("laundry washed", "count", len(changed), "categories", categories)
	s.wardrobeChanged()
	return changed, nil
}

// PutAway returns a washed item to the wardrobe.
func (s *Service) PutAway(ctx context.Context, id string) (model.ClothingItem, error) {
	return s.withItem(ctx, id, laundry.PutAway)
}

// SetIroning sets an item's ironing status.
func (s *Service) SetIroning(ctx context.Context, id string, status model.Ironing) (model.ClothingItem, error) {
	return s.withItem(ctx, id, func(item *model.ClothingItem) error {
		return laundry.SetIroning(item, status)
	})
}

// LogWear records that an item was worn on dateKey (today when empty) and
// sends it to the laundry. Future dates are rejected.
func (s *Service) LogWear(ctx context.Context, id, dateKey string) (model.ClothingItem, error) {
	now := s.now()
	if dateKey == "" {
		dateKey = datekey.Today(now)
	}
	if !datekey.Valid(dateKey) {
		return model.ClothingItem{}, model.NewValidationError("date", fmt.Sprintf("invalid date key %q", dateKey))
	}
	if datekey.Before(datekey.Today(now), dateKey) {
		return model.ClothingItem{}, model.NewValidationError("date", "cannot log wear for a future date")
	}
	noon, err := datekey.Noon(dateKey, now.Location())
	if err != nil {
		return model.ClothingItem{}, model.NewValidationError("date", err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := model.FindItem(s.wardrobe, id)
	if i < 0 {
		return model.ClothingItem{}, fmt.Errorf("item %q: %w", id, model.ErrNotFound)
	}
	items := slices.Clone(s.wardrobe)
	laundry.Wear(&items[i], now)
	wearLog := append(slices.Clone(s.wearLog), model.WornLogEntry{ItemID: id, Date: noon})

	err = store.SaveAll(ctx, s.db,
		store.Entry{Key: store.KeyWearLog, Value: wearLog},
		store.Entry{Key: store.KeyWardrobe, Value: items},
	)
	if err != nil {
		return model.ClothingItem{}, err
	}
	s.wearLog = wearLog
	s.wardrobe = items

	s.log.Info("wear logged", "id", id, "date", dateKey)
	s.wardrobeChanged()
	return items[i], nil
}

// Reconcile moves plans of past days that were never logged into the wear
// log and sends their items to the laundry. Safe to run any number of times.
func (s *Service) Reconcile(ctx context.Context) (reconcile.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	res := reconcile.Run(reconcile.Input{
		Plans:    s.plans,
		WearLog:  s.wearLog,
		Wardrobe: s.wardrobe,
	}, now)
	if !res.Changed {
		s.reconciledDay = datekey.Today(now)
		return res, nil
	}

	err := store.SaveAll(ctx, s.db,
		store.Entry{Key: store.KeyWearLog, Value: res.WearLog},
		store.Entry{Key: store.KeyWardrobe, Value: res.Wardrobe},
	)
	if err != nil {
		return reconcile.Result{}, fmt.Errorf("saving reconciled state: %w", err)
	}
	s.wearLog = res.WearLog
	s.wardrobe = res.Wardrobe
	s.reconciledDay = datekey.Today(now)
	s.metrics.SetWardrobeSize(len(res.Wardrobe))

	s.metrics.AddReconciled(res.Entries)
	s.log.Info("past plans reconciled", "days", len(res.Dates), "entries", res.Entries)
	if len(res.Missing) > 0 {
		s.log.Warn("planned items no longer in wardrobe", "ids", res.Missing)
	}
	s.wardrobeChanged()
	return res, nil
}

// Notifications returns the current laundry alerts.
func (s *Service) Notifications() []model.LaundryNotification {
	n := s.monitor.ScanNow()
	if n == nil {
		n = []model.LaundryNotification{}
	}
	return n
}

// OverdueThreshold returns the laundry alert threshold in use.
func (s *Service) OverdueThreshold() time.Duration {
	return s.monitor.Threshold
}
