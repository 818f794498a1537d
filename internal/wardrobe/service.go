// Package wardrobe is the application core. It owns the in-memory
// collections, persists every change before publishing it, and connects the
// planner, laundry, reconciler, insights and AI packages.
package wardrobe

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/erazemk/omara/internal/ai"
	"github.com/erazemk/omara/internal/datekey"
	"github.com/erazemk/omara/internal/laundry"
	"github.com/erazemk/omara/internal/metrics"
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/planner"
	"github.com/erazemk/omara/internal/store"
)

// Options configures a Service.
type Options struct {
	DB      *sql.DB
	AI      ai.Service
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time

	// OverdueAfter is the laundry alert threshold.
	OverdueAfter time.Duration
	// ScanInterval is how often the laundry monitor rescans.
	ScanInterval time.Duration

	// OnNotificationSettings is called after the reminder settings changed.
	OnNotificationSettings func(model.NotificationSettings)
}

// Service holds the wardrobe state. All methods are safe for concurrent use.
type Service struct {
	db       *sql.DB
	ai       ai.Service
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
	monitor  *laundry.Monitor
	onNotify func(model.NotificationSettings)

	// mu serializes every read-modify-write of the collections below.
	mu         sync.Mutex
	wardrobe   []model.ClothingItem
	wearLog    []model.WornLogEntry
	plans      model.PlannedOutfits
	categories []string
	inventory  []model.InventoryItem
	app        model.AppSettings
	notif      model.NotificationSettings
	onboarded  bool

	// reconciledDay is the local date key of the last successful reconcile.
	reconciledDay string

	// sessions are open selection sessions; sessionOrder lists their ids
	// oldest first.
	sessions     map[string]*planner.Selection
	sessionOrder []string

	bgCtx    context.Context
	bgCancel context.CancelFunc
	bg       sync.WaitGroup
}

// Open loads every collection from the database and migrates past plans into
// the wear log.
func Open(ctx context.Context, opts Options) (*Service, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("wardrobe: database required")
	}
	if opts.AI == nil {
		opts.AI = &ai.Mock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Service{
		db:       opts.DB,
		ai:       opts.AI,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		now:      opts.Now,
		onNotify: opts.OnNotificationSettings,
		sessions: make(map[string]*planner.Selection),
	}
	s.bgCtx, s.bgCancel = context.WithCancel(context.Background())

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	s.monitor = &laundry.Monitor{
		Source: func() []model.ClothingItem {
			s.catchUp()
			return s.Wardrobe()
		},
		Now:       s.now,
		Threshold: opts.OverdueAfter,
		Interval:  opts.ScanInterval,
		Logger:    s.log.With("component", "laundry"),
		OnScan: func(n []model.LaundryNotification) {
			s.metrics.SetOverdue(len(n))
		},
	}

	if _, err := s.Reconcile(ctx); err != nil {
		return nil, err
	}
	s.monitor.ScanNow()
	return s, nil
}

func (s *Service) load(ctx context.Context) error {
	var err error
	if s.wardrobe, err = store.LoadWardrobe(ctx, s.db); err != nil {
		return fmt.Errorf("loading wardrobe: %w", err)
	}
	if s.wearLog, err = store.LoadWearLog(ctx, s.db); err != nil {
		return fmt.Errorf("loading wear log: %w", err)
	}
	if s.plans, err = store.LoadPlans(ctx, s.db); err != nil {
		return fmt.Errorf("loading plans: %w", err)
	}
	if s.categories, err = store.LoadCategories(ctx, s.db); err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	if s.inventory, err = store.LoadInventory(ctx, s.db); err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}
	if s.app, err = store.LoadAppSettings(ctx, s.db); err != nil {
		return fmt.Errorf("loading app settings: %w", err)
	}
	if s.notif, err = store.LoadNotificationSettings(ctx, s.db); err != nil {
		return fmt.Errorf("loading notification settings: %w", err)
	}
	if s.onboarded, err = store.LoadOnboarding(ctx, s.db); err != nil {
		return fmt.Errorf("loading onboarding flag: %w", err)
	}
	s.metrics.SetWardrobeSize(len(s.wardrobe))
	return nil
}

// Monitor returns the laundry alert monitor. The caller runs it.
func (s *Service) Monitor() *laundry.Monitor {
	return s.monitor
}

// Wait blocks until every background enrichment job has finished.
func (s *Service) Wait() {
	s.bg.Wait()
}

// Close cancels pending background jobs and waits for them.
func (s *Service) Close() {
	s.bgCancel()
	s.bg.Wait()
}

// Wardrobe returns a copy of all clothing items.
func (s *Service) Wardrobe() []model.ClothingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.wardrobe)
}

// WearLog returns a copy of the wear log.
func (s *Service) WearLog() []model.WornLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.wearLog)
}

// wardrobeChanged runs after a persisted wardrobe change. Never blocks.
func (s *Service) wardrobeChanged() {
	s.monitor.Trigger()
}

// saveWardrobe persists items and publishes them. Callers hold s.mu.
func (s *Service) saveWardrobe(ctx context.Context, items []model.ClothingItem) error {
	if err := store.SaveWardrobe(ctx, s.db, items); err != nil {
		return err
	}
	s.wardrobe = items
	s.metrics.SetWardrobeSize(len(items))
	return nil
}

// withItem applies fn to a copy of the item with the given id and persists
// the result. Nothing changes if fn or the write fails.
func (s *Service) withItem(ctx context.Context, id string, fn func(item *model.ClothingItem) error) (model.ClothingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := model.FindItem(s.wardrobe, id)
	if i < 0 {
		return model.ClothingItem{}, fmt.Errorf("item %q: %w", id, model.ErrNotFound)
	}

	items := slices.Clone(s.wardrobe)
	if err := fn(&items[i]); err != nil {
		return model.ClothingItem{}, err
	}
	if err := s.saveWardrobe(ctx, items); err != nil {
		return model.ClothingItem{}, err
	}

	s.wardrobeChanged()
	return items[i], nil
}

// catchUp reconciles again once the local date has moved past the last
// reconciled day, so plans of days that ended while the service was running
// reach the wear log. Must be called without s.mu held.
func (s *Service) catchUp() {
	s.mu.Lock()
	current := s.reconciledDay == s.today()
	s.mu.Unlock()
	if current {
		return
	}
	if _, err := s.Reconcile(s.bgCtx); err != nil {
		s.log.Error("reconciling past plans", "error", err)
	}
}

func (s *Service) today() string {
	return datekey.Today(s.now())
}
