package laundry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/erazemk/omara/internal/model"
)

// DefaultThreshold is how long an item may sit in the laundry before it is flagged.
const DefaultThreshold = 5 * 24 * time.Hour

// NotificationID returns the stable notification id for an item.
func NotificationID(itemID string) string {
	return "laundry-" + itemID
}

// Scan returns one notification for every item that has been in the laundry
// for longer than threshold at now.
func Scan(items []model.ClothingItem, now time.Time, threshold time.Duration) []model.LaundryNotification {
	var out []model.LaundryNotification
	for _, item := range items {
		if item.Status != model.StatusInLaundry || item.AddedToLaundryAt == nil {
			continue
		}
		if now.Sub(*item.AddedToLaundryAt) <= threshold {
			continue
		}
		out = append(out, model.LaundryNotification{
			ID:      NotificationID(item.ID),
			Message: fmt.Sprintf("Your %q has been in the laundry for over %d days!", item.Name, int(threshold/(24*time.Hour))),
			ItemID:  item.ID,
		})
	}
	return out
}

// Monitor rescans the wardrobe on a timer and whenever Trigger is called, and
// keeps the latest result.
type Monitor struct {
	Source    func() []model.ClothingItem
	Now       func() time.Time
	Threshold time.Duration
	Interval  time.Duration
	Logger    *slog.Logger

	// OnScan, if set, is called with every scan result.
	OnScan func([]model.LaundryNotification)

	mu      sync.RWMutex
	latest  []model.LaundryNotification
	trigger chan struct{}
	once    sync.Once
}

func (m *Monitor) init() {
	m.once.Do(func() {
		m.trigger = make(chan struct{}, 1)
		if m.Now == nil {
			m.Now = time.Now
		}
		if m.Threshold <= 0 {
			m.Threshold = DefaultThreshold
		}
		if m.Interval <= 0 {
			m.Interval = time.Hour
		}
		if m.Logger == nil {
			m.Logger = slog.Default()
		}
	})
}

// ScanNow runs one scan synchronously and stores its result.
func (m *Monitor) ScanNow() []model.LaundryNotification {
	m.init()
	result := Scan(m.Source(), m.Now(), m.Threshold)

	m.mu.Lock()
	m.latest = result
	m.mu.Unlock()

	if m.OnScan != nil {
		m.OnScan(result)
	}
	return result
}

// Notifications returns the result of the most recent scan.
func (m *Monitor) Notifications() []model.LaundryNotification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.LaundryNotification(nil), m.latest...)
}

// Trigger requests a rescan, e.g. after the wardrobe changed. Never blocks.
func (m *Monitor) Trigger() {
	m.init()
	select {
	case m.trigger <- struct{}{}:
	default:
	}
}

// Run scans immediately, then on every tick and trigger until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.init()
	m.ScanNow()

	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Logger.Info("laundry monitor stopped")
			return
		case <-ticker.C:
		case <-m.trigger:
		}
		if n := len(m.ScanNow()); n > 0 {
			m.Logger.Info("laundry items overdue", "count", n)
		}
	}
}
