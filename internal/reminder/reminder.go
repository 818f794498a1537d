// Package reminder sends the daily "plan your outfit" reminder.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/erazemk/omara/internal/model"
)

// Reminder text.
const (
	Title = "Outfit Planner Reminder"
	Body  = "Don't forget to plan your outfit for tomorrow!"
)

// Notifier delivers a reminder.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// LogNotifier delivers reminders to a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify logs the reminder at info level.
func (n LogNotifier) Notify(ctx context.Context, title, body string) error {
	n.Logger.InfoContext(ctx, "reminder", "title", title, "body", body)
	return nil
}

// ParseTime parses an "HH:MM" reminder time.
func ParseTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid reminder time %q: %w", s, model.ErrValidation)
	}
	return t.Hour(), t.Minute(), nil
}

// Due reports whether the reminder should fire at now. It fires when the
// reminder is enabled, now's local hour and minute match the configured
// time, and it has not already fired during that minute.
func Due(settings model.NotificationSettings, now, lastFired time.Time) bool {
	if !settings.Enabled {
		return false
	}
	hour, minute, err := ParseTime(settings.Time)
	if err != nil {
		return false
	}
	if now.Hour() != hour || now.Minute() != minute {
		return false
	}
	if lastFired.IsZero() {
		return true
	}
	return !now.Truncate(time.Minute).Equal(lastFired.Truncate(time.Minute))
}

// Runner checks the reminder on a ticker until its context is done.
type Runner struct {
	Settings func() model.NotificationSettings
	Notifier Notifier
	Now      func() time.Time
	Interval time.Duration
	Logger   *slog.Logger

	// OnSent, if set, is called after every delivered reminder.
	OnSent func()

	mu     sync.Mutex
	last   time.Time
	reload chan struct{}
	once   sync.Once
}

func (r *Runner) init() {
	r.once.Do(func() {
		r.reload = make(chan struct{}, 1)
		if r.Now == nil {
			r.Now = time.Now
		}
		if r.Interval <= 0 {
			r.Interval = time.Minute
		}
		if r.Logger == nil {
			r.Logger = slog.Default()
		}
	})
}

// Check sends the reminder if it is due and reports whether it did.
func (r *Runner) Check(ctx context.Context) bool {
	r.init()
	now := r.Now()

	r.mu.Lock()
	due := Due(r.Settings(), now, r.last)
	if due {
		r.last = now
	}
	r.mu.Unlock()

	if !due {
		return false
	}
	if err := r.Notifier.Notify(ctx, Title, Body); err != nil {
		r.Logger.Error("sending reminder", "error", err)
		return false
	}
	if r.OnSent != nil {
		r.OnSent()
	}
	return true
}

// Reload makes the runner pick up changed settings right away. Never blocks.
func (r *Runner) Reload() {
	r.init()
	select {
	case r.reload <- struct{}{}:
	default:
	}
}

// Run checks on every tick until ctx is done. A reload restarts the ticker.
func (r *Runner) Run(ctx context.Context) {
	r.init()

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("reminder runner stopped")
			return
		case <-ticker.C:
		case <-r.reload:
			ticker.Reset(r.Interval)
			r.Logger.Info("reminder settings reloaded", "enabled", r.Settings().Enabled, "time", r.Settings().Time)
		}
		r.Check(ctx)
	}
}
