package laundry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/omara/internal/model"
)

func inLaundrySince(id string, at time.Time) model.ClothingItem {
	item := newItem(id, "Top", model.StatusAvailable)
	item.Status = model.StatusInLaundry
	item.AddedToLaundryAt = &at
	return item
}

func TestScanThreshold(t *testing.T) {
	day := 24 * time.Hour

	got := Scan([]model.ClothingItem{inLaundrySince("x", now.Add(-6*day))}, now, DefaultThreshold)
	require.Len(t, got, 1)
	assert.Equal(t, "laundry-x", got[0].ID)
	assert.Equal(t, "x", got[0].ItemID)
	assert.Contains(t, got[0].Message, "item x")

	got = Scan([]model.ClothingItem{inLaundrySince("x", now.Add(-4*day))}, now, DefaultThreshold)
	assert.Empty(t, got)

	// Exactly at the threshold is not over it.
	got = Scan([]model.ClothingItem{inLaundrySince("x", now.Add(-5*day))}, now, DefaultThreshold)
	assert.Empty(t, got)
}

func TestScanIgnoresOtherStatuses(t *testing.T) {
	old := now.Add(-30 * 24 * time.Hour)
	washed := inLaundrySince("w", old)
	washed.Status = model.StatusWashed
	noTimestamp := newItem("n", "Top", model.StatusAvailable)
	noTimestamp.Status = model.StatusInLaundry

	got := Scan([]model.ClothingItem{washed, noTimestamp, inLaundrySince("y", old)}, now, DefaultThreshold)
	require.Len(t, got, 1)
	assert.Equal(t, "laundry-y", got[0].ID)
}

func TestScanIsStable(t *testing.T) {
	items := []model.ClothingItem{inLaundrySince("a", now.Add(-7*24*time.Hour))}
	assert.Equal(t, Scan(items, now, DefaultThreshold), Scan(items, now.Add(time.Hour), DefaultThreshold))
}

func TestMonitorTrigger(t *testing.T) {
	var mu sync.Mutex
	items := []model.ClothingItem{}

	scans := make(chan []model.LaundryNotification, 4)
	m := &Monitor{
		Source: func() []model.ClothingItem {
			mu.Lock()
			defer mu.Unlock()
			return append([]model.ClothingItem(nil), items...)
		},
		Now:      func() time.Time { return now },
		Interval: time.Hour,
		OnScan:   func(n []model.LaundryNotification) { scans <- n },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	first := <-scans
	assert.Empty(t, first)

	mu.Lock()
	items = append(items, inLaundrySince("late", now.Add(-10*24*time.Hour)))
	mu.Unlock()
	m.Trigger()

	select {
	case second := <-scans:
		require.Len(t, second, 1)
		assert.Equal(t, "laundry-late", second[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not rescan after trigger")
	}
	assert.Len(t, m.Notifications(), 1)
}
