package wardrobe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/planner"
)

func TestSavePlan(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	item := addItem(t, svc, "Shirt", "Top")

	_, err := svc.SavePlan(ctx, "2024-05-09", []string{item.ID}, "", false)
	assert.ErrorIs(t, err, model.ErrPastDate)
	_, err = svc.SavePlan(ctx, "2024-05-11", nil, "", false)
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = svc.SavePlan(ctx, "2024-05-11", []string{"ghost"}, "", false)
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = svc.SavePlan(ctx, "11/05/2024", []string{item.ID}, "", false)
	assert.ErrorIs(t, err, model.ErrValidation)

	plan, err := svc.SavePlan(ctx, "2024-05-10", []string{item.ID, item.ID}, "today", false)
	require.NoError(t, err)
	assert.Equal(t, []string{item.ID}, plan.ItemIDs)

	day, err := svc.Day("2024-05-10")
	require.NoError(t, err)
	assert.False(t, day.Past)
	require.Len(t, day.Items, 1)
	assert.Equal(t, "today", day.Note)

	assert.Equal(t, []string{"2024-05-10"}, svc.ActiveDays())
	assert.Len(t, svc.Plans(), 1)
}

func TestSavePlanRequiresAvailableItems(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	shirt := addItem(t, svc, "Shirt", "Top")
	dirty := addItem(t, svc, "Dirty", "Top")
	wrinkled := addItem(t, svc, "Wrinkled", "Bottom")
	_, err := svc.MoveToLaundry(ctx, dirty.ID)
	require.NoError(t, err)
	_, err = svc.SetIroning(ctx, wrinkled.ID, model.NeedsIroning)
	require.NoError(t, err)

	_, err = svc.SavePlan(ctx, "2024-05-11", []string{shirt.ID, dirty.ID}, "", true)
	assert.ErrorIs(t, err, model.ErrUnavailable)
	_, err = svc.SavePlan(ctx, "2024-05-11", []string{wrinkled.ID}, "", false)
	assert.ErrorIs(t, err, model.ErrValidation, "ironing must be confirmed")
	assert.Empty(t, svc.Plans())

	plan, err := svc.SavePlan(ctx, "2024-05-11", []string{shirt.ID, wrinkled.ID}, "", true)
	require.NoError(t, err)
	assert.Equal(t, []string{shirt.ID, wrinkled.ID}, plan.ItemIDs)

	// Items already in the plan may be kept after they went to the laundry.
	_, err = svc.MoveToLaundry(ctx, shirt.ID)
	require.NoError(t, err)
	plan, err = svc.SavePlan(ctx, "2024-05-11", []string{shirt.ID}, "keep", false)
	require.NoError(t, err)
	assert.Equal(t, []string{shirt.ID}, plan.ItemIDs)
}

func TestSelectionSessionWithIroningConfirmation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	shirt := addItem(t, svc, "Shirt", "Top")
	trousers := addItem(t, svc, "Trousers", "Bottom")
	_, err := svc.SetIroning(ctx, trousers.ID, model.NeedsIroning)
	require.NoError(t, err)

	view, err := svc.BeginSelection("", shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-11", view.Date, "defaults to tomorrow")
	assert.Equal(t, planner.Added, view.Outcome)
	assert.Equal(t, []string{shirt.ID}, view.ItemIDs)

	view, err = svc.Toggle(view.ID, trousers.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Pending, view.Outcome)
	require.NotNil(t, view.Pending)
	assert.Equal(t, trousers.ID, view.Pending.ID)

	_, err = svc.Commit(ctx, view.ID, "")
	assert.ErrorIs(t, err, model.ErrValidation, "cannot commit while a confirmation is pending")

	view, err = svc.Toggle(view.ID, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Rejected, view.Outcome)
	assert.NotEmpty(t, view.Reason)

	view, err = svc.Confirm(view.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Added, view.Outcome)
	assert.Equal(t, []string{shirt.ID, trousers.ID}, view.ItemIDs)

	plan, err := svc.Commit(ctx, view.ID, "dinner")
	require.NoError(t, err)
	assert.Equal(t, []string{shirt.ID, trousers.ID}, plan.ItemIDs)
	assert.Equal(t, "dinner", plan.Note)

	_, err = svc.Selection(view.ID)
	assert.ErrorIs(t, err, model.ErrNotFound, "committed sessions are closed")
}

func TestSelectionDeclineAndUnavailable(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	shirt := addItem(t, svc, "Shirt", "Top")
	dirty := addItem(t, svc, "Dirty", "Top")
	_, err := svc.SetIroning(ctx, shirt.ID, model.NeedsIroning)
	require.NoError(t, err)
	_, err = svc.MoveToLaundry(ctx, dirty.ID)
	require.NoError(t, err)

	view, err := svc.BeginSelection("2024-05-12", "")
	require.NoError(t, err)

	view, err = svc.Toggle(view.ID, shirt.ID)
	require.NoError(t, err)
	require.Equal(t, planner.Pending, view.Outcome)

	view, err = svc.Decline(view.ID)
	require.NoError(t, err)
	assert.Empty(t, view.ItemIDs)
	assert.Nil(t, view.Pending)

	view, err = svc.Toggle(view.ID, dirty.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Rejected, view.Outcome)

	_, err = svc.Toggle(view.ID, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, svc.EndSelection(view.ID))
	assert.ErrorIs(t, svc.EndSelection(view.ID), model.ErrNotFound)
}

func TestConfirmAndCommitRecheckItems(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	shirt := addItem(t, svc, "Shirt", "Top")
	wrinkled := addItem(t, svc, "Wrinkled", "Bottom")
	_, err := svc.SetIroning(ctx, wrinkled.ID, model.NeedsIroning)
	require.NoError(t, err)

	view, err := svc.BeginSelection("", "")
	require.NoError(t, err)
	view, err = svc.Toggle(view.ID, wrinkled.ID)
	require.NoError(t, err)
	require.Equal(t, planner.Pending, view.Outcome)

	_, err = svc.MoveToLaundry(ctx, wrinkled.ID)
	require.NoError(t, err)

	view, err = svc.Confirm(view.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Rejected, view.Outcome)
	assert.NotEmpty(t, view.Reason)
	assert.Empty(t, view.ItemIDs)
	assert.Nil(t, view.Pending)

	view, err = svc.Toggle(view.ID, shirt.ID)
	require.NoError(t, err)
	require.Equal(t, planner.Added, view.Outcome)

	_, err = svc.MoveToLaundry(ctx, shirt.ID)
	require.NoError(t, err)

	_, err = svc.Commit(ctx, view.ID, "")
	assert.ErrorIs(t, err, model.ErrUnavailable)
	assert.Empty(t, svc.Plans())

	_, err = svc.Selection(view.ID)
	assert.NoError(t, err, "a failed commit keeps the session open")
}

func TestPastSelectionIsReadOnly(t *testing.T) {
	svc := newService(t)
	shirt := addItem(t, svc, "Shirt", "Top")

	view, err := svc.BeginSelection("2024-05-01", "")
	require.NoError(t, err)
	assert.True(t, view.ReadOnly)

	view, err = svc.Toggle(view.ID, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Rejected, view.Outcome)

	_, err = svc.BeginSelection("May 1st", "")
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = svc.BeginSelection("", "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionsAreBounded(t *testing.T) {
	svc := newService(t)

	first, err := svc.BeginSelection("", "")
	require.NoError(t, err)
	for i := 0; i < maxSessions; i++ {
		_, err := svc.BeginSelection("", "")
		require.NoError(t, err)
	}

	_, err = svc.Selection(first.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRank(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a := addItem(t, svc, "A", "Top")
	b := addItem(t, svc, "B", "Top")
	for _, id := range []string{b.ID, a.ID, a.ID} {
		_, err := svc.LogWear(ctx, id, "")
		require.NoError(t, err)
	}

	ranked := svc.Rank()
	require.Len(t, ranked, 2)
	assert.Equal(t, a.ID, ranked[0].Item.ID)
	assert.Equal(t, 2, ranked[0].Count)
	assert.Equal(t, b.ID, ranked[1].Item.ID)
}
