package wardrobe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/omara/internal/db"
	"github.com/erazemk/omara/internal/model"
)

func TestCategories(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cats, err := svc.AddCategory(ctx, "  Socks ")
	require.NoError(t, err)
	assert.Equal(t, "Socks", cats[len(cats)-1])

	_, err = svc.AddCategory(ctx, "SOCKS")
	assert.ErrorIs(t, err, model.ErrDuplicateCategory)
	_, err = svc.AddCategory(ctx, " ")
	assert.ErrorIs(t, err, model.ErrValidation)

	cats, err = svc.DeleteCategory(ctx, "Socks")
	require.NoError(t, err)
	assert.NotContains(t, cats, "Socks")

	_, err = svc.DeleteCategory(ctx, "Socks")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestInventory(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.SaveInventoryItem(ctx, model.InventoryItem{Name: " "})
	assert.ErrorIs(t, err, model.ErrValidation)

	iron, err := svc.SaveInventoryItem(ctx, model.InventoryItem{Name: "Iron", Category: "Appliance"})
	require.NoError(t, err)
	assert.NotEmpty(t, iron.ID)

	iron.Notes = "descale monthly"
	_, err = svc.SaveInventoryItem(ctx, iron)
	require.NoError(t, err)

	list := svc.ListInventory()
	require.Len(t, list, 1)
	assert.Equal(t, "descale monthly", list[0].Notes)

	_, err = svc.SaveInventoryItem(ctx, model.InventoryItem{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, svc.DeleteInventoryItem(ctx, iron.ID))
	assert.Empty(t, svc.ListInventory())
	assert.ErrorIs(t, svc.DeleteInventoryItem(ctx, iron.ID), model.ErrNotFound)
}

func TestSettingsPersistAcrossRestart(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	var notified []model.NotificationSettings
	svc := openService(t, Options{
		DB:                     database,
		OnNotificationSettings: func(n model.NotificationSettings) { notified = append(notified, n) },
	})

	_, err := svc.SaveAppSettings(ctx, model.AppSettings{Theme: "neon"})
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = svc.SaveAppSettings(ctx, model.AppSettings{AIFeaturesEnabled: false, Theme: model.ThemeDark})
	require.NoError(t, err)

	_, err = svc.SaveNotificationSettings(ctx, model.NotificationSettings{Enabled: true, Time: "7am"})
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = svc.SaveNotificationSettings(ctx, model.NotificationSettings{Enabled: true, Time: "07:30"})
	require.NoError(t, err)
	require.Len(t, notified, 1)
	assert.Equal(t, "07:30", notified[0].Time)

	require.NoError(t, svc.CompleteOnboarding(ctx))

	again := openService(t, Options{DB: database})
	assert.Equal(t, model.AppSettings{AIFeaturesEnabled: false, Theme: model.ThemeDark}, again.AppSettings())
	assert.Equal(t, model.NotificationSettings{Enabled: true, Time: "07:30"}, again.NotificationSettings())
	assert.True(t, again.Onboarded())
}
