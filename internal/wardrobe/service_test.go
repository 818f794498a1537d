package wardrobe

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/omara/internal/db"
	"github.com/erazemk/omara/internal/imaging"
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/store"
)

// stubAI answers with fixed values. When gate is non-nil every call waits
// for it to be closed.
type stubAI struct {
	category string
	color    string
	gate     chan struct{}

	mu    sync.Mutex
	calls int
}

func (a *stubAI) wait() {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
	if a.gate != nil {
		<-a.gate
	}
}

func (a *stubAI) SuggestOutfit(_ context.Context, occasion string, wardrobe []model.ClothingItem) model.Suggestion {
	a.wait()
	s := model.Suggestion{Reasoning: "stub " + occasion}
	for _, item := range wardrobe {
		if item.Status == model.StatusAvailable {
			s.Top = item.ID
			break
		}
	}
	return s
}

func (a *stubAI) CategorizeImage(context.Context, []byte, string, []string) string {
	a.wait()
	return a.category
}

func (a *stubAI) DominantColor(context.Context, []byte, string) string {
	a.wait()
	return a.color
}

func (a *stubAI) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

var testNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openService(t *testing.T, opts Options) *Service {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	if opts.AI == nil {
		opts.AI = &stubAI{category: "Bottom", color: "#112233"}
	}
	svc, err := Open(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func newService(t *testing.T) *Service {
	t.Helper()
	return openService(t, Options{DB: db.NewTestDB(t)})
}

func pngBytes(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func addItem(t *testing.T, svc *Service, name, category string) model.ClothingItem {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), ItemDraft{
		Name:          name,
		Category:      category,
		DominantColor: "#000000",
		Image:         pngBytes(t, color.RGBA{1, 2, 3, 255}),
	})
	require.NoError(t, err)
	return item
}

func TestOpenEmptyDatabaseUsesDefaults(t *testing.T) {
	svc := newService(t)

	assert.Empty(t, svc.Wardrobe())
	assert.Equal(t, model.DefaultCategories, svc.Categories())
	assert.Equal(t, model.DefaultAppSettings(), svc.AppSettings())
	assert.Equal(t, model.DefaultNotificationSettings(), svc.NotificationSettings())
	assert.False(t, svc.Onboarded())
	assert.Empty(t, svc.Notifications())
}

func TestCreateItemValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, ItemDraft{Name: "Shirt", Category: "Top"})
	assert.ErrorIs(t, err, model.ErrValidation, "image is required")

	_, err = svc.CreateItem(ctx, ItemDraft{Category: "Top", Image: pngBytes(t, color.RGBA{A: 255})})
	assert.ErrorIs(t, err, model.ErrValidation, "name is required")

	_, err = svc.CreateItem(ctx, ItemDraft{Name: "Shirt", Category: "Spacesuit", Image: pngBytes(t, color.RGBA{A: 255})})
	assert.ErrorIs(t, err, model.ErrValidation, "category must exist")

	_, err = svc.CreateItem(ctx, ItemDraft{Name: "Shirt", Image: []byte("not an image")})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.CreateItem(ctx, ItemDraft{Name: "Shirt", ImageURL: ImageURL("missing")})
	assert.ErrorIs(t, err, model.ErrValidation)

	assert.Empty(t, svc.Wardrobe())
}

func TestCreateItemPersists(t *testing.T) {
	database := db.NewTestDB(t)
	svc := openService(t, Options{DB: database})

	item := addItem(t, svc, "  Blue shirt ", "top")
	assert.Equal(t, "Blue shirt", item.Name)
	assert.Equal(t, "Top", item.Category)
	assert.Equal(t, model.StatusAvailable, item.Status)
	assert.Equal(t, model.Ironed, item.IroningStatus)
	assert.NotEmpty(t, item.ID)

	id, ok := ImageID(item.ImageURL)
	require.True(t, ok)
	data, mime, err := svc.Image(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "image/jpeg", mime)

	stored, err := store.LoadWardrobe(context.Background(), database)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, item.ID, stored[0].ID)
}

func TestCreateItemEnrichesUntouchedFields(t *testing.T) {
	svc := openService(t, Options{DB: db.NewTestDB(t), AI: &stubAI{category: "bottom", color: "#112233"}})

	item, err := svc.CreateItem(context.Background(), ItemDraft{Name: "Jeans", Image: pngBytes(t, color.RGBA{0, 0, 255, 255})})
	require.NoError(t, err)
	assert.Equal(t, "Top", item.Category, "first category until categorized")

	svc.Wait()
	got, err := svc.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bottom", got.Category)
	assert.Equal(t, "#112233", got.DominantColor)
	assert.False(t, got.IsTouched(model.FieldCategory))
}

func TestLateEnrichmentNeverOverwritesUserEdit(t *testing.T) {
	stub := &stubAI{category: "Bottom", color: "#112233", gate: make(chan struct{})}
	svc := openService(t, Options{DB: db.NewTestDB(t), AI: stub})
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, ItemDraft{Name: "Dress", Image: pngBytes(t, color.RGBA{255, 0, 0, 255})})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, item.ID, ItemDraft{Name: "Red dress", Category: "Dress"})
	require.NoError(t, err)

	close(stub.gate)
	svc.Wait()

	got, err := svc.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dress", got.Category, "user edit wins")
	assert.Equal(t, "#112233", got.DominantColor, "untouched field still enriched")
	assert.Equal(t, 2, stub.count())
}

func TestEnrichmentForDeletedItemIsDropped(t *testing.T) {
	stub := &stubAI{category: "Bottom", color: "#112233", gate: make(chan struct{})}
	svc := openService(t, Options{DB: db.NewTestDB(t), AI: stub})
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, ItemDraft{Name: "Scarf", Image: pngBytes(t, color.RGBA{A: 255})})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteItem(ctx, item.ID))

	close(stub.gate)
	svc.Wait()

	assert.Empty(t, svc.Wardrobe())
	applied, err := svc.ApplyEnrichment(ctx, item.ID, model.FieldCategory, "Top")
	assert.NoError(t, err)
	assert.False(t, applied)
}

func TestApplyEnrichmentRejectsBadValues(t *testing.T) {
	svc := openService(t, Options{DB: db.NewTestDB(t), AI: &stubAI{category: "?", color: "?"}})
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, ItemDraft{Name: "Coat", Image: pngBytes(t, color.RGBA{A: 255})})
	require.NoError(t, err)
	svc.Wait()

	_, err = svc.ApplyEnrichment(ctx, item.ID, model.FieldCategory, "Spacesuit")
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = svc.ApplyEnrichment(ctx, item.ID, model.FieldColor, "blue")
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = svc.ApplyEnrichment(ctx, item.ID, "name", "x")
	assert.ErrorIs(t, err, model.ErrValidation)

	applied, err := svc.ApplyEnrichment(ctx, item.ID, model.FieldCategory, "outerwear")
	require.NoError(t, err)
	assert.True(t, applied)
	got, _ := svc.GetItem(item.ID)
	assert.Equal(t, "Outerwear", got.Category)
}

func TestAIDisabledSkipsEnrichmentAndSuggestions(t *testing.T) {
	stub := &stubAI{category: "Bottom", color: "#112233"}
	svc := openService(t, Options{DB: db.NewTestDB(t), AI: stub})
	ctx := context.Background()

	_, err := svc.SaveAppSettings(ctx, model.AppSettings{AIFeaturesEnabled: false, Theme: model.ThemeDark})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, ItemDraft{Name: "Tee", Image: pngBytes(t, color.RGBA{A: 255})})
	require.NoError(t, err)
	svc.Wait()

	got, _ := svc.GetItem(item.ID)
	assert.Equal(t, "Top", got.Category)
	assert.Empty(t, got.DominantColor)

	_, err = svc.Suggest(ctx, model.OccasionWork)
	assert.ErrorIs(t, err, model.ErrAIDisabled)
	assert.Zero(t, stub.count())
}

func TestSuggest(t *testing.T) {
	svc := newService(t)
	item := addItem(t, svc, "Shirt", "Top")

	_, err := svc.Suggest(context.Background(), "Gala")
	assert.ErrorIs(t, err, model.ErrValidation)

	s, err := svc.Suggest(context.Background(), model.OccasionParty)
	require.NoError(t, err)
	assert.Equal(t, item.ID, s.Top)
}

func TestUpdateItemKeepsDeletedCategory(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	item := addItem(t, svc, "Sheet", "Bedsheets")
	_, err := svc.DeleteCategory(ctx, "Bedsheets")
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, item.ID, ItemDraft{Name: "Linen sheet", Category: "Bedsheets"})
	require.NoError(t, err)
	assert.Equal(t, "Linen sheet", updated.Name)

	_, err = svc.UpdateItem(ctx, item.ID, ItemDraft{Name: "Sheet", Category: "Spacesuit"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.UpdateItem(ctx, "missing", ItemDraft{Name: "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListItemsFilter(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	shirt := addItem(t, svc, "Blue shirt", "Top")
	addItem(t, svc, "Jeans", "Bottom")
	_, err := svc.MoveToLaundry(ctx, shirt.ID)
	require.NoError(t, err)

	assert.Len(t, svc.ListItems(ItemFilter{}), 2)
	assert.Len(t, svc.ListItems(ItemFilter{Status: model.StatusInLaundry}), 1)
	assert.Len(t, svc.ListItems(ItemFilter{Category: "bottom"}), 1)
	assert.Len(t, svc.ListItems(ItemFilter{Query: "SHIRT"}), 1)
	assert.Empty(t, svc.ListItems(ItemFilter{Occasion: model.OccasionFormal}))
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	database := db.NewTestDB(t)
	svc := openService(t, Options{DB: database})
	item := addItem(t, svc, "Shirt", "Top")

	database.Close()

	_, err := svc.MoveToLaundry(context.Background(), item.ID)
	assert.Error(t, err)
	got, _ := svc.GetItem(item.ID)
	assert.Equal(t, model.StatusAvailable, got.Status)

	_, err = svc.AddCategory(context.Background(), "Socks")
	assert.Error(t, err)
	assert.NotContains(t, svc.Categories(), "Socks")
}

func zipOf(t *testing.T, files map[string][]byte) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return bytes.NewReader(buf.Bytes())
}

func TestImportArchiveAndBulkAdd(t *testing.T) {
	svc := openService(t, Options{DB: db.NewTestDB(t), AI: &stubAI{category: "Shoes", color: "#abcdef"}})
	ctx := context.Background()

	r := zipOf(t, map[string][]byte{
		"photos/red_sneakers.png": pngBytes(t, color.RGBA{255, 0, 0, 255}),
		"notes.txt":               []byte("hello"),
	})
	imported, err := svc.ImportArchive(ctx, r, r.Size())
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "red sneakers", imported[0].Name)
	assert.Equal(t, "Shoes", imported[0].Category)
	assert.Equal(t, "#abcdef", imported[0].DominantColor)
	assert.Empty(t, svc.Wardrobe(), "import creates no items")

	good := ItemDraft{Name: imported[0].Name, Category: imported[0].Category, ImageURL: imported[0].ImageURL}
	bad := ItemDraft{Name: "", Category: "Top", ImageURL: imported[0].ImageURL}

	_, err = svc.BulkAdd(ctx, []ItemDraft{good, bad})
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Empty(t, svc.Wardrobe(), "all or nothing")

	created, err := svc.BulkAdd(ctx, []ItemDraft{good})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, imaging.FallbackColor, created[0].DominantColor)
	assert.True(t, created[0].IsTouched(model.FieldCategory))
	assert.Len(t, svc.Wardrobe(), 1)
}

func TestImportArchiveBoundsAICalls(t *testing.T) {
	stub := &stubAI{category: "Top", color: "#abcdef", gate: make(chan struct{})}
	svc := openService(t, Options{DB: db.NewTestDB(t), AI: stub})

	files := make(map[string][]byte)
	for i := 0; i < 10; i++ {
		files[fmt.Sprintf("item-%d.png", i)] = pngBytes(t, color.RGBA{uint8(i), 0, 0, 255})
	}
	r := zipOf(t, files)

	done := make(chan []ImportedImage)
	go func() {
		imported, err := svc.ImportArchive(context.Background(), r, r.Size())
		assert.NoError(t, err)
		done <- imported
	}()

	require.Eventually(t, func() bool { return stub.count() == importWorkers }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, importWorkers, stub.count(), "no more calls start while the first ones are blocked")

	close(stub.gate)
	imported := <-done
	require.Len(t, imported, 10)
	assert.Equal(t, 20, stub.count())
	for _, img := range imported {
		assert.Equal(t, "#abcdef", img.DominantColor)
	}
}

func TestImportArchiveWithoutImages(t *testing.T) {
	svc := newService(t)

	r := zipOf(t, map[string][]byte{"readme.md": []byte("# nothing")})
	_, err := svc.ImportArchive(context.Background(), r, r.Size())
	assert.ErrorIs(t, err, model.ErrNoImages)

	junk := bytes.NewReader([]byte("not a zip"))
	_, err = svc.ImportArchive(context.Background(), junk, junk.Size())
	assert.ErrorIs(t, err, model.ErrValidation)
}
