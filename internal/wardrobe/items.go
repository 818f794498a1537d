package wardrobe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/omara/internal/imaging"
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/store"
)

// ImagePath is the URL prefix of stored images.
const ImagePath = "/api/images/"

// ImageURL returns the URL of the stored image with the given id.
func ImageURL(id string) string {
	return ImagePath + id
}

// ImageID extracts the image id from an image URL. It reports false for URLs
// that do not point at a stored image.
func ImageID(url string) (string, bool) {
	id, ok := strings.CutPrefix(url, ImagePath)
	return id, ok && id != ""
}

// ItemDraft holds the user-editable fields of a clothing item.
type ItemDraft struct {
	Name                string           `json:"name"`
	Category            string           `json:"category"`
	Occasions           []model.Occasion `json:"occasions"`
	Location            *model.Location  `json:"location,omitempty"`
	LaundryInstructions string           `json:"laundryInstructions"`
	IroningStatus       model.Ironing    `json:"ironingStatus"`
	DominantColor       string           `json:"dominantColor,omitempty"`

	// ImageURL references an already stored image.
	ImageURL string `json:"imageUrl"`
	// Image is raw image data to store. Takes precedence over ImageURL.
	Image []byte `json:"-"`
}

// ItemFilter narrows ListItems. Zero fields match everything.
type ItemFilter struct {
	Status   model.Status
	Category string
	Occasion model.Occasion
	Query    string
}

func (f ItemFilter) match(item model.ClothingItem) bool {
	if f.Status != "" && item.Status != f.Status {
		return false
	}
	if f.Category != "" && !strings.EqualFold(item.Category, f.Category) {
		return false
	}
	if f.Occasion != "" && !slices.Contains(item.Occasions, f.Occasion) {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

// ListItems returns the items matching filter in wardrobe order.
func (s *Service) ListItems(filter ItemFilter) []model.ClothingItem {
	s.catchUp()
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []model.ClothingItem{}
	for _, item := range s.wardrobe {
		if filter.match(item) {
			items = append(items, item)
		}
	}
	return items
}

// GetItem returns the item with the given id.
func (s *Service) GetItem(id string) (model.ClothingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := model.FindItem(s.wardrobe, id)
	if i < 0 {
		return model.ClothingItem{}, fmt.Errorf("item %q: %w", id, model.ErrNotFound)
	}
	return s.wardrobe[i], nil
}

// CreateItem adds a new available item. Without an explicit category the
// first category is used until background categorization replaces it; the
// dominant color is detected in the background as well.
func (s *Service) CreateItem(ctx context.Context, draft ItemDraft) (model.ClothingItem, error) {
	imageURL, img, err := s.storeDraftImage(ctx, draft)
	if err != nil {
		return model.ClothingItem{}, err
	}

	s.mu.Lock()
	item := s.newItem(draft, imageURL)
	if err := model.ValidateItem(&item, s.categories); err != nil {
		s.mu.Unlock()
		return model.ClothingItem{}, err
	}
	items := append(slices.Clone(s.wardrobe), item)
	if err := s.saveWardrobe(ctx, items); err != nil {
		s.mu.Unlock()
		return model.ClothingItem{}, err
	}
	aiOn := s.app.AIFeaturesEnabled
	categories := slices.Clone(s.categories)
	s.mu.Unlock()

	s.log.Info("item created", "id", item.ID, "name", item.Name)
	s.wardrobeChanged()

	if aiOn && img != nil {
		s.enrich(item, img, categories)
	}
	return item, nil
}

// newItem builds an item from draft. Callers hold s.mu.
func (s *Service) newItem(draft ItemDraft, imageURL string) model.ClothingItem {
	item := model.ClothingItem{
		ID:                  uuid.NewString(),
		Name:                strings.TrimSpace(draft.Name),
		Category:            draft.Category,
		Occasions:           draft.Occasions,
		Location:            draft.Location,
		ImageURL:            imageURL,
		LaundryInstructions: draft.LaundryInstructions,
		Status:              model.StatusAvailable,
		IroningStatus:       draft.IroningStatus,
		DominantColor:       draft.DominantColor,
	}
	if item.Occasions == nil {
		item.Occasions = []model.Occasion{}
	}
	if item.IroningStatus == "" {
		item.IroningStatus = model.Ironed
	}

	if item.Category != "" {
		item.Category = canonicalCategory(s.categories, item.Category)
		item.Touch(model.FieldCategory)
	} else if len(s.categories) > 0 {
		item.Category = s.categories[0]
	}
	if item.DominantColor != "" {
		item.Touch(model.FieldColor)
	}
	return item
}

// storedImage is an image kept for background enrichment.
type storedImage struct {
	data []byte
	mime string
}

// storeDraftImage stores the draft's raw image, or checks that its image URL
// points at a stored image.
func (s *Service) storeDraftImage(ctx context.Context, draft ItemDraft) (string, *storedImage, error) {
	if len(draft.Image) > 0 {
		id, img, err := s.putImage(ctx, bytes.NewReader(draft.Image))
		if err != nil {
			return "", nil, err
		}
		return ImageURL(id), img, nil
	}

	id, ok := ImageID(draft.ImageURL)
	if !ok {
		return "", nil, model.NewValidationError("image", "required")
	}
	data, mime, err := store.GetImage(ctx, s.db, id)
	if err != nil {
		return "", nil, err
	}
	if data == nil {
		return "", nil, model.NewValidationError("image", fmt.Sprintf("unknown image %q", id))
	}
	return draft.ImageURL, &storedImage{data: data, mime: mime}, nil
}

// putImage normalizes and stores an uploaded image.
func (s *Service) putImage(ctx context.Context, r io.Reader) (string, *storedImage, error) {
	res, err := imaging.Process(r)
	if err != nil {
		return "", nil, model.NewValidationError("image", err.Error())
	}
	if err := store.PutImage(ctx, s.db, res.ID, res.Data, res.MIME); err != nil {
		return "", nil, err
	}
	return res.ID, &storedImage{data: res.Data, mime: res.MIME}, nil
}

// StoreImage normalizes and stores an image without attaching it to an item.
// It returns the image URL.
func (s *Service) StoreImage(ctx context.Context, r io.Reader) (string, error) {
	id, _, err := s.putImage(ctx, r)
	if err != nil {
		return "", err
	}
	return ImageURL(id), nil
}

// Image returns a stored image.
func (s *Service) Image(ctx context.Context, id string) ([]byte, string, error) {
	data, mime, err := store.GetImage(ctx, s.db, id)
	if err != nil {
		return nil, "", err
	}
	if data == nil {
		return nil, "", fmt.Errorf("image %q: %w", id, model.ErrNotFound)
	}
	return data, mime, nil
}

// UpdateItem replaces the editable fields of an item. Laundry status is only
// changed through the laundry operations. Supplying a category or color
// marks it as chosen by the user.
func (s *Service) UpdateItem(ctx context.Context, id string, draft ItemDraft) (model.ClothingItem, error) {
	var imageURL string
	if len(draft.Image) > 0 || draft.ImageURL != "" {
		url, _, err := s.storeDraftImage(ctx, draft)
		if err != nil {
			return model.ClothingItem{}, err
		}
		imageURL = url
	}

	item, err := s.withItem(ctx, id, func(item *model.ClothingItem) error {
		previousCategory := item.Category

		item.Name = strings.TrimSpace(draft.Name)
		item.Occasions = draft.Occasions
		if item.Occasions == nil {
			item.Occasions = []model.Occasion{}
		}
		item.Location = draft.Location
		item.LaundryInstructions = draft.LaundryInstructions
		if draft.IroningStatus != "" {
			item.IroningStatus = draft.IroningStatus
		}
		if imageURL != "" {
			item.ImageURL = imageURL
		}
		if draft.Category != "" {
			item.Category = canonicalCategory(s.categories, draft.Category)
			item.Touch(model.FieldCategory)
		}
		if draft.DominantColor != "" {
			item.DominantColor = draft.DominantColor
			item.Touch(model.FieldColor)
		}

		// An item may keep a category that was deleted from the set.
		categories := s.categories
		if strings.EqualFold(item.Category, previousCategory) && !model.HasCategory(categories, item.Category) {
			categories = append(slices.Clone(categories), item.Category)
		}
		return model.ValidateItem(item, categories)
	})
	if err != nil {
		return model.ClothingItem{}, err
	}
	s.log.Info("item updated", "id", id)
	return item, nil
}

// SetImage replaces an item's image and re-runs enrichment for fields the
// user has not set.
func (s *Service) SetImage(ctx context.Context, id string, r io.Reader) (model.ClothingItem, error) {
	imageID, img, err := s.putImage(ctx, r)
	if err != nil {
		return model.ClothingItem{}, err
	}

	item, err := s.withItem(ctx, id, func(item *model.ClothingItem) error {
		item.ImageURL = ImageURL(imageID)
		return nil
	})
	if err != nil {
		return model.ClothingItem{}, err
	}

	s.mu.Lock()
	aiOn := s.app.AIFeaturesEnabled
	categories := slices.Clone(s.categories)
	s.mu.Unlock()
	if aiOn {
		s.enrich(item, img, categories)
	}
	return item, nil
}

// DeleteItem removes an item. Wear-log entries and plans that reference it
// are kept.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := model.FindItem(s.wardrobe, id)
	if i < 0 {
		return fmt.Errorf("item %q: %w", id, model.ErrNotFound)
	}
	items := slices.Delete(slices.Clone(s.wardrobe), i, i+1)
	if err := s.saveWardrobe(ctx, items); err != nil {
		return err
	}

	s.log.Info("item deleted", "id", id)
	s.wardrobeChanged()
	return nil
}

// canonicalCategory returns name in the casing used by the category set.
func canonicalCategory(categories []string, name string) string {
	for _, c := range categories {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	return name
}
