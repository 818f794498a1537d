package wardrobe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/omara/internal/ai"
	"github.com/erazemk/omara/internal/bulkimport"
	"github.com/erazemk/omara/internal/imaging"
	"github.com/erazemk/omara/internal/insights"
	"github.com/erazemk/omara/internal/model"
)

// Suggest asks the AI collaborator for an outfit for occasion.
func (s *Service) Suggest(ctx context.Context, occasion model.Occasion) (model.Suggestion, error) {
	if !occasion.Valid() {
		return model.Suggestion{}, model.NewValidationError("occasion", fmt.Sprintf("unknown occasion %q", occasion))
	}

	s.mu.Lock()
	aiOn := s.app.AIFeaturesEnabled
	wardrobe := slices.Clone(s.wardrobe)
	s.mu.Unlock()

	if !aiOn {
		return model.Suggestion{}, model.ErrAIDisabled
	}
	s.metrics.AICall("suggest")
	return s.ai.SuggestOutfit(ctx, string(occasion), wardrobe), nil
}

// Rank returns the wardrobe items by number of times worn.
func (s *Service) Rank() []insights.Ranked {
	s.catchUp()
	s.mu.Lock()
	defer s.mu.Unlock()
	return insights.Rank(s.wearLog, s.wardrobe)
}

// importWorkers bounds the AI calls an import runs at the same time.
var importWorkers = 4

// ImportedImage is an image from an import archive waiting to be reviewed
// and turned into an item with BulkAdd.
type ImportedImage struct {
	OriginalName  string `json:"originalName"`
	ImageURL      string `json:"imageUrl"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	DominantColor string `json:"dominantColor"`
}

// ImportArchive reads the images of a zip archive, stores them and proposes
// a name, category and color for each. No items are created.
func (s *Service) ImportArchive(ctx context.Context, r io.ReaderAt, size int64) ([]ImportedImage, error) {
	files, err := bulkimport.Read(r, size)
	if err != nil {
		if errors.Is(err, model.ErrNoImages) {
			return nil, err
		}
		return nil, model.NewValidationError("archive", err.Error())
	}
	s.metrics.AddImported(len(files))

	s.mu.Lock()
	aiOn := s.app.AIFeaturesEnabled
	categories := slices.Clone(s.categories)
	s.mu.Unlock()

	out := make([]ImportedImage, 0, len(files))
	images := make([]*storedImage, 0, len(files))
	for _, f := range files {
		id, img, err := s.putImage(ctx, bytes.NewReader(f.Data))
		if err != nil {
			s.log.Warn("skipping unreadable image", "name", f.OriginalName, "error", err)
			continue
		}
		out = append(out, ImportedImage{
			OriginalName:  f.OriginalName,
			ImageURL:      ImageURL(id),
			Name:          bulkimport.DisplayName(f.OriginalName),
			Category:      ai.FallbackCategory(categories),
			DominantColor: imaging.FallbackColor,
		})
		images = append(images, img)
	}
	if len(out) == 0 {
		return nil, model.ErrNoImages
	}

	if aiOn {
		var g errgroup.Group
		g.SetLimit(importWorkers)
		for i := range out {
			g.Go(func() error {
				s.metrics.AICall("categorize")
				out[i].Category = s.ai.CategorizeImage(ctx, images[i].data, images[i].mime, categories)
				return nil
			})
			g.Go(func() error {
				s.metrics.AICall("color")
				out[i].DominantColor = s.ai.DominantColor(ctx, images[i].data, images[i].mime)
				return nil
			})
		}
		g.Wait()
	}

	s.log.Info("archive imported", "images", len(out))
	return out, nil
}

// BulkAdd creates one item per draft. Every draft is validated first; if any
// is invalid nothing is created. Fields of bulk-added items count as set by
// the user.
func (s *Service) BulkAdd(ctx context.Context, drafts []ItemDraft) ([]model.ClothingItem, error) {
	if len(drafts) == 0 {
		return nil, model.NewValidationError("items", "at least one item required")
	}

	urls := make([]string, len(drafts))
	for i, d := range drafts {
		url, _, err := s.storeDraftImage(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		urls[i] = url
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]model.ClothingItem, 0, len(drafts))
	for i, d := range drafts {
		if d.DominantColor == "" {
			d.DominantColor = imaging.FallbackColor
		}
		item := s.newItem(d, urls[i])
		item.Touch(model.FieldCategory)
		if err := model.ValidateItem(&item, s.categories); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		created = append(created, item)
	}

	items := append(slices.Clone(s.wardrobe), created...)
	if err := s.saveWardrobe(ctx, items); err != nil {
		return nil, err
	}

	s.log.Info("items bulk added", "count", len(created))
	s.wardrobeChanged()
	return created, nil
}
