package wardrobe

import (
	"context"
	"fmt"
	"slices"

	"github.com/erazemk/omara/internal/ai"
	"github.com/erazemk/omara/internal/model"
)

// enrich starts one background job per enrichable field the user has not
// set. The jobs are independent: one failing never blocks the other.
func (s *Service) enrich(item model.ClothingItem, img *storedImage, categories []string) {
	if !item.IsTouched(model.FieldCategory) {
		s.runJob(item.ID, model.FieldCategory, func(ctx context.Context) string {
			s.metrics.AICall("categorize")
			return s.ai.CategorizeImage(ctx, img.data, img.mime, categories)
		})
	}
	if !item.IsTouched(model.FieldColor) {
		s.runJob(item.ID, model.FieldColor, func(ctx context.Context) string {
			s.metrics.AICall("color")
			return s.ai.DominantColor(ctx, img.data, img.mime)
		})
	}
}

func (s *Service) runJob(itemID, field string, fn func(ctx context.Context) string) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()

		value := fn(s.bgCtx)
		if s.bgCtx.Err() != nil {
			return
		}
		if _, err := s.ApplyEnrichment(s.bgCtx, itemID, field, value); err != nil {
			s.log.Warn("applying enrichment", "id", itemID, "field", field, "error", err)
		}
	}()
}

// ApplyEnrichment sets field of the item to an AI-provided value. The result
// is dropped, reporting false, when the item no longer exists or the user
// has set the field by hand in the meantime.
func (s *Service) ApplyEnrichment(ctx context.Context, itemID, field, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := model.FindItem(s.wardrobe, itemID)
	if i < 0 {
		s.log.Debug("enrichment for deleted item dropped", "id", itemID, "field", field)
		return false, nil
	}
	if s.wardrobe[i].IsTouched(field) {
		s.log.Debug("enrichment for user-set field dropped", "id", itemID, "field", field)
		return false, nil
	}

	items := slices.Clone(s.wardrobe)
	item := &items[i]
	switch field {
	case model.FieldCategory:
		category, ok := ai.MatchCategory(value, s.categories)
		if !ok {
			return false, model.NewValidationError("category", fmt.Sprintf("unknown category %q", value))
		}
		if item.Category == category {
			return false, nil
		}
		item.Category = category
	case model.FieldColor:
		if !ai.ValidColor(value) {
			return false, model.NewValidationError("dominantColor", fmt.Sprintf("invalid color %q", value))
		}
		if item.DominantColor == value {
			return false, nil
		}
		item.DominantColor = value
	default:
		return false, model.NewValidationError("field", fmt.Sprintf("field %q cannot be enriched", field))
	}

	if err := s.saveWardrobe(ctx, items); err != nil {
		return false, err
	}
	s.log.Info("item enriched", "id", itemID, "field", field, "value", value)
	return true, nil
}
