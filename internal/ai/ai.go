// Package ai provides outfit suggestions, image categorization and color
// detection. Every implementation fails soft: on any error it logs and
// returns a documented fallback instead of an error.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/erazemk/omara/internal/config"
	"github.com/erazemk/omara/internal/imaging"
	"github.com/erazemk/omara/internal/model"
)

// Service is the AI collaborator.
type Service interface {
	// SuggestOutfit picks items for occasion among the available items of wardrobe.
	SuggestOutfit(ctx context.Context, occasion string, wardrobe []model.ClothingItem) model.Suggestion
	// CategorizeImage returns one of categories. Falls back to the first category.
	CategorizeImage(ctx context.Context, image []byte, mime string, categories []string) string
	// DominantColor returns "#RRGGBB". Falls back to imaging.FallbackColor.
	DominantColor(ctx context.Context, image []byte, mime string) string
}

// Fallback messages.
const (
	NoItemsReasoning = "You have no clean and available clothes! Add some items or update their status to get suggestions."
	ErrorReasoning   = "Sorry, I couldn't come up with an outfit right now. Please try again."
	DefaultCategory  = "Top"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// New returns the service selected by cfg. Provider "auto" uses Claude when
// an API key is configured and the mock otherwise.
func New(cfg config.AIConfig, logger *slog.Logger) (Service, error) {
	switch cfg.Provider {
	case "mock":
		return &Mock{}, nil
	case "claude":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("ai provider claude requires an api key")
		}
		return NewClaude(cfg, logger), nil
	case "", "auto":
		if cfg.APIKey == "" {
			logger.Warn("no AI api key configured, using mock AI service")
			return &Mock{}, nil
		}
		return NewClaude(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

// Available returns the items that can be worn right now.
func Available(wardrobe []model.ClothingItem) []model.ClothingItem {
	var out []model.ClothingItem
	for _, item := range wardrobe {
		if item.Status == model.StatusAvailable {
			out = append(out, item)
		}
	}
	return out
}

// FallbackCategory is the category used when categorization fails.
func FallbackCategory(categories []string) string {
	if len(categories) > 0 {
		return categories[0]
	}
	return DefaultCategory
}

// MatchCategory finds answer in categories ignoring case and surrounding
// whitespace, and returns it in the user's casing.
func MatchCategory(answer string, categories []string) (string, bool) {
	answer = strings.Trim(strings.TrimSpace(answer), `."'`)
	for _, c := range categories {
		if strings.EqualFold(c, answer) {
			return c, true
		}
	}
	return "", false
}

// ValidColor reports whether s is a "#RRGGBB" hex color.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

// sanitize drops suggested ids that are not among the available items.
func sanitize(s model.Suggestion, available []model.ClothingItem) model.Suggestion {
	ids := model.IndexItems(available)
	for _, slot := range s.Slots() {
		if _, ok := ids[*slot]; !ok {
			*slot = ""
		}
	}
	return s
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Mock is a deterministic stand-in used when no model is configured.
type Mock struct{}

// SuggestOutfit picks the first available item of each well-known category.
func (Mock) SuggestOutfit(_ context.Context, occasion string, wardrobe []model.ClothingItem) model.Suggestion {
	available := Available(wardrobe)
	if len(available) == 0 {
		return model.Suggestion{Reasoning: "No clothes are available in your wardrobe."}
	}

	find := func(category string) string {
		for _, item := range available {
			if strings.EqualFold(item.Category, category) {
				return item.ID
			}
		}
		return ""
	}

	s := model.Suggestion{
		Reasoning: fmt.Sprintf("This is a sample outfit for a %q occasion. As AI features are not configured with an API key, we've picked a few items for you from your wardrobe.", occasion),
		Top:       find("top"),
		Bottom:    find("bottom"),
		Outerwear: find("outerwear"),
		Shoes:     find("shoes"),
		Accessory: find("accessory"),
	}
	if s.Top == "" && s.Bottom == "" {
		s.Dress = find("dress")
	}

	if s.Empty() {
		first := available[0]
		slot, ok := s.Slots()[strings.ToLower(first.Category)]
		if !ok {
			slot = &s.Top
		}
		*slot = first.ID
		s.Reasoning = "This is a sample suggestion. As AI features are not configured with an API key, we picked one of your available items."
	}
	return s
}

// CategorizeImage returns the first category.
func (Mock) CategorizeImage(_ context.Context, _ []byte, _ string, categories []string) string {
	return FallbackCategory(categories)
}

// DominantColor returns the average color of the image.
func (Mock) DominantColor(_ context.Context, image []byte, _ string) string {
	color, err := imaging.AverageColor(image)
	if err != nil {
		return imaging.FallbackColor
	}
	return color
}
