package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/erazemk/omara/internal/config"
	"github.com/erazemk/omara/internal/imaging"
	"github.com/erazemk/omara/internal/model"
)

// Claude is the model-backed Service.
type Claude struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

// NewClaude creates a Claude service from cfg.
func NewClaude(cfg config.AIConfig, logger *slog.Logger, opts ...option.RequestOption) *Claude {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Claude{
		client:  anthropic.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     logger.With("component", "ai"),
	}
}

// promptItem is the part of an item the model gets to see.
type promptItem struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Occasions     []model.Occasion `json:"occasions"`
	IroningStatus model.Ironing    `json:"ironingStatus"`
}

// SuggestOutfit asks the model for an outfit built from available items.
func (c *Claude) SuggestOutfit(ctx context.Context, occasion string, wardrobe []model.ClothingItem) model.Suggestion {
	available := Available(wardrobe)
	if len(available) == 0 {
		return model.Suggestion{Reasoning: NoItemsReasoning}
	}

	items := make([]promptItem, 0, len(available))
	for _, it := range available {
		items = append(items, promptItem{
			ID:            it.ID,
			Name:          it.Name,
			Category:      it.Category,
			Occasions:     it.Occasions,
			IroningStatus: it.IroningStatus,
		})
	}
	itemsJSON, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		c.log.Error("marshal suggestion items", "error", err)
		return model.Suggestion{Reasoning: ErrorReasoning}
	}

	text, err := c.complete(ctx, anthropic.NewTextBlock(suggestionPrompt(occasion, string(itemsJSON))))
	if err != nil {
		c.log.Error("outfit suggestion failed", "error", err)
		return model.Suggestion{Reasoning: ErrorReasoning}
	}

	jsonStr, err := extractJSON(text)
	if err != nil {
		c.log.Warn("outfit suggestion unparseable", "error", err)
		return model.Suggestion{Reasoning: ErrorReasoning}
	}
	var s model.Suggestion
	if err := json.Unmarshal([]byte(jsonStr), &s); err != nil {
		c.log.Warn("outfit suggestion unparseable", "error", err)
		return model.Suggestion{Reasoning: ErrorReasoning}
	}
	return sanitize(s, available)
}

// CategorizeImage asks the model which of categories the pictured item belongs to.
func (c *Claude) CategorizeImage(ctx context.Context, image []byte, mime string, categories []string) string {
	fallback := FallbackCategory(categories)
	if len(categories) == 0 {
		return fallback
	}

	prompt := fmt.Sprintf("Analyze the clothing item in this image. Based on its appearance, which of the following categories does it best fit into? Please respond with only one category name from this list: %s.",
		strings.Join(categories, ", "))
	text, err := c.complete(ctx, imageBlock(image, mime), anthropic.NewTextBlock(prompt))
	if err != nil {
		c.log.Error("categorize image failed", "error", err)
		return fallback
	}

	category, ok := MatchCategory(text, categories)
	if !ok {
		c.log.Warn("model returned unknown category, using fallback", "answer", text, "fallback", fallback)
		return fallback
	}
	return category
}

// DominantColor asks the model for the pictured item's main color.
func (c *Claude) DominantColor(ctx context.Context, image []byte, mime string) string {
	const prompt = "Analyze the image of the clothing item and determine its single dominant color. Respond with ONLY the hex color code (e.g., #RRGGBB)."
	text, err := c.complete(ctx, imageBlock(image, mime), anthropic.NewTextBlock(prompt))
	if err != nil {
		c.log.Error("dominant color failed", "error", err)
		return imaging.FallbackColor
	}

	color := strings.TrimSpace(text)
	if !ValidColor(color) {
		c.log.Warn("model returned invalid color, using fallback", "answer", color)
		return imaging.FallbackColor
	}
	return color
}

func (c *Claude) complete(ctx context.Context, blocks ...anthropic.ContentBlockParamUnion) (string, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return strings.TrimSpace(msg.Content[0].Text), nil
}

func imageBlock(data []byte, mime string) anthropic.ContentBlockParamUnion {
	if strings.EqualFold(mime, "image/jpg") {
		mime = "image/jpeg"
	}
	if mime == "" {
		mime, _ = imaging.DetectMIME(data)
	}
	return anthropic.NewImageBlockBase64(mime, base64.StdEncoding.EncodeToString(data))
}

func suggestionPrompt(occasion, itemsJSON string) string {
	return fmt.Sprintf(`Based on the following list of available clothing items, please suggest a suitable outfit for the occasion: %q.

Available items (some may need ironing, as indicated by their "ironingStatus"):
%s

Respond with ONLY a JSON object of this shape:
{"top": "<id>", "bottom": "<id>", "dress": "<id>", "outerwear": "<id>", "shoes": "<id>", "accessory": "<id>", "reasoning": "<short explanation>"}

Use only ids from the list. Omit keys that are not needed (a dress needs no top or bottom).
If you pick an item that needs ironing, mention it in the reasoning.
Use only the data in this prompt.`, occasion, itemsJSON)
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
