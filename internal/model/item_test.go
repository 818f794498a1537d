package model

import (
	"errors"
	"testing"
	"time"
)

func TestHasCategory(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"Top", true},
		{"top", true},
		{"HAIR ACCESSORY", true},
		{"Socks", false},
		{"", false},
	}

	for _, tt := range tests {
		got := HasCategory(DefaultCategories, tt.name)
		if got != tt.expected {
			t.Errorf("HasCategory(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestValidateItem(t *testing.T) {
	now := time.Now()
	valid := func() ClothingItem {
		return ClothingItem{
			Name:          "Shirt",
			Category:      "Top",
			ImageURL:      "/api/images/abc",
			Occasions:     []Occasion{OccasionWork},
			Status:        StatusAvailable,
			IroningStatus: Ironed,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*ClothingItem)
		field   string
		wantErr bool
	}{
		{"valid", func(*ClothingItem) {}, "", false},
		{"missing name", func(c *ClothingItem) { c.Name = "" }, "name", true},
		{"missing image", func(c *ClothingItem) { c.ImageURL = "" }, "image", true},
		{"unknown category", func(c *ClothingItem) { c.Category = "Socks" }, "category", true},
		{"unknown occasion", func(c *ClothingItem) { c.Occasions = []Occasion{"Gala"} }, "occasions", true},
		{"in laundry without timestamp", func(c *ClothingItem) { c.Status = StatusInLaundry }, "addedToLaundryAt", true},
		{"timestamp while available", func(c *ClothingItem) { c.AddedToLaundryAt = &now }, "addedToLaundryAt", true},
		{"in laundry with timestamp", func(c *ClothingItem) {
			c.Status = StatusInLaundry
			c.AddedToLaundryAt = &now
		}, "", false},
	}

	for _, tt := range tests {
		item := valid()
		tt.mutate(&item)
		err := ValidateItem(&item, DefaultCategories)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tt.name, err)
		}
		var ve *ValidationError
		if errors.As(err, &ve) && ve.Field != tt.field {
			t.Errorf("%s: expected field %q, got %q", tt.name, tt.field, ve.Field)
		}
	}
}

func TestTouch(t *testing.T) {
	var item ClothingItem
	if item.IsTouched(FieldCategory) {
		t.Fatal("new item should not be touched")
	}
	item.Touch(FieldCategory)
	item.Touch(FieldCategory)
	if !item.IsTouched(FieldCategory) {
		t.Error("expected category to be touched")
	}
	if len(item.Touched) != 1 {
		t.Errorf("expected 1 touched field, got %d", len(item.Touched))
	}
}

func TestSuggestionEmpty(t *testing.T) {
	s := Suggestion{Reasoning: "nothing"}
	if !s.Empty() {
		t.Error("expected empty suggestion")
	}
	*s.Slots()["shoes"] = "x"
	if s.Empty() || s.Shoes != "x" {
		t.Error("expected shoes slot to be set")
	}
}
