package model

import "time"

// ClothingItem is a single piece of clothing in the wardrobe.
type ClothingItem struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Category            string     `json:"category"`
	Occasions           []Occasion `json:"occasions"`
	Location            *Location  `json:"location,omitempty"`
	ImageURL            string     `json:"imageUrl"`
	LaundryInstructions string     `json:"laundryInstructions"`
	Status              Status     `json:"status"`
	AddedToLaundryAt    *time.Time `json:"addedToLaundryAt,omitempty"`
	IroningStatus       Ironing    `json:"ironingStatus"`
	DominantColor       string     `json:"dominantColor,omitempty"`

	// Fields the user has set by hand. Late AI enrichment never overwrites them.
	Touched []string `json:"touched,omitempty"`
}

// Location is where an item is stored.
type Location struct {
	Storage      string `json:"storage"`
	Container    string `json:"container"`
	SubContainer string `json:"subContainer,omitempty"`
}

// Status is the laundry status of a clothing item.
type Status string

// Laundry statuses.
const (
	StatusAvailable Status = "Available"
	StatusInLaundry Status = "In Laundry"
	StatusWashed    Status = "Washed"
)

// Valid reports whether s is a known laundry status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusInLaundry, StatusWashed:
		return true
	}
	return false
}

// Ironing is the ironing status of a clothing item.
type Ironing string

// Ironing statuses.
const (
	Ironed       Ironing = "Ironed"
	NeedsIroning Ironing = "Needs Ironing"
)

// Valid reports whether i is a known ironing status.
func (i Ironing) Valid() bool {
	return i == Ironed || i == NeedsIroning
}

// Occasion is an occasion an item is suitable for.
type Occasion string

// Occasions.
const (
	OccasionCasual  Occasion = "Casual"
	OccasionFormal  Occasion = "Formal"
	OccasionParty   Occasion = "Party"
	OccasionWork    Occasion = "Work"
	OccasionWorkout Occasion = "Workout"
	OccasionLounge  Occasion = "Lounge"
)

// Occasions lists every known occasion.
var Occasions = []Occasion{
	OccasionCasual, OccasionFormal, OccasionParty,
	OccasionWork, OccasionWorkout, OccasionLounge,
}

// Valid reports whether o is a known occasion.
func (o Occasion) Valid() bool {
	for _, known := range Occasions {
		if o == known {
			return true
		}
	}
	return false
}

// Enrichable item fields.
const (
	FieldCategory = "category"
	FieldColor    = "dominantColor"
)

// IsTouched reports whether the user has set field by hand.
func (c *ClothingItem) IsTouched(field string) bool {
	for _, f := range c.Touched {
		if f == field {
			return true
		}
	}
	return false
}

// Touch marks field as set by the user.
func (c *ClothingItem) Touch(field string) {
	if !c.IsTouched(field) {
		c.Touched = append(c.Touched, field)
	}
}

// FindItem returns the index of the item with the given id, or -1.
func FindItem(items []ClothingItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// IndexItems maps item ids to items.
func IndexItems(items []ClothingItem) map[string]ClothingItem {
	m := make(map[string]ClothingItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}
