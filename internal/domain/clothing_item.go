package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrItemNotFound = errors.New("clothing item not found")

// Category, color and season vocabularies. Anything outside them is stored
// as "other" / "all_season".
var (
	Categories = []string{
		"tops", "bottoms", "dresses", "outerwear", "shoes", "accessories",
		"underwear", "activewear", "formal", "sleepwear", "other",
	}
	Colors = []string{
		"red", "blue", "green", "yellow", "orange", "purple", "pink",
		"brown", "black", "white", "grey", "beige", "navy", "maroon",
		"teal", "olive", "gold", "silver", "multicolor", "other",
	}
	Seasons = []string{"spring", "summer", "fall", "winter", "all_season"}
)

func ValidCategory(c string) bool { return contains(Categories, c) }
func ValidColor(c string) bool    { return contains(Colors, c) }
func ValidSeason(s string) bool   { return contains(Seasons, s) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

type ClothingItem struct {
	ID             uuid.UUID `json:"item_id"`
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory,omitempty"`
	Color          string    `json:"color"`
	SecondaryColor string    `json:"secondary_color,omitempty"`

	ImagePath     string `json:"image_path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`

	// Computer-vision metadata. CVDescription is a hidden concise
	// description used only to improve recommendations.
	CVConfidence  *float64       `json:"cv_confidence,omitempty"`
	CVMetadata    map[string]any `json:"cv_metadata,omitempty"`
	CVDescription string         `json:"-"`

	Season       string     `json:"season"`
	Brand        string     `json:"brand,omitempty"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	Price        *float64   `json:"price,omitempty"`

	IsFavorite bool       `json:"is_favorite"`
	WearCount  int        `json:"wear_count"`
	LastWorn   *time.Time `json:"last_worn,omitempty"`
	IsActive   bool       `json:"is_active"`
	IsDirty    bool       `json:"is_dirty"`

	DeletedAt *time.Time `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Tags []Tag `json:"tags,omitempty"`
}

// IsDeleted reports whether the item has been soft-deleted.
func (c *ClothingItem) IsDeleted() bool {
	return c.DeletedAt != nil
}

// ItemFilter narrows a wardrobe listing. Zero values mean "no constraint".
// Color matches the primary or the secondary color; Search runs over name,
// category, subcategory and tag text.
type ItemFilter struct {
	Category      string
	Color         string
	Season        string
	FavoritesOnly bool
	Search        string
	Limit         int
	Offset        int
}

// WardrobeStats is the aggregate view behind the dashboard counters.
type WardrobeStats struct {
	TotalItems    int            `json:"total_items"`
	Favorites     int            `json:"favorites"`
	ByCategory    map[string]int `json:"by_category"`
	ByColor       map[string]int `json:"by_color"`
	TotalWears    int            `json:"total_wears"`
	NeverWorn     int            `json:"never_worn"`
}
