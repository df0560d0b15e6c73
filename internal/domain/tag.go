package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tag sources.
const (
	TagSourceUser   = "user"
	TagSourceCV     = "cv"
	TagSourceSystem = "system"
)

// Tag is one label on a clothing item. The tag text is normalized to
// lowercase; duplicates per item are rejected by the schema.
type Tag struct {
	ID         uuid.UUID `json:"tag_id"`
	ItemID     uuid.UUID `json:"item_id"`
	Tag        string    `json:"tag"`
	Source     string    `json:"source"`
	Confidence *float64  `json:"confidence,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NormalizeTag lowercases and trims tag text before storage or lookup.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// CanonicalTag maintains the canonical tag vocabulary with synonyms, so
// "tee", "t shirt" and "t-shirt" land on the same tag.
type CanonicalTag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Synonyms  []string  `json:"synonyms"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
