package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSuggestionNotFound = errors.New("outfit suggestion not found")
	ErrStylistUnavailable = errors.New("stylist model temporarily unavailable")
	ErrWardrobeTooSmall   = errors.New("not enough wardrobe items for recommendations")
)

// OutfitSuggestion is one AI-generated outfit: the items it combines, the
// model's rationale and confidence, and the weather snapshot it was built
// against.
type OutfitSuggestion struct {
	ID       uuid.UUID `json:"suggestion_id"`
	UserID   uuid.UUID `json:"user_id"`
	Prompt   string    `json:"prompt"`
	Location string    `json:"location,omitempty"`

	Weather *Weather `json:"weather,omitempty"`

	ItemsIncluded   []uuid.UUID         `json:"items_included"`
	OutfitStructure map[string][]string `json:"outfit_structure"`

	Rationale       string  `json:"ai_rationale"`
	ConfidenceScore float64 `json:"confidence_score"`
	ModelVersion    string  `json:"model_version,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// RecommendationResult pairs generated suggestions with cache provenance,
// so responses can report whether the set was served from cache.
type RecommendationResult struct {
	Suggestions []OutfitSuggestion
	CacheHit    bool
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}
