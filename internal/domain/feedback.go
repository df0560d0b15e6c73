package domain

import (
	"time"

	"github.com/google/uuid"
)

// Feedback types.
const (
	FeedbackTypeSuggestion    = "suggestion"
	FeedbackTypePlannedOutfit = "planned_outfit"
	FeedbackTypeWornOutfit    = "worn_outfit"
)

// OutfitFeedback is a user's verdict on an outfit: a thumbs rating
// (-1/0/1), an optional star rating, and free-text context. One row per
// (user, outfit, type); later submissions overwrite.
type OutfitFeedback struct {
	ID           uuid.UUID `json:"feedback_id"`
	UserID       uuid.UUID `json:"user_id"`
	FeedbackType string    `json:"feedback_type"`
	OutfitID     uuid.UUID `json:"outfit_id"`

	Rating     int    `json:"rating"`
	StarRating *int   `json:"star_rating,omitempty"`
	Comment    string `json:"comment,omitempty"`

	OccasionContext      string         `json:"occasion_context,omitempty"`
	OutfitFeatures       map[string]any `json:"outfit_features,omitempty"`
	ProcessedForLearning bool           `json:"processed_for_learning"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *OutfitFeedback) IsPositive() bool { return f.Rating > 0 }
func (f *OutfitFeedback) IsNegative() bool { return f.Rating < 0 }

// FeedbackSummary aggregates a user's feedback history.
type FeedbackSummary struct {
	Total      int `json:"total"`
	ThumbsUp   int `json:"thumbs_up"`
	ThumbsDown int `json:"thumbs_down"`
	Neutral    int `json:"neutral"`
}

func ValidFeedbackType(t string) bool {
	return t == FeedbackTypeSuggestion || t == FeedbackTypePlannedOutfit || t == FeedbackTypeWornOutfit
}

func ValidRating(r int) bool {
	return r >= -1 && r <= 1
}
