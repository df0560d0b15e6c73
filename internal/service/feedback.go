package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/wearly/stylist-service/internal/domain"
)

// FeedbackInput is one verdict on an outfit suggestion.
type FeedbackInput struct {
	OutfitID     uuid.UUID
	FeedbackType string
	Rating       int
	StarRating   *int
	Comment      string
	Occasion     string
}

// SubmitFeedback records the verdict and, on thumbs-up, folds the outfit's
// items into the user's learned preferences.
func (s *Service) SubmitFeedback(ctx context.Context, userID uuid.UUID, in FeedbackInput) (*domain.OutfitFeedback, error) {
	suggestion, err := s.repo.GetSuggestion(ctx, userID, in.OutfitID)
	if err != nil {
		return nil, err
	}

	feedback := &domain.OutfitFeedback{
		ID:              uuid.New(),
		UserID:          userID,
		FeedbackType:    in.FeedbackType,
		OutfitID:        in.OutfitID,
		Rating:          in.Rating,
		StarRating:      in.StarRating,
		Comment:         in.Comment,
		OccasionContext: in.Occasion,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.SaveFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	if feedback.IsPositive() {
		if err := s.learnFromOutfit(ctx, userID, suggestion, in.Occasion); err != nil {
			log.Printf("[feedback] preference learning for user %s: %v", userID, err)
		} else if err := s.repo.MarkFeedbackProcessed(ctx, feedback.ID); err != nil {
			log.Printf("[feedback] mark processed for %s: %v", feedback.ID, err)
		} else {
			feedback.ProcessedForLearning = true
		}
	}
	return feedback, nil
}

// learnFromOutfit promotes the liked outfit's colors and the occasion into
// the profile's preferences, capped so early likes do not dominate.
func (s *Service) learnFromOutfit(ctx context.Context, userID uuid.UUID, suggestion *domain.OutfitSuggestion, occasion string) error {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	for _, itemID := range suggestion.ItemsIncluded {
		item, err := s.repo.GetItem(ctx, userID, itemID)
		if err != nil {
			continue // item may have been deleted since
		}
		profile.StylePrefs.FavoriteColors = appendCapped(profile.StylePrefs.FavoriteColors, item.Color, 10)
	}
	if occasion != "" {
		profile.StylePrefs.FavoriteOccasions = appendCapped(profile.StylePrefs.FavoriteOccasions, occasion, 10)
	}

	return s.repo.SaveProfile(ctx, profile)
}

// appendCapped adds a value if new, evicting the oldest entry past the
// cap.
func appendCapped(list []string, value string, limit int) []string {
	if value == "" {
		return list
	}
	for _, v := range list {
		if v == value {
			return list
		}
	}
	list = append(list, value)
	if len(list) > limit {
		list = list[len(list)-limit:]
	}
	return list
}

func (s *Service) FeedbackHistory(ctx context.Context, userID uuid.UUID, limit int) ([]domain.OutfitFeedback, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListFeedback(ctx, userID, limit)
}

func (s *Service) FeedbackSummary(ctx context.Context, userID uuid.UUID) (*domain.FeedbackSummary, error) {
	return s.repo.FeedbackSummary(ctx, userID)
}
