package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/wearly/stylist-service/internal/domain"
	"github.com/wearly/stylist-service/internal/stylist"
)

const (
	minWardrobeItems   = 2
	defaultOutfitCount = 3
	maxOutfitCount     = 5
	historyLimit       = 20
)

// GetWeather returns conditions for a location, serving the cache first.
func (s *Service) GetWeather(ctx context.Context, location string) (*domain.Weather, error) {
	cached, err := s.cache.GetWeather(ctx, location)
	if err != nil {
		log.Printf("[recommendation] weather cache get for %q: %v", location, err)
	}
	if cached != nil {
		return cached, nil
	}

	current, err := s.weather.Current(ctx, location)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.SetWeather(ctx, location, current); cacheErr != nil {
		log.Printf("[recommendation] weather cache set for %q: %v", location, cacheErr)
	}
	return current, nil
}

// Recommend generates outfit suggestions for a prompt. Cached sets are
// returned as-is; otherwise the wardrobe, weather and preferences go to
// the stylist model and the validated results are persisted.
func (s *Service) Recommend(ctx context.Context, userID uuid.UUID, prompt, location string, count int) (*domain.RecommendationResult, error) {
	if count <= 0 {
		count = defaultOutfitCount
	} else if count > maxOutfitCount {
		count = maxOutfitCount
	}

	cached, err := s.cache.GetRecommendations(ctx, userID, prompt)
	if err != nil {
		log.Printf("[recommendation] cache get for user %s: %v", userID, err)
	}
	if cached != nil {
		return &domain.RecommendationResult{Suggestions: cached, CacheHit: true}, nil
	}

	suggestions, err := s.generate(ctx, userID, prompt, location, count)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.SetRecommendations(ctx, userID, prompt, suggestions); cacheErr != nil {
		log.Printf("[recommendation] cache set for user %s: %v", userID, cacheErr)
	}
	return &domain.RecommendationResult{Suggestions: suggestions, CacheHit: false}, nil
}

func (s *Service) generate(ctx context.Context, userID uuid.UUID, prompt, location string, count int) ([]domain.OutfitSuggestion, error) {
	items, err := s.repo.ItemsWithDescriptions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) < minWardrobeItems {
		// Fall back to the full wardrobe before giving up; fresh
		// accounts may not have vision descriptions yet.
		items, err = s.repo.ListItems(ctx, userID, domain.ItemFilter{})
		if err != nil {
			return nil, err
		}
		if len(items) < minWardrobeItems {
			return nil, domain.ErrWardrobeTooSmall
		}
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if location == "" {
		location = profile.LastKnownLocation
	}
	var weatherNow *domain.Weather
	if location != "" {
		weatherNow, err = s.GetWeather(ctx, location)
		if err != nil {
			log.Printf("[recommendation] weather for %q unavailable: %v", location, err)
		}
	}

	userPrompt := stylist.BuildPrompt(stylist.PromptInput{
		Request: prompt,
		Weather: weatherNow,
		Items:   items,
		Prefs:   profile.StylePrefs,
		Count:   count,
	})

	content, err := s.stylist.Complete(ctx, stylist.SystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	wardrobe := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		wardrobe[item.ID] = true
	}
	outfits, err := stylist.ParseOutfits(content, wardrobe)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	suggestions := make([]domain.OutfitSuggestion, 0, len(outfits))
	for _, outfit := range outfits {
		suggestion := domain.OutfitSuggestion{
			ID:              uuid.New(),
			UserID:          userID,
			Prompt:          prompt,
			Location:        location,
			Weather:         weatherNow,
			ItemsIncluded:   outfit.ItemIDs,
			OutfitStructure: outfit.Structure,
			Rationale:       outfit.Rationale,
			ConfidenceScore: outfit.Confidence,
			ModelVersion:    s.stylist.Model(),
			IsActive:        true,
			CreatedAt:       now,
		}
		if err := s.repo.InsertSuggestion(ctx, &suggestion); err != nil {
			log.Printf("[recommendation] persist suggestion for user %s: %v", userID, err)
			continue
		}
		suggestions = append(suggestions, suggestion)
	}
	if len(suggestions) == 0 {
		return nil, domain.ErrStylistUnavailable
	}
	return suggestions, nil
}

func (s *Service) SuggestionHistory(ctx context.Context, userID uuid.UUID, limit int) ([]domain.OutfitSuggestion, error) {
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}
	return s.repo.RecentSuggestions(ctx, userID, limit)
}

func (s *Service) GetSuggestion(ctx context.Context, userID, suggestionID uuid.UUID) (*domain.OutfitSuggestion, error) {
	return s.repo.GetSuggestion(ctx, userID, suggestionID)
}

func (s *Service) DismissSuggestion(ctx context.Context, userID, suggestionID uuid.UUID) error {
	return s.repo.DeactivateSuggestion(ctx, userID, suggestionID)
}
