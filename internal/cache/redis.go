package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wearly/stylist-service/internal/domain"
)

type Cache struct {
	client            *redis.Client
	weatherTTL        time.Duration
	recommendationTTL time.Duration
}

func NewCache(client *redis.Client, weatherTTL, recommendationTTL time.Duration) *Cache {
	return &Cache{
		client:            client,
		weatherTTL:        weatherTTL,
		recommendationTTL: recommendationTTL,
	}
}

func weatherKey(location string) string {
	return fmt.Sprintf("weather:%s", strings.ToLower(strings.TrimSpace(location)))
}

func recommendationKey(userID uuid.UUID, prompt string) string {
	return fmt.Sprintf("rec:user:%s:prompt:%s", userID, domain.NormalizeTag(prompt))
}

// GetWeather returns the cached reading for a location, nil on miss.
func (c *Cache) GetWeather(ctx context.Context, location string) (*domain.Weather, error) {
	val, err := c.client.Get(ctx, weatherKey(location)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weather from cache: %w", err)
	}

	var weather domain.Weather
	if err := json.Unmarshal([]byte(val), &weather); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weather for %s: %w", location, err)
	}
	return &weather, nil
}

func (c *Cache) SetWeather(ctx context.Context, location string, weather *domain.Weather) error {
	val, err := json.Marshal(weather)
	if err != nil {
		return fmt.Errorf("failed to marshal weather: %w", err)
	}

	if err := c.client.Set(ctx, weatherKey(location), val, c.weatherTTL).Err(); err != nil {
		return fmt.Errorf("failed to set weather in cache: %w", err)
	}
	return nil
}

// GetRecommendations returns cached suggestions for a user and prompt,
// nil on miss.
func (c *Cache) GetRecommendations(ctx context.Context, userID uuid.UUID, prompt string) ([]domain.OutfitSuggestion, error) {
	val, err := c.client.Get(ctx, recommendationKey(userID, prompt)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var suggestions []domain.OutfitSuggestion
	if err := json.Unmarshal([]byte(val), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations for user %s: %w", userID, err)
	}
	return suggestions, nil
}

func (c *Cache) SetRecommendations(ctx context.Context, userID uuid.UUID, prompt string, suggestions []domain.OutfitSuggestion) error {
	val, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, recommendationKey(userID, prompt), val, c.recommendationTTL).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}
	return nil
}

// ClearUserRecommendations drops all cached suggestion sets for a user.
// Called whenever the wardrobe changes, since stale sets may reference
// removed items.
func (c *Cache) ClearUserRecommendations(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("rec:user:%s:prompt:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
