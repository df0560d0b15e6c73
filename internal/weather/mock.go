package weather

import (
	"hash/fnv"
	"strings"
	"time"

	"github.com/wearly/stylist-service/internal/domain"
)

// mockConditions cycle deterministically per location so development and
// tests see stable weather without an API key.
var mockConditions = []struct {
	description string
	main        string
	temperature int
	humidity    int
	windSpeed   float64
}{
	{"clear sky", "Clear", 22, 45, 3.1},
	{"scattered clouds", "Clouds", 16, 60, 4.5},
	{"light rain", "Rain", 11, 82, 5.2},
	{"overcast clouds", "Clouds", 7, 70, 6.0},
	{"sunny and hot", "Clear", 29, 35, 2.4},
}

// MockWeather returns a deterministic reading for a location.
func MockWeather(location string) *domain.Weather {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(location))))
	cond := mockConditions[int(h.Sum32())%len(mockConditions)]

	w := &domain.Weather{
		Location:    location,
		Temperature: cond.temperature,
		FeelsLike:   cond.temperature - 1,
		Humidity:    cond.humidity,
		Description: cond.description,
		MainWeather: cond.main,
		WindSpeed:   cond.windSpeed,
		Visibility:  10,
		UVIndex:     3,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Source:      "mock",
	}
	w.ClothingSuggestions = SuggestClothing(w)
	return w
}
