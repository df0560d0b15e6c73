package weather

import (
	"strings"

	"github.com/wearly/stylist-service/internal/domain"
)

// SuggestClothing derives layering guidance from a reading. The bands run
// on feels-like temperature; rain and wind tighten the advice afterwards.
func SuggestClothing(w *domain.Weather) *domain.ClothingSuggestions {
	s := &domain.ClothingSuggestions{}
	temp := w.FeelsLike

	switch {
	case temp < 5:
		s.Layers = "heavy"
		s.Materials = []string{"wool", "fleece", "down"}
		s.Avoid = []string{"thin fabrics", "open shoes"}
		s.Accessories = []string{"scarf", "gloves", "beanie"}
		s.Footwear = []string{"insulated boots"}
	case temp < 15:
		s.Layers = "medium"
		s.Materials = []string{"cotton", "light wool", "denim"}
		s.Avoid = []string{"shorts"}
		s.Accessories = []string{"light scarf"}
		s.Footwear = []string{"sneakers", "boots"}
	case temp < 25:
		s.Layers = "light"
		s.Materials = []string{"cotton", "linen"}
		s.Avoid = []string{"heavy jackets"}
		s.Footwear = []string{"sneakers", "loafers"}
	default:
		s.Layers = "minimal"
		s.Materials = []string{"linen", "light cotton"}
		s.Avoid = []string{"dark colors", "synthetic fabrics", "layers"}
		s.Accessories = []string{"sunglasses", "hat"}
		s.Footwear = []string{"sandals", "breathable sneakers"}
	}

	if isWet(w.MainWeather) {
		s.Accessories = append(s.Accessories, "umbrella")
		s.Avoid = append(s.Avoid, "suede", "canvas shoes")
		s.Footwear = []string{"waterproof boots"}
	}

	// Strong wind renders umbrellas useless and loose layers annoying.
	if w.WindSpeed > 10 {
		s.Avoid = append(s.Avoid, "loose garments", "wide-brim hats")
		s.Accessories = append(s.Accessories, "windbreaker")
	}

	return s
}

func isWet(mainWeather string) bool {
	switch strings.ToLower(mainWeather) {
	case "rain", "drizzle", "thunderstorm", "snow":
		return true
	}
	return false
}
