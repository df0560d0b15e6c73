package weather

import (
	"testing"

	"github.com/wearly/stylist-service/internal/domain"
)

func TestSuggestClothingTemperatureBands(t *testing.T) {
	cases := []struct {
		name      string
		feelsLike int
		layers    string
	}{
		{"freezing", -3, "heavy"},
		{"just under heavy cutoff", 4, "heavy"},
		{"cool", 10, "medium"},
		{"mild", 20, "light"},
		{"hot", 30, "minimal"},
	}

	for _, tc := range cases {
		w := &domain.Weather{FeelsLike: tc.feelsLike, MainWeather: "Clear"}
		s := SuggestClothing(w)
		if s.Layers != tc.layers {
			t.Errorf("%s: feels-like %d got layers %q, want %q", tc.name, tc.feelsLike, s.Layers, tc.layers)
		}
	}
}

func TestSuggestClothingRainOverridesFootwear(t *testing.T) {
	w := &domain.Weather{FeelsLike: 10, MainWeather: "Rain"}
	s := SuggestClothing(w)

	if len(s.Footwear) != 1 || s.Footwear[0] != "waterproof boots" {
		t.Errorf("rain footwear = %v, want [waterproof boots]", s.Footwear)
	}
	if !contains(s.Accessories, "umbrella") {
		t.Errorf("rain accessories missing umbrella: %v", s.Accessories)
	}
}

func TestSuggestClothingWind(t *testing.T) {
	w := &domain.Weather{FeelsLike: 18, MainWeather: "Clear", WindSpeed: 12}
	s := SuggestClothing(w)

	if !contains(s.Accessories, "windbreaker") {
		t.Errorf("windy accessories missing windbreaker: %v", s.Accessories)
	}
	if !contains(s.Avoid, "loose garments") {
		t.Errorf("windy avoid list missing loose garments: %v", s.Avoid)
	}
}

func TestMockWeatherDeterministic(t *testing.T) {
	a := MockWeather("Berlin")
	b := MockWeather("berlin ")

	if a.Temperature != b.Temperature || a.Description != b.Description {
		t.Errorf("mock weather not stable for equivalent locations: %+v vs %+v", a, b)
	}
	if a.Source != "mock" {
		t.Errorf("mock source = %q, want mock", a.Source)
	}
	if a.ClothingSuggestions == nil {
		t.Fatal("mock weather missing clothing suggestions")
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
