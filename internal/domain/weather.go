package domain

// Weather is the normalized shape every weather source (live API or mock)
// is mapped into before anything downstream sees it.
type Weather struct {
	Location    string  `json:"location"`
	Country     string  `json:"country,omitempty"`
	Temperature int     `json:"temperature"`
	FeelsLike   int     `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	MainWeather string  `json:"main_weather"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	Visibility  float64 `json:"visibility"`
	UVIndex     int     `json:"uv_index"`
	Timestamp   string  `json:"timestamp"`
	Source      string  `json:"source"`

	ClothingSuggestions *ClothingSuggestions `json:"clothing_suggestions,omitempty"`
}

// ClothingSuggestions is rule-derived guidance attached to a weather
// reading: how heavily to layer and what to reach for or avoid.
type ClothingSuggestions struct {
	Layers      string   `json:"layers"`
	Materials   []string `json:"materials"`
	Avoid       []string `json:"avoid"`
	Accessories []string `json:"accessories"`
	Footwear    []string `json:"footwear"`
}
