package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/wearly/stylist-service/internal/domain"
)

const requestTimeout = 10 * time.Second

// Client fetches current conditions from the weather API and normalizes
// them into domain.Weather. With no API key it serves deterministic mock
// readings so the rest of the app keeps working.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	logger   *log.Logger
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: requestTimeout},
		logger:   log.New(log.Writer(), "[weather] ", log.LstdFlags),
	}
}

// apiResponse mirrors the provider's current-conditions payload.
type apiResponse struct {
	Location struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		TempC      float64 `json:"temp_c"`
		FeelsLikeC float64 `json:"feelslike_c"`
		Humidity   int     `json:"humidity"`
		Condition  struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
			Code int    `json:"code"`
		} `json:"condition"`
		WindKph float64 `json:"wind_kph"`
		VisKm   float64 `json:"vis_km"`
		UV      float64 `json:"uv"`
	} `json:"current"`
}

// Current returns normalized conditions for a location. Failures fall
// back to mock weather rather than erroring, matching the product rule
// that recommendations must survive a weather outage.
func (c *Client) Current(ctx context.Context, location string) (*domain.Weather, error) {
	if c.apiKey == "" {
		return MockWeather(location), nil
	}

	weather, err := c.fetch(ctx, location)
	if err != nil {
		c.logger.Printf("live fetch for %q failed, serving mock: %v", location, err)
		return MockWeather(location), nil
	}
	return weather, nil
}

func (c *Client) fetch(ctx context.Context, location string) (*domain.Weather, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather API returned %d: %s", resp.StatusCode, body)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	weather := normalize(&payload)
	weather.ClothingSuggestions = SuggestClothing(weather)
	return weather, nil
}

func normalize(p *apiResponse) *domain.Weather {
	return &domain.Weather{
		Location:    p.Location.Name,
		Country:     p.Location.Country,
		Temperature: int(p.Current.TempC),
		FeelsLike:   int(p.Current.FeelsLikeC),
		Humidity:    p.Current.Humidity,
		Description: p.Current.Condition.Text,
		MainWeather: mainWeather(p.Current.Condition.Code),
		Icon:        p.Current.Condition.Icon,
		WindSpeed:   p.Current.WindKph / 3.6, // kph to m/s
		Visibility:  p.Current.VisKm,
		UVIndex:     int(p.Current.UV),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Source:      "live",
	}
}

// mainWeather collapses the provider's condition codes into the coarse
// buckets the suggestion rules key on.
func mainWeather(code int) string {
	switch {
	case code == 1000:
		return "Clear"
	case code >= 1003 && code <= 1030:
		return "Clouds"
	case code >= 1063 && code <= 1201:
		return "Rain"
	case code >= 1204 && code <= 1237:
		return "Snow"
	case code >= 1240 && code <= 1264:
		return "Rain"
	case code >= 1273:
		return "Thunderstorm"
	default:
		return "Clouds"
	}
}
