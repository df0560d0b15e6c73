package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
)

// Analysis is the normalized result of running an item photo through the
// computer vision API.
type Analysis struct {
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Color       string   `json:"color"`
	Secondary   string   `json:"secondary_color"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	Confidence  float64  `json:"confidence"`
	Raw         map[string]any
}

// Client calls the external vision API with bearer auth. Transient
// failures retry with backoff; without an API key it degrades to a local
// mock so item upload keeps working.
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
		logger:   log.New(log.Writer(), "[vision] ", log.LstdFlags),
	}
}

func (c *Client) Enabled() bool {
	return c.endpoint != "" && c.apiKey != ""
}

type analyzeRequest struct {
	ImageBase64 string `json:"image_base64"`
	Hint        string `json:"hint,omitempty"`
}

type analyzeResponse struct {
	Category    string         `json:"category"`
	Subcategory string         `json:"subcategory"`
	Color       string         `json:"primary_color"`
	Secondary   string         `json:"secondary_color"`
	Description string         `json:"description"`
	Labels      []string       `json:"labels"`
	Confidence  float64        `json:"confidence"`
	Extra       map[string]any `json:"extra"`
}

// Analyze classifies an item photo. imageBase64 is the raw image content,
// already base64-encoded; hint is the user-entered category, if any.
func (c *Client) Analyze(ctx context.Context, imageBase64, hint string) (*Analysis, error) {
	if !c.Enabled() {
		return MockAnalysis(hint), nil
	}

	body, err := json.Marshal(analyzeRequest{ImageBase64: imageBase64, Hint: hint})
	if err != nil {
		return nil, fmt.Errorf("encode vision request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, retryable, err := c.post(ctx, body)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.logger.Printf("attempt %d/%d failed: %v", attempt, maxAttempts, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, fmt.Errorf("vision analysis failed: %w", lastErr)
}

func (c *Client) post(ctx context.Context, body []byte) (*Analysis, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("build vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("vision request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, fmt.Errorf("vision API returned %d: %s", resp.StatusCode, msg)
	}

	var payload analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode vision response: %w", err)
	}

	return &Analysis{
		Category:    MapCategory(payload.Category),
		Subcategory: payload.Subcategory,
		Color:       MapColor(payload.Color),
		Secondary:   MapColor(payload.Secondary),
		Description: payload.Description,
		Labels:      payload.Labels,
		Confidence:  payload.Confidence,
		Raw:         payload.Extra,
	}, false, nil
}
