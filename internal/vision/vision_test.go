package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestMapCategory(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"T-Shirt", "tops"},
		{"jeans", "bottoms"},
		{"Blazer", "outerwear"},
		{"sneakers", "shoes"},
		{"dresses", "dresses"}, // already canonical
		{"spacesuit", "other"},
		{"", "other"},
	}
	for _, tc := range cases {
		if got := MapCategory(tc.label); got != tc.want {
			t.Errorf("MapCategory(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestMapColor(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Burgundy", "maroon"},
		{"gray", "grey"},
		{"navy", "navy"},
		{"chartreuse", "other"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MapColor(tc.name); got != tc.want {
			t.Errorf("MapColor(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestAnalyzeSendsBearerAndNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"category":      "Hoodie",
			"primary_color": "charcoal",
			"description":   "grey pullover hoodie",
			"labels":        []string{"hoodie", "casual"},
			"confidence":    0.92,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	analysis, err := client.Analyze(context.Background(), "aW1n", "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Category != "tops" {
		t.Errorf("category = %q, want tops", analysis.Category)
	}
	if analysis.Color != "grey" {
		t.Errorf("color = %q, want grey", analysis.Color)
	}
	if analysis.Confidence != 0.92 {
		t.Errorf("confidence = %v, want 0.92", analysis.Confidence)
	}
}

func TestAnalyzeRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"category": "jeans", "confidence": 0.8})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	analysis, err := client.Analyze(context.Background(), "aW1n", "")
	if err != nil {
		t.Fatalf("Analyze after retries: %v", err)
	}
	if analysis.Category != "bottoms" {
		t.Errorf("category = %q, want bottoms", analysis.Category)
	}
	if calls.Load() != 3 {
		t.Errorf("server called %d times, want 3", calls.Load())
	}
}

func TestAnalyzeDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	if _, err := client.Analyze(context.Background(), "aW1n", ""); err == nil {
		t.Fatal("expected error on 422")
	}
	if calls.Load() != 1 {
		t.Errorf("server called %d times, want 1", calls.Load())
	}
}

func TestAnalyzeWithoutKeyUsesMock(t *testing.T) {
	client := NewClient("", "")
	analysis, err := client.Analyze(context.Background(), "aW1n", "jacket")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Category != "outerwear" {
		t.Errorf("mock category = %q, want outerwear", analysis.Category)
	}
	if analysis.Confidence != 0 {
		t.Errorf("mock confidence = %v, want 0", analysis.Confidence)
	}
}
