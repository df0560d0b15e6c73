package stylist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/wearly/stylist-service/internal/domain"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"```\n[]\n```", "[]"},
		{"[]", "[]"},
		{"  [1, 2]  ", "[1, 2]"},
	}
	for _, tc := range cases {
		if got := StripFences(tc.in); got != tc.want {
			t.Errorf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseOutfitsValid(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	wardrobe := map[uuid.UUID]bool{a: true, b: true}

	content := fmt.Sprintf("```json\n[{\"item_ids\": [%q, %q], \"structure\": {\"tops\": [\"tee\"]}, \"rationale\": \"works well\", \"confidence\": 0.8}]\n```", a, b)

	outfits, err := ParseOutfits(content, wardrobe)
	if err != nil {
		t.Fatalf("ParseOutfits: %v", err)
	}
	if len(outfits) != 1 {
		t.Fatalf("got %d outfits, want 1", len(outfits))
	}
	if len(outfits[0].ItemIDs) != 2 {
		t.Errorf("item IDs = %v, want 2 entries", outfits[0].ItemIDs)
	}
	if outfits[0].Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", outfits[0].Confidence)
	}
}

func TestParseOutfitsDropsInvalid(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	wardrobe := map[uuid.UUID]bool{a: true, b: true, c: true}
	unknown := uuid.New()

	raw := []RawOutfit{
		{ItemIDs: []string{a.String()}, Rationale: "too small"},
		{ItemIDs: []string{a.String(), unknown.String()}, Rationale: "unknown item"},
		{ItemIDs: []string{a.String(), b.String()}, Rationale: ""},
		{ItemIDs: []string{a.String(), a.String()}, Rationale: "duplicate item"},
		{ItemIDs: []string{b.String(), c.String()}, Rationale: "keeper", Confidence: 0.9},
	}
	content, _ := json.Marshal(raw)

	outfits, err := ParseOutfits(string(content), wardrobe)
	if err != nil {
		t.Fatalf("ParseOutfits: %v", err)
	}
	if len(outfits) != 1 {
		t.Fatalf("got %d outfits, want only the keeper", len(outfits))
	}
	if outfits[0].Rationale != "keeper" {
		t.Errorf("kept outfit rationale = %q", outfits[0].Rationale)
	}
}

func TestParseOutfitsAllInvalid(t *testing.T) {
	wardrobe := map[uuid.UUID]bool{uuid.New(): true}
	if _, err := ParseOutfits(`[{"item_ids": [], "rationale": "empty"}]`, wardrobe); err == nil {
		t.Fatal("expected error when no outfit survives validation")
	}
}

func TestParseOutfitsClampsConfidence(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	wardrobe := map[uuid.UUID]bool{a: true, b: true}

	content := fmt.Sprintf(`[{"item_ids": [%q, %q], "rationale": "ok", "confidence": 7.5}]`, a, b)
	outfits, err := ParseOutfits(content, wardrobe)
	if err != nil {
		t.Fatalf("ParseOutfits: %v", err)
	}
	if outfits[0].Confidence != 0.5 {
		t.Errorf("out-of-range confidence = %v, want default 0.5", outfits[0].Confidence)
	}
}

func TestBuildPromptIncludesWardrobeAndWeather(t *testing.T) {
	itemID := uuid.New()
	prompt := BuildPrompt(PromptInput{
		Request: "casual friday at the office",
		Weather: &domain.Weather{
			Location: "Oslo", Description: "light rain", Temperature: 8,
			FeelsLike: 6, Humidity: 80, WindSpeed: 4,
			ClothingSuggestions: &domain.ClothingSuggestions{
				Layers: "medium", Materials: []string{"wool"}, Avoid: []string{"shorts"},
			},
		},
		Items: []domain.ClothingItem{{
			ID: itemID, Name: "Blue Oxford", Category: "tops", Color: "blue",
			CVDescription: "light blue oxford shirt, slim fit",
		}},
		Prefs: domain.StylePreferences{FavoriteColors: []string{"navy"}},
		Count: 2,
	})

	for _, want := range []string{
		"Create 2 outfit suggestions",
		"casual friday at the office",
		"Oslo",
		"medium layers",
		itemID.String(),
		"light blue oxford shirt",
		"favorite colors: navy",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestCompleteSendsSystemAndUserMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("messages = %+v, want system then user", req.Messages)
		}
		if req.Model != "gpt-4o" {
			t.Errorf("model = %q, want gpt-4o", req.Model)
		}
		if req.MaxTokens != 2000 {
			t.Errorf("max_tokens = %d, want 2000", req.MaxTokens)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "[]"}}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o")
	content, err := client.Complete(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "[]" {
		t.Errorf("content = %q, want []", content)
	}
}

func TestCompleteMapsOutagesToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o")
	_, err := client.Complete(context.Background(), "sys", "user")
	if err == nil || !strings.Contains(err.Error(), domain.ErrStylistUnavailable.Error()) {
		t.Fatalf("err = %v, want wrapped ErrStylistUnavailable", err)
	}
}

func TestCompleteWithoutKey(t *testing.T) {
	client := NewClient("http://unused", "", "gpt-4o")
	if _, err := client.Complete(context.Background(), "sys", "user"); err != domain.ErrStylistUnavailable {
		t.Fatalf("err = %v, want ErrStylistUnavailable", err)
	}
}
