package stylist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	minOutfitItems = 2
	maxOutfitItems = 5
)

// RawOutfit is one outfit as the model returns it, before ID validation.
type RawOutfit struct {
	ItemIDs    []string            `json:"item_ids"`
	Structure  map[string][]string `json:"structure"`
	Rationale  string              `json:"rationale"`
	Confidence float64             `json:"confidence"`
}

// Outfit is a validated suggestion with resolved item IDs.
type Outfit struct {
	ItemIDs    []uuid.UUID
	Structure  map[string][]string
	Rationale  string
	Confidence float64
}

// StripFences removes a markdown code fence wrapper if the model added
// one, with or without a language tag.
func StripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// ParseOutfits decodes and validates the model's response. Outfits that
// reference unknown items, fall outside the 2-5 item range, or carry no
// rationale are dropped rather than failing the whole batch.
func ParseOutfits(content string, wardrobe map[uuid.UUID]bool) ([]Outfit, error) {
	var raw []RawOutfit
	if err := json.Unmarshal([]byte(StripFences(content)), &raw); err != nil {
		return nil, fmt.Errorf("decode stylist response: %w", err)
	}

	var outfits []Outfit
	for _, r := range raw {
		outfit, ok := validateOutfit(r, wardrobe)
		if ok {
			outfits = append(outfits, outfit)
		}
	}
	if len(outfits) == 0 {
		return nil, fmt.Errorf("stylist response contained no valid outfits")
	}
	return outfits, nil
}

func validateOutfit(r RawOutfit, wardrobe map[uuid.UUID]bool) (Outfit, bool) {
	if len(r.ItemIDs) < minOutfitItems || len(r.ItemIDs) > maxOutfitItems {
		return Outfit{}, false
	}
	if strings.TrimSpace(r.Rationale) == "" {
		return Outfit{}, false
	}

	seen := make(map[uuid.UUID]bool, len(r.ItemIDs))
	ids := make([]uuid.UUID, 0, len(r.ItemIDs))
	for _, raw := range r.ItemIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil || !wardrobe[id] || seen[id] {
			return Outfit{}, false
		}
		seen[id] = true
		ids = append(ids, id)
	}

	confidence := r.Confidence
	if confidence < 0 || confidence > 1 {
		confidence = 0.5
	}

	return Outfit{
		ItemIDs:    ids,
		Structure:  r.Structure,
		Rationale:  strings.TrimSpace(r.Rationale),
		Confidence: confidence,
	}, true
}
