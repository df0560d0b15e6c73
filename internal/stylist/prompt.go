package stylist

import (
	"fmt"
	"strings"

	"github.com/wearly/stylist-service/internal/domain"
)

const SystemPrompt = `You are a professional personal stylist. You create outfit ` +
	`combinations strictly from the wardrobe items provided, never inventing items. ` +
	`Respond only with JSON matching the requested schema.`

// PromptInput collects everything the outfit prompt draws on.
type PromptInput struct {
	Request string
	Weather *domain.Weather
	Items   []domain.ClothingItem
	Prefs   domain.StylePreferences
	Count   int
}

// BuildPrompt renders the user message: the occasion, current weather,
// style preferences, and the wardrobe as numbered entries keyed by item ID.
func BuildPrompt(in PromptInput) string {
	var sb strings.Builder

	count := in.Count
	if count <= 0 {
		count = 3
	}
	fmt.Fprintf(&sb, "Create %d outfit suggestions for: %s\n\n", count, in.Request)

	if w := in.Weather; w != nil {
		fmt.Fprintf(&sb, "Current weather in %s: %s, %d°C (feels like %d°C), humidity %d%%, wind %.1f m/s.\n",
			w.Location, w.Description, w.Temperature, w.FeelsLike, w.Humidity, w.WindSpeed)
		if s := w.ClothingSuggestions; s != nil {
			fmt.Fprintf(&sb, "Layering guidance: %s layers; prefer %s; avoid %s.\n",
				s.Layers, strings.Join(s.Materials, ", "), strings.Join(s.Avoid, ", "))
		}
		sb.WriteString("\n")
	}

	if len(in.Prefs.FavoriteColors) > 0 || len(in.Prefs.FavoriteStyles) > 0 {
		sb.WriteString("User preferences:")
		if len(in.Prefs.FavoriteColors) > 0 {
			fmt.Fprintf(&sb, " favorite colors: %s.", strings.Join(in.Prefs.FavoriteColors, ", "))
		}
		if len(in.Prefs.FavoriteStyles) > 0 {
			fmt.Fprintf(&sb, " preferred styles: %s.", strings.Join(in.Prefs.FavoriteStyles, ", "))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString("Available wardrobe items:\n")
	for i, item := range in.Items {
		desc := item.CVDescription
		if desc == "" {
			desc = describeItem(&item)
		}
		fmt.Fprintf(&sb, "%d. [%s] %s (%s, %s): %s\n", i+1, item.ID, item.Name, item.Category, item.Color, desc)
	}

	sb.WriteString(`
Respond with a JSON array. Each element:
{
  "item_ids": ["<uuid>", ...],
  "structure": {"tops": ["..."], "bottoms": ["..."], "shoes": ["..."]},
  "rationale": "why this outfit works",
  "confidence": 0.0
}
Use only the item IDs listed above. Each outfit must combine 2 to 5 items.`)

	return sb.String()
}

// describeItem builds a minimal description for items the vision pipeline
// has not annotated yet.
func describeItem(item *domain.ClothingItem) string {
	parts := []string{item.Color, item.Category}
	if item.Season != "" && item.Season != "all_season" {
		parts = append(parts, "for "+item.Season)
	}
	if item.Brand != "" {
		parts = append(parts, "by "+item.Brand)
	}
	return strings.Join(parts, " ")
}
