package vision

// MockAnalysis is the stand-in used when no vision API is configured. The
// user's category hint is honored so manual entry stays authoritative.
// Description stays empty so prompts fall back to the item's own fields.
func MockAnalysis(hint string) *Analysis {
	category := MapCategory(hint)
	return &Analysis{
		Category:   category,
		Color:      "other",
		Labels:     []string{category},
		Confidence: 0,
		Raw:        map[string]any{"mock": true},
	}
}
