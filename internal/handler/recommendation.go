package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wearly/stylist-service/internal/domain"
)

type recommendRequest struct {
	Prompt   string `json:"prompt" validate:"required,min=3,max=500"`
	Location string `json:"location" validate:"max=120"`
	Count    int    `json:"count" validate:"gte=0,lte=5"`
}

// POST /api/recommendations
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req recommendRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.Recommend(r.Context(), userID, req.Prompt, req.Location, req.Count)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		Suggestions: result.Suggestions,
		Metadata: domain.RecommendationMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Suggestions),
		},
	})
}

// GET /api/recommendations/history
func (h *Handler) SuggestionHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	suggestions, err := h.service.SuggestionHistory(r.Context(), userID, queryInt(r.URL.Query().Get("limit"), 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []domain.OutfitSuggestion{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions, "count": len(suggestions)})
}

// GET /api/recommendations/{suggestionID}
func (h *Handler) GetSuggestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	suggestionID, ok := pathUUID(w, chi.URLParam(r, "suggestionID"), "suggestion_id")
	if !ok {
		return
	}

	suggestion, err := h.service.GetSuggestion(r.Context(), userID, suggestionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

// DELETE /api/recommendations/{suggestionID}
func (h *Handler) DismissSuggestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	suggestionID, ok := pathUUID(w, chi.URLParam(r, "suggestionID"), "suggestion_id")
	if !ok {
		return
	}

	if err := h.service.DismissSuggestion(r.Context(), userID, suggestionID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/weather
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "location query parameter is required")
		return
	}

	weather, err := h.service.GetWeather(r.Context(), location)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weather)
}
