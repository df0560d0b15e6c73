package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wearly/stylist-service/internal/domain"
	"github.com/wearly/stylist-service/internal/service"
)

type addItemRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	Category string   `json:"category" validate:"omitempty,max=50"`
	Color    string   `json:"color" validate:"omitempty,max=50"`
	Season   string   `json:"season" validate:"omitempty,oneof=spring summer fall winter all_season"`
	Brand    string   `json:"brand" validate:"max=100"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Tags     []string `json:"tags" validate:"max=20,dive,max=50"`
	Image    string   `json:"image" validate:"required"`
}

// POST /api/wardrobe/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	item, err := h.service.AddItem(r.Context(), userID, service.AddItemInput{
		Name:     req.Name,
		Category: req.Category,
		Color:    req.Color,
		Season:   req.Season,
		Brand:    req.Brand,
		Price:    req.Price,
		Tags:     req.Tags,
		ImageURL: req.Image,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// GET /api/wardrobe/items
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := domain.ItemFilter{
		Category:      q.Get("category"),
		Color:         q.Get("color"),
		Season:        q.Get("season"),
		FavoritesOnly: q.Get("favorites") == "true",
		Search:        q.Get("search"),
		Limit:         queryInt(q.Get("limit"), 50),
		Offset:        queryInt(q.Get("offset"), 0),
	}

	items, err := h.service.ListItems(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, WardrobeResponse{Items: items, Count: len(items)})
}

// GET /api/wardrobe/items/{itemID}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, chi.URLParam(r, "itemID"), "item_id")
	if !ok {
		return
	}

	item, err := h.service.GetItem(r.Context(), userID, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type updateItemRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string  `json:"category" validate:"omitempty,max=50"`
	Color    *string  `json:"color" validate:"omitempty,max=50"`
	Season   *string  `json:"season" validate:"omitempty,oneof=spring summer fall winter all_season"`
	Brand    *string  `json:"brand" validate:"omitempty,max=100"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Tags     []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

// PUT /api/wardrobe/items/{itemID}
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, chi.URLParam(r, "itemID"), "item_id")
	if !ok {
		return
	}

	var req updateItemRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	item, err := h.service.UpdateItem(r.Context(), userID, itemID, service.UpdateItemInput{
		Name:     req.Name,
		Category: req.Category,
		Color:    req.Color,
		Season:   req.Season,
		Brand:    req.Brand,
		Price:    req.Price,
		Tags:     req.Tags,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DELETE /api/wardrobe/items/{itemID}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, chi.URLParam(r, "itemID"), "item_id")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(r.Context(), userID, itemID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/wardrobe/items/{itemID}/restore
func (h *Handler) RestoreItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, chi.URLParam(r, "itemID"), "item_id")
	if !ok {
		return
	}

	if err := h.service.RestoreItem(r.Context(), userID, itemID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "item restored"})
}

// POST /api/wardrobe/items/{itemID}/favorite
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, chi.URLParam(r, "itemID"), "item_id")
	if !ok {
		return
	}

	favorite, err := h.service.ToggleFavorite(r.Context(), userID, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_favorite": favorite})
}

// POST /api/wardrobe/items/{itemID}/worn
func (h *Handler) MarkWorn(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, chi.URLParam(r, "itemID"), "item_id")
	if !ok {
		return
	}

	count, err := h.service.MarkWorn(r.Context(), userID, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"wear_count": count})
}

// GET /api/wardrobe/stats
func (h *Handler) WardrobeStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.service.WardrobeStats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /api/wardrobe/search-suggestions
func (h *Handler) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	prefix := r.URL.Query().Get("q")
	if prefix == "" {
		writeJSON(w, http.StatusOK, map[string][]string{"suggestions": {}})
		return
	}

	suggestions, err := h.service.SearchSuggestions(r.Context(), userID, prefix, queryInt(r.URL.Query().Get("limit"), 10))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
