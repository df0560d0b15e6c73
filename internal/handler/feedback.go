package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/wearly/stylist-service/internal/domain"
	"github.com/wearly/stylist-service/internal/service"
)

type feedbackRequest struct {
	OutfitID     uuid.UUID `json:"outfit_id" validate:"required"`
	FeedbackType string    `json:"feedback_type" validate:"required,oneof=suggestion planned_outfit worn_outfit"`
	Rating       int       `json:"rating" validate:"gte=-1,lte=1"`
	StarRating   *int      `json:"star_rating" validate:"omitempty,gte=1,lte=5"`
	Comment      string    `json:"comment" validate:"max=1000"`
	Occasion     string    `json:"occasion" validate:"max=120"`
}

// POST /api/feedback/submit
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req feedbackRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	feedback, err := h.service.SubmitFeedback(r.Context(), userID, service.FeedbackInput{
		OutfitID:     req.OutfitID,
		FeedbackType: req.FeedbackType,
		Rating:       req.Rating,
		StarRating:   req.StarRating,
		Comment:      req.Comment,
		Occasion:     req.Occasion,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, FeedbackResponse{Feedback: feedback})
}

// GET /api/feedback/history
func (h *Handler) FeedbackHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	feedback, err := h.service.FeedbackHistory(r.Context(), userID, queryInt(r.URL.Query().Get("limit"), 50))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if feedback == nil {
		feedback = []domain.OutfitFeedback{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": feedback, "count": len(feedback)})
}

// GET /api/feedback/summary
func (h *Handler) FeedbackSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	summary, err := h.service.FeedbackSummary(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
