package handler

import "github.com/wearly/stylist-service/internal/domain"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type ProfileResponse struct {
	User    *domain.User    `json:"user"`
	Profile *domain.Profile `json:"profile"`
}

type WardrobeResponse struct {
	Items []domain.ClothingItem `json:"items"`
	Count int                   `json:"count"`
}

type RecommendationResponse struct {
	Suggestions []domain.OutfitSuggestion `json:"suggestions"`
	Metadata    domain.RecommendationMeta `json:"metadata"`
}

type FeedbackResponse struct {
	Feedback *domain.OutfitFeedback `json:"feedback"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CSRFResponse struct {
	Token string `json:"csrf_token"`
}
