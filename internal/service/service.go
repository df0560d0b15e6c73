package service

import (
	"errors"

	"github.com/wearly/stylist-service/internal/cache"
	"github.com/wearly/stylist-service/internal/domain"
	"github.com/wearly/stylist-service/internal/email"
	"github.com/wearly/stylist-service/internal/media"
	"github.com/wearly/stylist-service/internal/repository"
	"github.com/wearly/stylist-service/internal/stylist"
	"github.com/wearly/stylist-service/internal/vision"
	"github.com/wearly/stylist-service/internal/weather"
)

// Service holds the application logic behind every API route.
type Service struct {
	repo    *repository.Repository
	cache   *cache.Cache
	weather *weather.Client
	vision  *vision.Client
	stylist *stylist.Client
	media   *media.Store
	email   email.Sender
}

func NewService(
	repo *repository.Repository,
	cache *cache.Cache,
	weatherClient *weather.Client,
	visionClient *vision.Client,
	stylistClient *stylist.Client,
	mediaStore *media.Store,
	emailSender email.Sender,
) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		weather: weatherClient,
		vision:  visionClient,
		stylist: stylistClient,
		media:   mediaStore,
		email:   emailSender,
	}
}

// CategorizeError maps domain errors onto response error codes.
func CategorizeError(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found", "user not found"
	case errors.Is(err, domain.ErrItemNotFound):
		return "item_not_found", "clothing item not found"
	case errors.Is(err, domain.ErrSuggestionNotFound):
		return "suggestion_not_found", "outfit suggestion not found"
	case errors.Is(err, domain.ErrEmailTaken):
		return "email_taken", "an account with this email already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials", "email or password is incorrect"
	case errors.Is(err, domain.ErrAccountLocked):
		return "account_locked", "account temporarily locked after repeated failed logins"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token", "token is invalid or expired"
	case errors.Is(err, domain.ErrWardrobeTooSmall):
		return "wardrobe_too_small", "add more items to your wardrobe to get outfit suggestions"
	case errors.Is(err, domain.ErrStylistUnavailable):
		return "stylist_unavailable", "the stylist is temporarily unavailable, try again shortly"
	default:
		return "internal_error", "an unexpected error occurred"
	}
}
