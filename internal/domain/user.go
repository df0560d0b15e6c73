package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type User struct {
	ID                  uuid.UUID  `json:"user_id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	PasswordHash        string     `json:"-"`
	EmailVerified       bool       `json:"email_verified"`
	IsActive            bool       `json:"is_active"`
	FailedLoginAttempts int        `json:"-"`
	AccountLockedUntil  *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
}

// IsAccountLocked reports whether a lockout window is still open.
func (u *User) IsAccountLocked(now time.Time) bool {
	return u.AccountLockedUntil != nil && now.Before(*u.AccountLockedUntil)
}

// Profile holds style preferences and location context; both feed the
// recommendation prompt.
type Profile struct {
	UserID               uuid.UUID        `json:"user_id"`
	StylePrefs           StylePreferences `json:"style_prefs"`
	PreferredWeatherUnit string           `json:"preferred_weather_unit"`
	LastKnownLocation    string           `json:"last_known_location"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// StylePreferences is the typed shape of the profile's style_prefs JSON
// column.
type StylePreferences struct {
	FavoriteColors    []string `json:"favorite_colors"`
	FavoriteStyles    []string `json:"favorite_styles"`
	FavoriteOccasions []string `json:"favorite_occasions"`
	SizePreference    string   `json:"size_preference,omitempty"`
	ComfortLevel      string   `json:"comfort_level,omitempty"`
}
