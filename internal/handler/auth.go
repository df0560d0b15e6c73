package handler

import (
	"net/http"
	"time"

	"github.com/wearly/stylist-service/internal/csrf"
	"github.com/wearly/stylist-service/internal/domain"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ProfileResponse{User: user})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

type activateRequest struct {
	Token string `json:"token" validate:"required"`
}

// POST /api/auth/activate
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.auth.Activate(r.Context(), req.Token); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "account activated"})
}

type resetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// POST /api/auth/password-reset
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequestRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}
	// Always 200 so the endpoint does not reveal account existence.
	writeJSON(w, http.StatusOK, MessageResponse{Message: "if the address has an account, a reset link is on the way"})
}

type resetConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// POST /api/auth/password-reset/confirm
func (h *Handler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "password updated"})
}

// GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, profile, err := h.auth.Me(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{User: user, Profile: profile})
}

type profileRequest struct {
	StylePrefs           domain.StylePreferences `json:"style_prefs"`
	PreferredWeatherUnit string                  `json:"preferred_weather_unit" validate:"omitempty,oneof=celsius fahrenheit"`
	LastKnownLocation    string                  `json:"last_known_location" validate:"max=120"`
}

// PUT /api/auth/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.PreferredWeatherUnit == "" {
		req.PreferredWeatherUnit = "celsius"
	}

	profile := &domain.Profile{
		UserID:               userID,
		StylePrefs:           req.StylePrefs,
		PreferredWeatherUnit: req.PreferredWeatherUnit,
		LastKnownLocation:    req.LastKnownLocation,
	}
	if err := h.auth.UpdateProfile(r.Context(), profile); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Profile: profile})
}

// POST /api/auth/logout
//
// Access tokens are stateless; logout invalidates the session's CSRF token
// and clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := r.Header.Get(csrf.HeaderName); token != "" {
		if err := h.csrf.Invalidate(r.Context(), token); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "could not end session")
			return
		}
	}
	csrf.SetCookie(w, "", -time.Second)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

// GET /api/csrf
//
// Issues a token, mirrors it into the csrftoken cookie, and returns it in
// the body so non-browser clients can read it too.
func (h *Handler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.csrf.Issue(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "could not issue token")
		return
	}
	csrf.SetCookie(w, token, h.csrfTTL)
	writeJSON(w, http.StatusOK, CSRFResponse{Token: token})
}
