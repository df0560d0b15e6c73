package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/wearly/stylist-service/internal/auth"
	"github.com/wearly/stylist-service/internal/csrf"
	"github.com/wearly/stylist-service/internal/domain"
	"github.com/wearly/stylist-service/internal/service"
)

type Handler struct {
	service  *service.Service
	auth     *service.AuthService
	csrf     *csrf.Store
	csrfTTL  time.Duration
	validate *validator.Validate
}

func NewHandler(svc *service.Service, authSvc *service.AuthService, csrfStore *csrf.Store, csrfTTL time.Duration) *Handler {
	return &Handler{
		service:  svc,
		auth:     authSvc,
		csrf:     csrfStore,
		csrfTTL:  csrfTTL,
		validate: validator.New(),
	}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// writeServiceError maps a service-layer error to a status and body.
func writeServiceError(w http.ResponseWriter, err error) {
	code, message := service.CategorizeError(err)
	writeError(w, statusFor(err), code, message)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrSuggestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountLocked):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrWardrobeTooSmall):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStylistUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody parses and validates a JSON request body.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body is not valid JSON")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "invalid value for field " + verrs[0].Field()
	}
	return "request failed validation"
}

// currentUser pulls the authenticated user injected by the auth
// middleware.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	return userID, ok
}

// pathUUID parses a UUID path parameter.
func pathUUID(w http.ResponseWriter, raw, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}
