package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/wearly/stylist-service/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrItemNotFound, http.StatusNotFound},
		{domain.ErrSuggestionNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrAccountLocked, http.StatusForbidden},
		{domain.ErrWardrobeTooSmall, http.StatusUnprocessableEntity},
		{domain.ErrStylistUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("wrapped: %w", domain.ErrEmailTaken), http.StatusConflict},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.status {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusNotFound, "item_not_found", "clothing item not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Error != "item_not_found" || resp.Message != "clothing item not found" {
		t.Errorf("body = %+v", resp)
	}
}

func TestDecodeBodyRejectsBadJSON(t *testing.T) {
	h := &Handler{validate: validator.New()}

	var req loginRequest
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))

	if h.decodeBody(rec, r, &req) {
		t.Fatal("decodeBody accepted invalid JSON")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDecodeBodyValidates(t *testing.T) {
	h := &Handler{validate: validator.New()}

	var req registerRequest
	body := `{"name": "Ada", "email": "not-an-email", "password": "longenough1"}`
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))

	if h.decodeBody(rec, r, &req) {
		t.Fatal("decodeBody accepted invalid email")
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Error != "validation_failed" {
		t.Errorf("error code = %q, want validation_failed", resp.Error)
	}
	if !strings.Contains(resp.Message, "Email") {
		t.Errorf("message %q does not name the failed field", resp.Message)
	}
}

func TestDecodeBodyAcceptsValid(t *testing.T) {
	h := &Handler{validate: validator.New()}

	var req registerRequest
	body := `{"name": "Ada", "email": "ada@example.com", "password": "longenough1"}`
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))

	if !h.decodeBody(rec, r, &req) {
		t.Fatalf("decodeBody rejected valid body: %s", rec.Body.String())
	}
	if req.Email != "ada@example.com" {
		t.Errorf("email = %q", req.Email)
	}
}

func TestCurrentUserWithoutAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/wardrobe/items", nil).WithContext(context.Background())

	if _, ok := currentUser(rec, r); ok {
		t.Fatal("currentUser succeeded without auth middleware")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestPathUUID(t *testing.T) {
	rec := httptest.NewRecorder()
	if _, ok := pathUUID(rec, "not-a-uuid", "item_id"); ok {
		t.Fatal("pathUUID accepted garbage")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	if _, ok := pathUUID(rec, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", "item_id"); !ok {
		t.Fatal("pathUUID rejected a valid UUID")
	}
}

func TestQueryInt(t *testing.T) {
	cases := []struct {
		raw      string
		fallback int
		want     int
	}{
		{"", 50, 50},
		{"25", 50, 25},
		{"abc", 50, 50},
		{"-3", 50, 50},
	}
	for _, tc := range cases {
		if got := queryInt(tc.raw, tc.fallback); got != tc.want {
			t.Errorf("queryInt(%q, %d) = %d, want %d", tc.raw, tc.fallback, got, tc.want)
		}
	}
}
