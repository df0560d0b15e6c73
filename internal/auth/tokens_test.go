package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wearly/stylist-service/internal/domain"
)

func testTokens() *Tokens {
	return NewTokens("test-secret", time.Hour, 24*time.Hour, time.Hour)
}

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()

	signed, err := tokens.IssueAccess(userID)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	got, err := tokens.Verify(signed, PurposeAccess)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != userID {
		t.Errorf("verified user = %s, want %s", got, userID)
	}
}

func TestVerifyRejectsWrongPurpose(t *testing.T) {
	tokens := testTokens()
	signed, err := tokens.IssueActivation(uuid.New())
	if err != nil {
		t.Fatalf("IssueActivation: %v", err)
	}

	if _, err := tokens.Verify(signed, PurposeAccess); err != domain.ErrInvalidToken {
		t.Errorf("activation token accepted as access token: %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute, time.Hour, time.Hour)
	signed, err := tokens.IssueAccess(uuid.New())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if _, err := tokens.Verify(signed, PurposeAccess); err != domain.ErrInvalidToken {
		t.Errorf("expired token accepted: %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := testTokens().IssueAccess(uuid.New())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	other := NewTokens("different-secret", time.Hour, time.Hour, time.Hour)
	if _, err := other.Verify(signed, PurposeAccess); err != domain.ErrInvalidToken {
		t.Errorf("token signed with another secret accepted: %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("wrong password accepted")
	}
}

func TestMiddleware(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()
	signed, err := tokens.IssueAccess(userID)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	var gotUser uuid.UUID
	handler := Middleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/wardrobe/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUser != userID {
		t.Errorf("context user = %s, want %s", gotUser, userID)
	}

	// No header at all.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wardrobe/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d, want 401", rec.Code)
	}

	// Garbage token.
	req = httptest.NewRequest(http.MethodGet, "/api/wardrobe/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", rec.Code)
	}
}
