package csrf

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// HeaderName is where clients send the token back; CookieName is
	// where issued tokens are stored browser-side.
	HeaderName = "X-CSRFToken"
	CookieName = "csrftoken"

	keyPrefix = "csrf:"
)

// Store issues and validates CSRF tokens backed by redis, so tokens
// survive server restarts and work across replicas.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Issue mints a fresh token and registers it with the configured TTL.
func (s *Store) Issue(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.client.Set(ctx, keyPrefix+token, 1, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store csrf token: %w", err)
	}
	return token, nil
}

// Valid reports whether the token is known and unexpired.
func (s *Store) Valid(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, keyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("check csrf token: %w", err)
	}
	return n > 0, nil
}

// Invalidate drops a token, for logout.
func (s *Store) Invalidate(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("invalidate csrf token: %w", err)
	}
	return nil
}

// Middleware enforces the token on mutating methods. Reads pass through
// untouched.
func Middleware(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			ok, err := store.Valid(r.Context(), r.Header.Get(HeaderName))
			if err != nil {
				http.Error(w, `{"error":"internal_error","message":"could not verify request"}`, http.StatusInternalServerError)
				return
			}
			if !ok {
				http.Error(w, `{"error":"forbidden","message":"missing or invalid CSRF token"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetCookie attaches an issued token to the response so browser clients
// can resolve it from the cookie jar.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
