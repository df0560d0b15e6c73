package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wearly/stylist-service/internal/domain"
)

// Token purposes. Each token embeds its purpose so an activation token
// cannot be replayed as an access token.
const (
	PurposeAccess     = "access"
	PurposeActivation = "activation"
	PurposeReset      = "password_reset"
)

type Claims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies the three JWT flavors the service issues.
type Tokens struct {
	secret        []byte
	accessTTL     time.Duration
	activationTTL time.Duration
	resetTTL      time.Duration
}

func NewTokens(secret string, accessTTL, activationTTL, resetTTL time.Duration) *Tokens {
	return &Tokens{
		secret:        []byte(secret),
		accessTTL:     accessTTL,
		activationTTL: activationTTL,
		resetTTL:      resetTTL,
	}
}

func (t *Tokens) IssueAccess(userID uuid.UUID) (string, error) {
	return t.issue(userID, PurposeAccess, t.accessTTL)
}

func (t *Tokens) IssueActivation(userID uuid.UUID) (string, error) {
	return t.issue(userID, PurposeActivation, t.activationTTL)
}

func (t *Tokens) IssueReset(userID uuid.UUID) (string, error) {
	return t.issue(userID, PurposeReset, t.resetTTL)
}

func (t *Tokens) issue(userID uuid.UUID, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", purpose, err)
	}
	return signed, nil
}

// Verify parses a token and checks it carries the expected purpose.
// Expired, malformed or mispurposed tokens all map to ErrInvalidToken.
func (t *Tokens) Verify(tokenString, purpose string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return uuid.Nil, domain.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return userID, nil
}

// HashPassword wraps bcrypt at its default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether a password matches its stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
