package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/wearly/stylist-service/internal/auth"
	"github.com/wearly/stylist-service/internal/domain"
	"github.com/wearly/stylist-service/internal/email"
	"github.com/wearly/stylist-service/internal/repository"
)

const (
	maxLoginFailures = 5
	lockoutDuration  = 30 * time.Minute
)

// AuthService handles registration, login with lockout, email activation
// and password reset.
type AuthService struct {
	repo        *repository.Repository
	tokens      *auth.Tokens
	email       email.Sender
	siteBaseURL string
}

func NewAuthService(repo *repository.Repository, tokens *auth.Tokens, sender email.Sender, siteBaseURL string) *AuthService {
	return &AuthService{
		repo:        repo,
		tokens:      tokens,
		email:       sender,
		siteBaseURL: siteBaseURL,
	}
}

// Register creates an inactive account and sends the activation link.
func (s *AuthService) Register(ctx context.Context, name, emailAddr, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        emailAddr,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	activation, err := s.tokens.IssueActivation(user.ID)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/activate?token=%s", s.siteBaseURL, activation)
	if err := s.email.SendActivation(user.Email, user.Name, url); err != nil {
		// The account exists; a failed email should not roll it back.
		log.Printf("[auth] activation email for %s failed: %v", user.Email, err)
	}
	return user, nil
}

// Login verifies credentials and returns an access token. Five straight
// failures lock the account for thirty minutes; successes reset the
// counter.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (string, *domain.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	now := time.Now().UTC()
	if user.IsAccountLocked(now) {
		return "", nil, domain.ErrAccountLocked
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		attempts := user.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if attempts >= maxLoginFailures {
			until := now.Add(lockoutDuration)
			lockedUntil = &until
			log.Printf("[auth] account %s locked until %s after %d failures", user.ID, until.Format(time.RFC3339), attempts)
		}
		if err := s.repo.RecordLoginFailure(ctx, user.ID, attempts, lockedUntil); err != nil {
			log.Printf("[auth] record login failure for %s: %v", user.ID, err)
		}
		if lockedUntil != nil {
			return "", nil, domain.ErrAccountLocked
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.repo.RecordLoginSuccess(ctx, user.ID, now); err != nil {
		log.Printf("[auth] record login success for %s: %v", user.ID, err)
	}

	token, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Activate verifies the emailed activation token.
func (s *AuthService) Activate(ctx context.Context, token string) error {
	userID, err := s.tokens.Verify(token, auth.PurposeActivation)
	if err != nil {
		return err
	}
	return s.repo.MarkEmailVerified(ctx, userID)
}

// RequestPasswordReset sends the reset link. Unknown emails return nil so
// the endpoint does not leak which addresses have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	reset, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/reset-password?token=%s", s.siteBaseURL, reset)
	return s.email.SendPasswordReset(user.Email, user.Name, url)
}

// ResetPassword applies a new password from a valid reset token and clears
// any active lockout.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.Verify(token, auth.PurposeReset)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.repo.RecordLoginSuccess(ctx, userID, time.Now().UTC()); err != nil {
		log.Printf("[auth] clear lockout for %s: %v", userID, err)
	}
	return nil
}

// Me returns the account and profile for the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, *domain.Profile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

// UpdateProfile replaces the user's style preferences and settings.
func (s *AuthService) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	return s.repo.SaveProfile(ctx, profile)
}
