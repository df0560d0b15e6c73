package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wearly/stylist-service/internal/domain"
)

const uniqueViolation = "23505"

// Create a new user row
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (user_id, email, name, password_hash, email_verified, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		user.ID, user.Email, user.Name, user.PasswordHash,
		user.EmailVerified, user.IsActive, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user %s: %w", user.Email, err)
	}
	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return r.getUser(ctx, `user_id = $1`, userID)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, `email = $1`, email)
}

func (r *Repository) getUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	user := &domain.User{}

	err := r.pool.QueryRow(ctx,
		`SELECT user_id, email, name, password_hash, email_verified, is_active,
		        failed_login_attempts, account_locked_until, created_at, updated_at, last_login
		 FROM users WHERE `+where,
		arg,
	).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.EmailVerified,
		&user.IsActive, &user.FailedLoginAttempts, &user.AccountLockedUntil,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLogin)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return user, nil
}

// RecordLoginFailure bumps the failure counter and, when lockedUntil is
// set, opens a lockout window.
func (r *Repository) RecordLoginFailure(ctx context.Context, userID uuid.UUID, attempts int, lockedUntil *time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET failed_login_attempts = $2, account_locked_until = $3, updated_at = now()
		 WHERE user_id = $1`,
		userID, attempts, lockedUntil,
	)
	if err != nil {
		return fmt.Errorf("record login failure for user %s: %w", userID, err)
	}
	return nil
}

// RecordLoginSuccess resets the failure state and stamps last_login.
func (r *Repository) RecordLoginSuccess(ctx context.Context, userID uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET failed_login_attempts = 0, account_locked_until = NULL, last_login = $2, updated_at = now()
		 WHERE user_id = $1`,
		userID, at,
	)
	if err != nil {
		return fmt.Errorf("record login success for user %s: %w", userID, err)
	}
	return nil
}

func (r *Repository) MarkEmailVerified(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email_verified = TRUE, updated_at = now() WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("mark email verified for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *Repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE user_id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetProfile returns the user's profile, creating an empty default when
// none exists yet.
func (r *Repository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile := &domain.Profile{UserID: userID}
	var prefs []byte

	err := r.pool.QueryRow(ctx,
		`SELECT style_prefs, preferred_weather_unit, last_known_location, updated_at
		 FROM user_profiles WHERE user_id = $1`,
		userID,
	).Scan(&prefs, &profile.PreferredWeatherUnit, &profile.LastKnownLocation, &profile.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			profile.PreferredWeatherUnit = "celsius"
			return profile, nil
		}
		return nil, fmt.Errorf("query profile for user %s: %w", userID, err)
	}

	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &profile.StylePrefs); err != nil {
			return nil, fmt.Errorf("decode style prefs for user %s: %w", userID, err)
		}
	}
	return profile, nil
}

func (r *Repository) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	prefs, err := json.Marshal(profile.StylePrefs)
	if err != nil {
		return fmt.Errorf("encode style prefs: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, style_prefs, preferred_weather_unit, last_known_location, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET style_prefs = EXCLUDED.style_prefs,
		     preferred_weather_unit = EXCLUDED.preferred_weather_unit,
		     last_known_location = EXCLUDED.last_known_location,
		     updated_at = now()`,
		profile.UserID, prefs, profile.PreferredWeatherUnit, profile.LastKnownLocation,
	)
	if err != nil {
		return fmt.Errorf("save profile for user %s: %w", profile.UserID, err)
	}
	return nil
}
