package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wearly/stylist-service/internal/domain"
)

func (r *Repository) InsertSuggestion(ctx context.Context, s *domain.OutfitSuggestion) error {
	weather, err := json.Marshal(s.Weather)
	if err != nil {
		return fmt.Errorf("encode weather snapshot: %w", err)
	}
	items, err := json.Marshal(s.ItemsIncluded)
	if err != nil {
		return fmt.Errorf("encode items included: %w", err)
	}
	structure, err := json.Marshal(s.OutfitStructure)
	if err != nil {
		return fmt.Errorf("encode outfit structure: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO outfit_suggestions
		 (suggestion_id, user_id, prompt, location, weather, items_included,
		  outfit_structure, ai_rationale, confidence_score, model_version,
		  is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.UserID, s.Prompt, s.Location, weather, items, structure,
		s.Rationale, s.ConfidenceScore, s.ModelVersion, s.IsActive, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outfit suggestion %s: %w", s.ID, err)
	}
	return nil
}

func (r *Repository) GetSuggestion(ctx context.Context, userID, suggestionID uuid.UUID) (*domain.OutfitSuggestion, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT suggestion_id, user_id, prompt, location, weather, items_included,
		        outfit_structure, ai_rationale, confidence_score, model_version,
		        is_active, created_at
		 FROM outfit_suggestions
		 WHERE suggestion_id = $1 AND user_id = $2`,
		suggestionID, userID,
	)

	s, err := scanSuggestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("query outfit suggestion %s: %w", suggestionID, err)
	}
	return s, nil
}

// RecentSuggestions returns the user's latest active suggestions, newest
// first.
func (r *Repository) RecentSuggestions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.OutfitSuggestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT suggestion_id, user_id, prompt, location, weather, items_included,
		        outfit_structure, ai_rationale, confidence_score, model_version,
		        is_active, created_at
		 FROM outfit_suggestions
		 WHERE user_id = $1 AND is_active
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query suggestions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var suggestions []domain.OutfitSuggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outfit suggestion: %w", err)
		}
		suggestions = append(suggestions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outfit suggestions: %w", err)
	}
	return suggestions, nil
}

// DeactivateSuggestion hides a suggestion from history without deleting
// the row, so attached feedback stays resolvable.
func (r *Repository) DeactivateSuggestion(ctx context.Context, userID, suggestionID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE outfit_suggestions SET is_active = FALSE
		 WHERE suggestion_id = $1 AND user_id = $2`,
		suggestionID, userID,
	)
	if err != nil {
		return fmt.Errorf("deactivate suggestion %s: %w", suggestionID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSuggestionNotFound
	}
	return nil
}

func scanSuggestion(row pgx.Row) (*domain.OutfitSuggestion, error) {
	s := &domain.OutfitSuggestion{}
	var weather, items, structure []byte

	err := row.Scan(&s.ID, &s.UserID, &s.Prompt, &s.Location, &weather, &items,
		&structure, &s.Rationale, &s.ConfidenceScore, &s.ModelVersion,
		&s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(weather) > 0 {
		if err := json.Unmarshal(weather, &s.Weather); err != nil {
			return nil, fmt.Errorf("decode weather snapshot: %w", err)
		}
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.ItemsIncluded); err != nil {
			return nil, fmt.Errorf("decode items included: %w", err)
		}
	}
	if len(structure) > 0 {
		if err := json.Unmarshal(structure, &s.OutfitStructure); err != nil {
			return nil, fmt.Errorf("decode outfit structure: %w", err)
		}
	}
	return s, nil
}
