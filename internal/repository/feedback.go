package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/wearly/stylist-service/internal/domain"
)

// SaveFeedback records a verdict; resubmitting for the same outfit and
// type overwrites the earlier one.
func (r *Repository) SaveFeedback(ctx context.Context, f *domain.OutfitFeedback) error {
	features, err := json.Marshal(f.OutfitFeatures)
	if err != nil {
		return fmt.Errorf("encode outfit features: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO outfit_feedback
		 (feedback_id, user_id, feedback_type, outfit_id, rating, star_rating,
		  comment, occasion_context, outfit_features, processed_for_learning, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (user_id, outfit_id, feedback_type) DO UPDATE
		 SET rating = EXCLUDED.rating,
		     star_rating = EXCLUDED.star_rating,
		     comment = EXCLUDED.comment,
		     occasion_context = EXCLUDED.occasion_context,
		     outfit_features = EXCLUDED.outfit_features,
		     processed_for_learning = FALSE,
		     created_at = EXCLUDED.created_at`,
		f.ID, f.UserID, f.FeedbackType, f.OutfitID, f.Rating, f.StarRating,
		f.Comment, f.OccasionContext, features, f.ProcessedForLearning, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save feedback for outfit %s: %w", f.OutfitID, err)
	}
	return nil
}

func (r *Repository) ListFeedback(ctx context.Context, userID uuid.UUID, limit int) ([]domain.OutfitFeedback, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT feedback_id, user_id, feedback_type, outfit_id, rating, star_rating,
		        comment, occasion_context, outfit_features, processed_for_learning, created_at
		 FROM outfit_feedback
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query feedback for user %s: %w", userID, err)
	}
	defer rows.Close()

	var feedback []domain.OutfitFeedback
	for rows.Next() {
		var f domain.OutfitFeedback
		var features []byte
		err := rows.Scan(&f.ID, &f.UserID, &f.FeedbackType, &f.OutfitID,
			&f.Rating, &f.StarRating, &f.Comment, &f.OccasionContext,
			&features, &f.ProcessedForLearning, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		if len(features) > 0 {
			if err := json.Unmarshal(features, &f.OutfitFeatures); err != nil {
				return nil, fmt.Errorf("decode outfit features: %w", err)
			}
		}
		feedback = append(feedback, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return feedback, nil
}

func (r *Repository) FeedbackSummary(ctx context.Context, userID uuid.UUID) (*domain.FeedbackSummary, error) {
	summary := &domain.FeedbackSummary{}

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE rating > 0),
		        COUNT(*) FILTER (WHERE rating < 0),
		        COUNT(*) FILTER (WHERE rating = 0)
		 FROM outfit_feedback WHERE user_id = $1`,
		userID,
	).Scan(&summary.Total, &summary.ThumbsUp, &summary.ThumbsDown, &summary.Neutral)
	if err != nil {
		return nil, fmt.Errorf("summarize feedback for user %s: %w", userID, err)
	}
	return summary, nil
}

// MarkFeedbackProcessed flags a row once the preference learner has
// consumed it.
func (r *Repository) MarkFeedbackProcessed(ctx context.Context, feedbackID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outfit_feedback SET processed_for_learning = TRUE WHERE feedback_id = $1`,
		feedbackID,
	)
	if err != nil {
		return fmt.Errorf("mark feedback %s processed: %w", feedbackID, err)
	}
	return nil
}
