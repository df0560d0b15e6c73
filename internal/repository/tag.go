package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wearly/stylist-service/internal/domain"
)

// AddTags inserts tags on an item, normalizing text and skipping
// duplicates the item already carries.
func (r *Repository) AddTags(ctx context.Context, tags []domain.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range tags {
		text := domain.NormalizeTag(t.Tag)
		if text == "" {
			continue
		}
		batch.Queue(
			`INSERT INTO tags (tag_id, item_id, tag, source, confidence, created_at)
			 VALUES ($1, $2, $3, $4, $5, now())
			 ON CONFLICT (item_id, tag) DO NOTHING`,
			t.ID, t.ItemID, text, t.Source, t.Confidence,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert tag: %w", err)
		}
	}
	return nil
}

func (r *Repository) ListTags(ctx context.Context, itemID uuid.UUID) ([]domain.Tag, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT tag_id, item_id, tag, source, confidence, created_at
		 FROM tags WHERE item_id = $1 ORDER BY tag`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tags for item %s: %w", itemID, err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.ItemID, &t.Tag, &t.Source, &t.Confidence, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes one tag from an item by its normalized text.
func (r *Repository) DeleteTag(ctx context.Context, itemID uuid.UUID, tag string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM tags WHERE item_id = $1 AND tag = $2`,
		itemID, domain.NormalizeTag(tag),
	)
	if err != nil {
		return fmt.Errorf("delete tag %q from item %s: %w", tag, itemID, err)
	}
	return nil
}

// ReplaceTags swaps an item's tags from one source for a new set. The CV
// pipeline uses this so re-analysis does not stack stale labels.
func (r *Repository) ReplaceTags(ctx context.Context, itemID uuid.UUID, source string, tags []domain.Tag) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM tags WHERE item_id = $1 AND source = $2`,
		itemID, source,
	)
	if err != nil {
		return fmt.Errorf("clear %s tags on item %s: %w", source, itemID, err)
	}
	return r.AddTags(ctx, tags)
}

// ListCanonicalTags returns the active canonical vocabulary with synonyms.
func (r *Repository) ListCanonicalTags(ctx context.Context) ([]domain.CanonicalTag, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, category, synonyms, is_active, created_at
		 FROM canonical_tags WHERE is_active ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("query canonical tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.CanonicalTag
	for rows.Next() {
		var t domain.CanonicalTag
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Synonyms, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan canonical tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate canonical tags: %w", err)
	}
	return tags, nil
}
