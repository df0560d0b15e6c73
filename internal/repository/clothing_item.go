package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wearly/stylist-service/internal/domain"
)

const itemColumns = `item_id, user_id, name, category, subcategory, color, secondary_color,
	image_path, thumbnail_path, cv_confidence, cv_metadata, cv_description,
	season, brand, purchase_date, price, is_favorite, wear_count, last_worn,
	is_active, is_dirty, deleted_at, created_at, updated_at`

func (r *Repository) InsertItem(ctx context.Context, item *domain.ClothingItem) error {
	metadata, err := json.Marshal(item.CVMetadata)
	if err != nil {
		return fmt.Errorf("encode cv metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO clothing_items
		 (item_id, user_id, name, category, subcategory, color, secondary_color,
		  image_path, thumbnail_path, cv_confidence, cv_metadata, cv_description,
		  season, brand, purchase_date, price, is_favorite, wear_count, last_worn,
		  is_active, is_dirty, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		         $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $22)`,
		item.ID, item.UserID, item.Name, item.Category, item.Subcategory,
		item.Color, item.SecondaryColor, item.ImagePath, item.ThumbnailPath,
		item.CVConfidence, metadata, item.CVDescription, item.Season, item.Brand,
		item.PurchaseDate, item.Price, item.IsFavorite, item.WearCount,
		item.LastWorn, item.IsActive, item.IsDirty, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert clothing item %s: %w", item.ID, err)
	}
	return nil
}

// GetItem returns one of the user's items; soft-deleted rows read as
// missing. Tags are loaded alongside.
func (r *Repository) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+itemColumns+`
		 FROM clothing_items
		 WHERE item_id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		itemID, userID,
	)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query clothing item %s: %w", itemID, err)
	}

	tags, err := r.ListTags(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Tags = tags
	return item, nil
}

// ListItems returns the user's active wardrobe under the given filter,
// newest first. Color matches primary or secondary; search runs over name,
// category, subcategory and tag text.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]domain.ClothingItem, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT DISTINCT ci.item_id, ci.user_id, ci.name, ci.category, ci.subcategory,
		ci.color, ci.secondary_color, ci.image_path, ci.thumbnail_path,
		ci.cv_confidence, ci.cv_metadata, ci.cv_description, ci.season, ci.brand,
		ci.purchase_date, ci.price, ci.is_favorite, ci.wear_count, ci.last_worn,
		ci.is_active, ci.is_dirty, ci.deleted_at, ci.created_at, ci.updated_at
		FROM clothing_items ci`)

	args := []any{userID}
	if filter.Search != "" {
		sb.WriteString(` LEFT JOIN tags t ON t.item_id = ci.item_id`)
	}
	sb.WriteString(` WHERE ci.user_id = $1 AND ci.deleted_at IS NULL AND ci.is_active`)

	if filter.Category != "" {
		args = append(args, filter.Category)
		fmt.Fprintf(&sb, ` AND ci.category = $%d`, len(args))
	}
	if filter.Color != "" {
		args = append(args, filter.Color)
		fmt.Fprintf(&sb, ` AND (ci.color = $%d OR ci.secondary_color = $%d)`, len(args), len(args))
	}
	if filter.Season != "" {
		args = append(args, filter.Season)
		fmt.Fprintf(&sb, ` AND ci.season = $%d`, len(args))
	}
	if filter.FavoritesOnly {
		sb.WriteString(` AND ci.is_favorite`)
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := len(args)
		fmt.Fprintf(&sb,
			` AND (ci.name ILIKE $%d OR ci.category ILIKE $%d OR ci.subcategory ILIKE $%d OR t.tag LIKE $%d)`,
			n, n, n, n)
	}

	sb.WriteString(` ORDER BY ci.created_at DESC`)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query wardrobe for user %s: %w", userID, err)
	}
	defer rows.Close()

	var items []domain.ClothingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan clothing item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clothing items: %w", err)
	}
	return items, nil
}

func (r *Repository) UpdateItem(ctx context.Context, item *domain.ClothingItem) error {
	metadata, err := json.Marshal(item.CVMetadata)
	if err != nil {
		return fmt.Errorf("encode cv metadata: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE clothing_items
		 SET name = $3, category = $4, subcategory = $5, color = $6, secondary_color = $7,
		     cv_confidence = $8, cv_metadata = $9, cv_description = $10,
		     season = $11, brand = $12, purchase_date = $13, price = $14,
		     is_dirty = $15, updated_at = now()
		 WHERE item_id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		item.ID, item.UserID, item.Name, item.Category, item.Subcategory,
		item.Color, item.SecondaryColor, item.CVConfidence, metadata,
		item.CVDescription, item.Season, item.Brand, item.PurchaseDate,
		item.Price, item.IsDirty,
	)
	if err != nil {
		return fmt.Errorf("update clothing item %s: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// SoftDeleteItem stamps deleted_at instead of removing the row.
func (r *Repository) SoftDeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clothing_items
		 SET deleted_at = now(), is_active = FALSE, updated_at = now()
		 WHERE item_id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("soft delete clothing item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *Repository) RestoreItem(ctx context.Context, userID, itemID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clothing_items
		 SET deleted_at = NULL, is_active = TRUE, updated_at = now()
		 WHERE item_id = $1 AND user_id = $2 AND deleted_at IS NOT NULL`,
		itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("restore clothing item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// ToggleFavorite flips the flag and returns the new state.
func (r *Repository) ToggleFavorite(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	var favorite bool
	err := r.pool.QueryRow(ctx,
		`UPDATE clothing_items
		 SET is_favorite = NOT is_favorite, updated_at = now()
		 WHERE item_id = $1 AND user_id = $2 AND deleted_at IS NULL
		 RETURNING is_favorite`,
		itemID, userID,
	).Scan(&favorite)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrItemNotFound
		}
		return false, fmt.Errorf("toggle favorite on item %s: %w", itemID, err)
	}
	return favorite, nil
}

// MarkWorn bumps the wear counter and stamps last_worn; returns the new
// count.
func (r *Repository) MarkWorn(ctx context.Context, userID, itemID uuid.UUID, wornAt time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`UPDATE clothing_items
		 SET wear_count = wear_count + 1, last_worn = $3, updated_at = now()
		 WHERE item_id = $1 AND user_id = $2 AND deleted_at IS NULL
		 RETURNING wear_count`,
		itemID, userID, wornAt,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrItemNotFound
		}
		return 0, fmt.Errorf("mark item %s worn: %w", itemID, err)
	}
	return count, nil
}

// WardrobeStats aggregates the dashboard counters for one user.
func (r *Repository) WardrobeStats(ctx context.Context, userID uuid.UUID) (*domain.WardrobeStats, error) {
	stats := &domain.WardrobeStats{
		ByCategory: make(map[string]int),
		ByColor:    make(map[string]int),
	}

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE is_favorite),
		        COALESCE(SUM(wear_count), 0),
		        COUNT(*) FILTER (WHERE wear_count = 0)
		 FROM clothing_items
		 WHERE user_id = $1 AND deleted_at IS NULL AND is_active`,
		userID,
	).Scan(&stats.TotalItems, &stats.Favorites, &stats.TotalWears, &stats.NeverWorn)
	if err != nil {
		return nil, fmt.Errorf("count wardrobe for user %s: %w", userID, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT category, color, COUNT(*)
		 FROM clothing_items
		 WHERE user_id = $1 AND deleted_at IS NULL AND is_active
		 GROUP BY category, color`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("group wardrobe for user %s: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, color string
		var n int
		if err := rows.Scan(&category, &color, &n); err != nil {
			return nil, fmt.Errorf("scan wardrobe group: %w", err)
		}
		stats.ByCategory[category] += n
		stats.ByColor[color] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wardrobe groups: %w", err)
	}
	return stats, nil
}

// SearchSuggestions returns distinct item names and tags matching a prefix,
// for the search box's typeahead.
func (r *Repository) SearchSuggestions(ctx context.Context, userID uuid.UUID, prefix string, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT suggestion FROM (
		   SELECT name AS suggestion FROM clothing_items
		   WHERE user_id = $1 AND deleted_at IS NULL AND name ILIKE $2
		   UNION
		   SELECT t.tag FROM tags t
		   JOIN clothing_items ci ON ci.item_id = t.item_id
		   WHERE ci.user_id = $1 AND ci.deleted_at IS NULL AND t.tag LIKE $3
		 ) s
		 ORDER BY suggestion
		 LIMIT $4`,
		userID, prefix+"%", strings.ToLower(prefix)+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query search suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan search suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search suggestions: %w", err)
	}
	return suggestions, nil
}

// ItemsWithDescriptions returns the user's active items that carry a CV
// description; these are the only ones the stylist prompt can reason about.
func (r *Repository) ItemsWithDescriptions(ctx context.Context, userID uuid.UUID) ([]domain.ClothingItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+`
		 FROM clothing_items
		 WHERE user_id = $1 AND deleted_at IS NULL AND is_active AND cv_description <> ''
		 ORDER BY is_favorite DESC, wear_count DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query describable items for user %s: %w", userID, err)
	}
	defer rows.Close()

	var items []domain.ClothingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan clothing item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate describable items: %w", err)
	}
	return items, nil
}

func scanItem(row pgx.Row) (*domain.ClothingItem, error) {
	item := &domain.ClothingItem{}
	var metadata []byte

	err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Category,
		&item.Subcategory, &item.Color, &item.SecondaryColor, &item.ImagePath,
		&item.ThumbnailPath, &item.CVConfidence, &metadata, &item.CVDescription,
		&item.Season, &item.Brand, &item.PurchaseDate, &item.Price,
		&item.IsFavorite, &item.WearCount, &item.LastWorn, &item.IsActive,
		&item.IsDirty, &item.DeletedAt, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &item.CVMetadata); err != nil {
			return nil, fmt.Errorf("decode cv metadata: %w", err)
		}
	}
	return item, nil
}
