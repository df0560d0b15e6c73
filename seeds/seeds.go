package seeds

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Setup loads the canonical tag vocabulary and a demo account with a
// small starter wardrobe.
func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("[seed] inserting canonical tags")
	if err := seedCanonicalTags(ctx, pool); err != nil {
		return fmt.Errorf("seed canonical tags: %w", err)
	}

	log.Println("[seed] inserting demo account")
	if err := seedDemoAccount(ctx, pool); err != nil {
		return fmt.Errorf("seed demo account: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedCanonicalTags(ctx context.Context, pool *pgxpool.Pool) error {
	canonical := []struct {
		name     string
		category string
		synonyms []string
	}{
		{"t-shirt", "tops", []string{"tee", "t shirt", "tshirt"}},
		{"shirt", "tops", []string{"button-up", "button down", "dress shirt"}},
		{"sweater", "tops", []string{"jumper", "pullover", "knit"}},
		{"hoodie", "tops", []string{"hooded sweatshirt", "sweatshirt"}},
		{"jeans", "bottoms", []string{"denim", "denim pants"}},
		{"chinos", "bottoms", []string{"khakis", "slacks"}},
		{"shorts", "bottoms", []string{"short pants"}},
		{"skirt", "bottoms", []string{"mini skirt", "midi skirt"}},
		{"dress", "dresses", []string{"gown", "sundress"}},
		{"jacket", "outerwear", []string{"coat", "windbreaker"}},
		{"blazer", "outerwear", []string{"sport coat", "suit jacket"}},
		{"sneakers", "shoes", []string{"trainers", "tennis shoes", "kicks"}},
		{"boots", "shoes", []string{"ankle boots", "chelsea boots"}},
		{"sandals", "shoes", []string{"flip flops", "slides"}},
		{"casual", "", []string{"everyday", "relaxed"}},
		{"formal", "", []string{"dressy", "elegant"}},
		{"athletic", "", []string{"sporty", "gym", "workout"}},
		{"vintage", "", []string{"retro", "classic"}},
	}

	rows := []string{}
	args := []any{}
	for i, t := range canonical {
		base := i * 3
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, t.name, t.category, t.synonyms)
	}

	query := "INSERT INTO canonical_tags (name, category, synonyms) VALUES " +
		strings.Join(rows, ", ") + " ON CONFLICT (name) DO NOTHING"
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedDemoAccount(ctx context.Context, pool *pgxpool.Pool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	userID := uuid.New()
	err = pool.QueryRow(ctx,
		`INSERT INTO users (user_id, email, name, password_hash, email_verified, is_active)
		 VALUES ($1, $2, $3, $4, TRUE, TRUE)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING user_id`,
		userID, "demo@wearly.app", "Demo User", string(hash),
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Println("[seed] demo user already exists, skipping wardrobe")
			return nil
		}
		return fmt.Errorf("insert demo user: %w", err)
	}

	items := []struct {
		name        string
		category    string
		color       string
		season      string
		description string
	}{
		{"White Tee", "tops", "white", "all_season", "plain white cotton t-shirt, crew neck"},
		{"Blue Oxford Shirt", "tops", "blue", "all_season", "light blue oxford button-up, slim fit"},
		{"Grey Hoodie", "tops", "grey", "fall", "heather grey pullover hoodie"},
		{"Dark Jeans", "bottoms", "navy", "all_season", "dark wash slim jeans"},
		{"Beige Chinos", "bottoms", "beige", "all_season", "beige cotton chinos, straight cut"},
		{"Black Blazer", "outerwear", "black", "all_season", "black single-breasted blazer"},
		{"White Sneakers", "shoes", "white", "all_season", "minimal white leather sneakers"},
		{"Brown Boots", "shoes", "brown", "winter", "brown leather chelsea boots"},
	}

	now := time.Now().UTC()
	for _, item := range items {
		itemID := uuid.New()
		_, err := pool.Exec(ctx,
			`INSERT INTO clothing_items
			 (item_id, user_id, name, category, color, season, cv_description,
			  image_path, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9, $9)`,
			itemID, userID, item.name, item.category, item.color, item.season,
			item.description, "items/"+itemID.String()+".jpg", now,
		)
		if err != nil {
			return fmt.Errorf("insert demo item %q: %w", item.name, err)
		}
	}
	return nil
}
