package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/wearly/stylist-service/internal/domain"
	"github.com/wearly/stylist-service/internal/media"
	"github.com/wearly/stylist-service/internal/vision"
)

// AddItemInput carries a new wardrobe item plus its photo as a base64
// data URL.
type AddItemInput struct {
	Name     string
	Category string
	Color    string
	Season   string
	Brand    string
	Price    *float64
	Tags     []string
	ImageURL string
}

// AddItem stores the photo, runs vision analysis, and persists the item
// with merged manual and automatic attributes. The user's entries win over
// the vision output.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, in AddItemInput) (*domain.ClothingItem, error) {
	raw, ext, err := media.DecodeDataURL(in.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("decode item image: %w", err)
	}

	itemID := uuid.New()
	imagePath, thumbPath, err := s.media.SaveItemImage(itemID, raw, ext)
	if err != nil {
		return nil, err
	}

	item := &domain.ClothingItem{
		ID:            itemID,
		UserID:        userID,
		Name:          in.Name,
		Category:      in.Category,
		Color:         in.Color,
		Season:        in.Season,
		Brand:         in.Brand,
		Price:         in.Price,
		ImagePath:     imagePath,
		ThumbnailPath: thumbPath,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	if item.Season == "" {
		item.Season = "all_season"
	}

	analysis, err := s.vision.Analyze(ctx, base64.StdEncoding.EncodeToString(raw), in.Category)
	if err != nil {
		// Vision is best-effort; the item still lands in the wardrobe.
		log.Printf("[wardrobe] vision analysis for item %s failed: %v", itemID, err)
		analysis = nil
	} else {
		applyAnalysis(item, analysis)
	}

	if !domain.ValidCategory(item.Category) {
		item.Category = "other"
	}
	if !domain.ValidColor(item.Color) {
		item.Color = "other"
	}

	if err := s.repo.InsertItem(ctx, item); err != nil {
		if rmErr := s.media.Remove(imagePath, thumbPath); rmErr != nil {
			log.Printf("[wardrobe] cleanup after failed insert: %v", rmErr)
		}
		return nil, err
	}

	tags := userTags(itemID, in.Tags)
	if analysis != nil {
		tags = append(tags, cvTags(itemID, analysis)...)
	}
	if err := s.repo.AddTags(ctx, tags); err != nil {
		log.Printf("[wardrobe] tag insert for item %s: %v", itemID, err)
	}

	s.invalidateRecommendations(ctx, userID)
	return s.repo.GetItem(ctx, userID, itemID)
}

// cvConfidenceFloor is the minimum confidence before vision output is
// allowed to fill in classification fields the user left blank.
const cvConfidenceFloor = 0.5

// applyAnalysis fills gaps the user left blank when the analysis is
// confident enough, and always records the hidden description and
// metadata.
func applyAnalysis(item *domain.ClothingItem, a *vision.Analysis) {
	if a.Confidence >= cvConfidenceFloor {
		if item.Category == "" || item.Category == "other" {
			item.Category = a.Category
		}
		if item.Subcategory == "" {
			item.Subcategory = a.Subcategory
		}
		if (item.Color == "" || item.Color == "other") && a.Color != "" {
			item.Color = a.Color
		}
		if item.SecondaryColor == "" {
			item.SecondaryColor = a.Secondary
		}
	}
	item.CVDescription = a.Description
	if a.Confidence > 0 {
		confidence := a.Confidence
		item.CVConfidence = &confidence
	}
	if len(a.Raw) > 0 {
		item.CVMetadata = a.Raw
	}
}

func userTags(itemID uuid.UUID, tags []string) []domain.Tag {
	out := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, domain.Tag{
			ID:     uuid.New(),
			ItemID: itemID,
			Tag:    t,
			Source: domain.TagSourceUser,
		})
	}
	return out
}

// cvTags converts vision labels to tags, capped at 10 so a chatty model
// does not flood an item.
func cvTags(itemID uuid.UUID, a *vision.Analysis) []domain.Tag {
	labels := a.Labels
	if len(labels) > 10 {
		labels = labels[:10]
	}
	out := make([]domain.Tag, 0, len(labels))
	for _, label := range labels {
		confidence := a.Confidence
		out = append(out, domain.Tag{
			ID:         uuid.New(),
			ItemID:     itemID,
			Tag:        label,
			Source:     domain.TagSourceCV,
			Confidence: &confidence,
		})
	}
	return out
}

// UpdateItemInput carries editable item fields. Nil pointers leave the
// current value alone.
type UpdateItemInput struct {
	Name     *string
	Category *string
	Color    *string
	Season   *string
	Brand    *string
	Price    *float64
	Tags     []string
}

func (s *Service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, in UpdateItemInput) (*domain.ClothingItem, error) {
	item, err := s.repo.GetItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil && domain.ValidCategory(*in.Category) {
		item.Category = *in.Category
	}
	if in.Color != nil && domain.ValidColor(*in.Color) {
		item.Color = *in.Color
	}
	if in.Season != nil && domain.ValidSeason(*in.Season) {
		item.Season = *in.Season
	}
	if in.Brand != nil {
		item.Brand = *in.Brand
	}
	if in.Price != nil {
		item.Price = in.Price
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	if in.Tags != nil {
		if err := s.repo.ReplaceTags(ctx, itemID, domain.TagSourceUser, userTags(itemID, in.Tags)); err != nil {
			log.Printf("[wardrobe] tag replace for item %s: %v", itemID, err)
		}
	}

	s.invalidateRecommendations(ctx, userID)
	return s.repo.GetItem(ctx, userID, itemID)
}

func (s *Service) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error) {
	return s.repo.GetItem(ctx, userID, itemID)
}

func (s *Service) ListItems(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]domain.ClothingItem, error) {
	return s.repo.ListItems(ctx, userID, filter)
}

// DeleteItem soft-deletes; the image files stay on disk so a restore
// brings the item back intact.
func (s *Service) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.repo.SoftDeleteItem(ctx, userID, itemID); err != nil {
		return err
	}
	s.invalidateRecommendations(ctx, userID)
	return nil
}

func (s *Service) RestoreItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.repo.RestoreItem(ctx, userID, itemID); err != nil {
		return err
	}
	s.invalidateRecommendations(ctx, userID)
	return nil
}

func (s *Service) ToggleFavorite(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	return s.repo.ToggleFavorite(ctx, userID, itemID)
}

func (s *Service) MarkWorn(ctx context.Context, userID, itemID uuid.UUID) (int, error) {
	return s.repo.MarkWorn(ctx, userID, itemID, time.Now().UTC())
}

func (s *Service) WardrobeStats(ctx context.Context, userID uuid.UUID) (*domain.WardrobeStats, error) {
	return s.repo.WardrobeStats(ctx, userID)
}

func (s *Service) SearchSuggestions(ctx context.Context, userID uuid.UUID, prefix string, limit int) ([]string, error) {
	if limit <= 0 || limit > 20 {
		limit = 10
	}
	return s.repo.SearchSuggestions(ctx, userID, prefix, limit)
}

// invalidateRecommendations drops cached suggestion sets after any
// wardrobe change; failures only log since the cache expires anyway.
func (s *Service) invalidateRecommendations(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.ClearUserRecommendations(ctx, userID); err != nil {
		log.Printf("[wardrobe] cache invalidation for user %s: %v", userID, err)
	}
}
