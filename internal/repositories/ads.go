package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/adpulse/ingestor/internal/models"
)

// UpsertAdCreatives performs a batch upsert keyed by (brand_id, archive_id).
// Re-ingesting the same ad overwrites the stored row; the incoming values win.
func UpsertAdCreatives(ctx context.Context, db *bun.DB, ads []*models.AdCreative) error {
	if len(ads) == 0 {
		return nil
	}

	_, err := db.NewInsert().
		Model(&ads).
		On("CONFLICT (brand_id, archive_id) DO UPDATE").
		Set("source = EXCLUDED.source").
		Set("library_url = EXCLUDED.library_url").
		Set("page_id = EXCLUDED.page_id").
		Set("page_name = EXCLUDED.page_name").
		Set("start_date = EXCLUDED.start_date").
		Set("end_date = EXCLUDED.end_date").
		Set("link_url = EXCLUDED.link_url").
		Set("caption = EXCLUDED.caption").
		Set("title = EXCLUDED.title").
		Set("cta_text = EXCLUDED.cta_text").
		Set("media_type = EXCLUDED.media_type").
		Set("thumbnail_url = EXCLUDED.thumbnail_url").
		Set("media_url = EXCLUDED.media_url").
		Set("reach = EXCLUDED.reach").
		Set("page_likes = EXCLUDED.page_likes").
		Set("platforms = EXCLUDED.platforms").
		Set("categories = EXCLUDED.categories").
		Set("updated_at = CURRENT_TIMESTAMP").
		Exec(ctx)

	return err
}

// ListAdCreativesByBrand returns all stored creatives for a brand ordered by
// start date.
func ListAdCreativesByBrand(ctx context.Context, db *bun.DB, brandID int64) ([]*models.AdCreative, error) {
	var ads []*models.AdCreative
	err := db.NewSelect().
		Model(&ads).
		Where("brand_id = ?", brandID).
		Order("start_date ASC").
		Scan(ctx)
	return ads, err
}

// CountAdCreativesByBrand returns the exact number of stored creatives for a
// brand. Used to verify writes instead of trusting upsert row counts, which
// no-op on unchanged rows.
func CountAdCreativesByBrand(ctx context.Context, db *bun.DB, brandID int64) (int, error) {
	return db.NewSelect().
		Model((*models.AdCreative)(nil)).
		Where("brand_id = ?", brandID).
		Count(ctx)
}
