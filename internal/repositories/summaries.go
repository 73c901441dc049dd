package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/adpulse/ingestor/internal/models"
)

// UpsertCreativeSummaries overwrites monthly creative-volume aggregates keyed
// by (brand_id, month).
func UpsertCreativeSummaries(ctx context.Context, db *bun.DB, rows []*models.CreativeSummary) error {
	if len(rows) == 0 {
		return nil
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (brand_id, month) DO UPDATE").
		Set("brand_name = EXCLUDED.brand_name").
		Set("creatives_count = EXCLUDED.creatives_count").
		Set("active_days_total = EXCLUDED.active_days_total").
		Set("library_url = EXCLUDED.library_url").
		Exec(ctx)

	return err
}

// UpsertFunnelSummaries overwrites monthly destination-URL aggregates keyed
// by (brand_id, link_url, month).
func UpsertFunnelSummaries(ctx context.Context, db *bun.DB, rows []*models.FunnelSummary) error {
	if len(rows) == 0 {
		return nil
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (brand_id, link_url, month) DO UPDATE").
		Set("brand_name = EXCLUDED.brand_name").
		Set("domain = EXCLUDED.domain").
		Set("path = EXCLUDED.path").
		Set("funnel_type = EXCLUDED.funnel_type").
		Set("creatives_count = EXCLUDED.creatives_count").
		Set("library_url = EXCLUDED.library_url").
		Exec(ctx)

	return err
}

// ListCreativeSummaries returns a brand's monthly creative aggregates in
// chronological order.
func ListCreativeSummaries(ctx context.Context, db *bun.DB, brandID int64) ([]*models.CreativeSummary, error) {
	var rows []*models.CreativeSummary
	err := db.NewSelect().
		Model(&rows).
		Where("brand_id = ?", brandID).
		Order("month ASC").
		Scan(ctx)
	return rows, err
}

// ListFunnelSummaries returns a brand's monthly funnel aggregates, busiest
// destinations first within each month.
func ListFunnelSummaries(ctx context.Context, db *bun.DB, brandID int64) ([]*models.FunnelSummary, error) {
	var rows []*models.FunnelSummary
	err := db.NewSelect().
		Model(&rows).
		Where("brand_id = ?", brandID).
		Order("month ASC").
		OrderExpr("creatives_count DESC").
		Scan(ctx)
	return rows, err
}
