package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/adpulse/ingestor/internal/models"
)

var Migrations = migrate.NewMigrations()

func init() {
	// Migration 1: create tables
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		modelsList := []interface{}{
			(*models.Brand)(nil),
			(*models.AdCreative)(nil),
			(*models.CreativeSummary)(nil),
			(*models.FunnelSummary)(nil),
		}

		for _, model := range modelsList {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		modelsList := []interface{}{
			(*models.FunnelSummary)(nil),
			(*models.CreativeSummary)(nil),
			(*models.AdCreative)(nil),
			(*models.Brand)(nil),
		}

		for _, model := range modelsList {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	})

	// Migration 2: indexes
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_ad_creatives_brand ON ad_creatives(brand_id)",
			"CREATE INDEX IF NOT EXISTS idx_ad_creatives_start_date ON ad_creatives(start_date)",
			"CREATE INDEX IF NOT EXISTS idx_creative_summaries_brand_month ON creative_summaries(brand_id, month)",
			"CREATE INDEX IF NOT EXISTS idx_funnel_summaries_brand_month ON funnel_summaries(brand_id, month)",
			"CREATE INDEX IF NOT EXISTS idx_funnel_summaries_type ON funnel_summaries(funnel_type)",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"DROP INDEX IF EXISTS idx_ad_creatives_brand",
			"DROP INDEX IF EXISTS idx_ad_creatives_start_date",
			"DROP INDEX IF EXISTS idx_creative_summaries_brand_month",
			"DROP INDEX IF EXISTS idx_funnel_summaries_brand_month",
			"DROP INDEX IF EXISTS idx_funnel_summaries_type",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	})
}

// RunMigrations runs all pending migrations.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		fmt.Println("No new migrations to run")
		return nil
	}

	fmt.Printf("Migrated to %s\n", group)
	return nil
}
