package summary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/adpulse/ingestor/internal/database"
	"github.com/adpulse/ingestor/internal/models"
	"github.com/adpulse/ingestor/internal/repositories"
)

func setupDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.New(dsn, false)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	for _, model := range []interface{}{
		(*models.Brand)(nil),
		(*models.AdCreative)(nil),
		(*models.CreativeSummary)(nil),
		(*models.FunnelSummary)(nil),
	} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}

func seedBrand(t *testing.T, db *bun.DB, libraryURL, name string) *models.Brand {
	t.Helper()
	brand, err := repositories.ResolveBrand(context.Background(), db, libraryURL, name, 1)
	if err != nil {
		t.Fatalf("resolve brand: %v", err)
	}
	return brand
}

func seedAd(t *testing.T, db *bun.DB, brandID int64, archiveID string, start time.Time, end *time.Time, link *string) {
	t.Helper()
	ad := &models.AdCreative{
		BrandID:    brandID,
		ArchiveID:  archiveID,
		Source:     models.SourceScrapeCreators,
		LibraryURL: "https://www.facebook.com/ads/library/?view_all_page_id=1",
		PageID:     "1",
		StartDate:  start,
		EndDate:    end,
		LinkURL:    link,
	}
	if err := repositories.UpsertAdCreatives(context.Background(), db, []*models.AdCreative{ad}); err != nil {
		t.Fatalf("seed ad: %v", err)
	}
}

func strp(s string) *string { return &s }

func timep(t time.Time) *time.Time { return &t }

func TestRebuildGroupsCreativesByMonth(t *testing.T) {
	db := setupDB(t)
	brand := seedBrand(t, db, "https://www.facebook.com/ads/library/?view_all_page_id=1", "Acme")

	jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	jan20 := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	feb05 := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	seedAd(t, db, brand.ID, "ad-1", jan10, timep(jan10.AddDate(0, 0, 5)), nil)
	seedAd(t, db, brand.ID, "ad-2", jan20, timep(jan20.AddDate(0, 0, 10)), nil)
	seedAd(t, db, brand.ID, "ad-3", feb05, timep(feb05.AddDate(0, 0, 3)), nil)

	engine := NewEngine(db)
	engine.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

	counts, err := engine.Rebuild(context.Background(), &brand.ID)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if counts.CreativeCount != 2 {
		t.Fatalf("expected 2 creative summary rows, got %d", counts.CreativeCount)
	}

	rows, err := repositories.ListCreativeSummaries(context.Background(), db, brand.ID)
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	jan := rows[0]
	if jan.Month.UTC().Month() != time.January || jan.Month.UTC().Day() != 1 {
		t.Fatalf("expected january month floor, got %v", jan.Month)
	}
	if jan.CreativesCount != 2 {
		t.Fatalf("expected 2 creatives in january, got %d", jan.CreativesCount)
	}
	if jan.ActiveDaysTotal != 15 {
		t.Fatalf("expected 15 active days in january, got %d", jan.ActiveDaysTotal)
	}
	if jan.BrandName != "Acme" {
		t.Fatalf("unexpected brand name: %s", jan.BrandName)
	}

	feb := rows[1]
	if feb.Month.UTC().Month() != time.February {
		t.Fatalf("expected february row, got %v", feb.Month)
	}
	if feb.CreativesCount != 1 || feb.ActiveDaysTotal != 3 {
		t.Fatalf("unexpected february row: %d creatives, %d days", feb.CreativesCount, feb.ActiveDaysTotal)
	}
}

func TestRebuildRunningAdUsesNow(t *testing.T) {
	db := setupDB(t)
	brand := seedBrand(t, db, "https://www.facebook.com/ads/library/?view_all_page_id=2", "Acme")

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	seedAd(t, db, brand.ID, "running", start, nil, nil)

	engine := NewEngine(db)
	engine.now = func() time.Time { return start.AddDate(0, 0, 12) }

	if _, err := engine.Rebuild(context.Background(), &brand.ID); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	rows, err := repositories.ListCreativeSummaries(context.Background(), db, brand.ID)
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	if len(rows) != 1 || rows[0].ActiveDaysTotal != 12 {
		t.Fatalf("expected 12 active days for running ad, got %+v", rows)
	}
}

func TestRebuildFunnelSkipsLinklessRows(t *testing.T) {
	db := setupDB(t)
	brand := seedBrand(t, db, "https://www.facebook.com/ads/library/?view_all_page_id=3", "Acme")

	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	seedAd(t, db, brand.ID, "with-link-1", feb, nil, strp("https://example.com/product-1"))
	seedAd(t, db, brand.ID, "with-link-2", feb, nil, strp("https://example.com/product-1"))
	seedAd(t, db, brand.ID, "app-ad", feb, nil, strp("https://apps.apple.com/app/id9"))
	seedAd(t, db, brand.ID, "no-link", feb, nil, nil)

	engine := NewEngine(db)
	counts, err := engine.Rebuild(context.Background(), &brand.ID)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if counts.FunnelCount != 2 {
		t.Fatalf("expected 2 funnel rows, got %d", counts.FunnelCount)
	}

	rows, err := repositories.ListFunnelSummaries(context.Background(), db, brand.ID)
	if err != nil {
		t.Fatalf("list funnels: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Busiest destination first within the month.
	if rows[0].LinkURL != "https://example.com/product-1" || rows[0].CreativesCount != 2 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[0].FunnelType != models.FunnelLandingPage {
		t.Fatalf("unexpected funnel type: %s", rows[0].FunnelType)
	}
	if rows[1].FunnelType != models.FunnelAppStore {
		t.Fatalf("unexpected funnel type for app ad: %s", rows[1].FunnelType)
	}
	if rows[1].Domain != "apps.apple.com" {
		t.Fatalf("unexpected domain: %s", rows[1].Domain)
	}

	// Creative summary still counts the link-less row.
	creatives, err := repositories.ListCreativeSummaries(context.Background(), db, brand.ID)
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	if len(creatives) != 1 || creatives[0].CreativesCount != 4 {
		t.Fatalf("expected all 4 creatives counted, got %+v", creatives)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	db := setupDB(t)
	brand := seedBrand(t, db, "https://www.facebook.com/ads/library/?view_all_page_id=4", "Acme")

	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	seedAd(t, db, brand.ID, "ad-1", feb, timep(feb.AddDate(0, 0, 4)), strp("https://example.com/p"))

	engine := NewEngine(db)
	engine.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

	for i := 0; i < 3; i++ {
		if _, err := engine.Rebuild(context.Background(), &brand.ID); err != nil {
			t.Fatalf("rebuild %d: %v", i, err)
		}
	}

	creatives, err := repositories.ListCreativeSummaries(context.Background(), db, brand.ID)
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	funnels, err := repositories.ListFunnelSummaries(context.Background(), db, brand.ID)
	if err != nil {
		t.Fatalf("list funnels: %v", err)
	}
	if len(creatives) != 1 || len(funnels) != 1 {
		t.Fatalf("expected single rows after repeated rebuilds, got %d creative, %d funnel", len(creatives), len(funnels))
	}
	if creatives[0].CreativesCount != 1 || creatives[0].ActiveDaysTotal != 4 {
		t.Fatalf("unexpected creative row: %+v", creatives[0])
	}
}

func TestRebuildAllBrands(t *testing.T) {
	db := setupDB(t)
	first := seedBrand(t, db, "https://www.facebook.com/ads/library/?view_all_page_id=5", "Acme")
	second := seedBrand(t, db, "https://www.facebook.com/ads/library/?view_all_page_id=6", "Globex")

	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	seedAd(t, db, first.ID, "a-1", feb, nil, nil)
	seedAd(t, db, second.ID, "g-1", feb, nil, nil)
	seedAd(t, db, second.ID, "g-2", feb.AddDate(0, 1, 0), nil, nil)

	engine := NewEngine(db)
	counts, err := engine.Rebuild(context.Background(), nil)
	if err != nil {
		t.Fatalf("rebuild all: %v", err)
	}
	if counts.CreativeCount != 3 {
		t.Fatalf("expected 3 creative summary rows across brands, got %d", counts.CreativeCount)
	}
}
