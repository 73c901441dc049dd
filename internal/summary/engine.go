package summary

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/uptrace/bun"

	"github.com/adpulse/ingestor/internal/models"
	"github.com/adpulse/ingestor/internal/repositories"
)

// Counts reports how many aggregate rows a rebuild wrote.
type Counts struct {
	CreativeCount int `json:"creative_count"`
	FunnelCount   int `json:"funnel_count"`
}

// Engine recomputes both summary tables from current AdCreative rows. Every
// rebuild is a full rescan and upsert, so the end state is a pure function of
// the raw rows at read time regardless of how often it runs.
type Engine struct {
	db  *bun.DB
	now func() time.Time
}

// NewEngine creates an aggregation engine.
func NewEngine(db *bun.DB) *Engine {
	return &Engine{db: db, now: time.Now}
}

// Rebuild recomputes both summaries for one brand, or for every brand when
// brandID is nil (bulk backfill).
func (e *Engine) Rebuild(ctx context.Context, brandID *int64) (Counts, error) {
	brands, err := e.targetBrands(ctx, brandID)
	if err != nil {
		return Counts{}, err
	}

	var counts Counts
	for _, brand := range brands {
		ads, err := repositories.ListAdCreativesByBrand(ctx, e.db, brand.ID)
		if err != nil {
			return counts, fmt.Errorf("list creatives for brand %d: %w", brand.ID, err)
		}

		n, err := e.rebuildCreative(ctx, brand, ads)
		if err != nil {
			return counts, fmt.Errorf("creative summary for brand %d: %w", brand.ID, err)
		}
		counts.CreativeCount += n

		n, err = e.rebuildFunnel(ctx, brand, ads)
		if err != nil {
			return counts, fmt.Errorf("funnel summary for brand %d: %w", brand.ID, err)
		}
		counts.FunnelCount += n

		log.Printf("Rebuilt summaries for brand %d (%s): %d creatives scanned", brand.ID, brand.Name, len(ads))
	}

	return counts, nil
}

func (e *Engine) targetBrands(ctx context.Context, brandID *int64) ([]*models.Brand, error) {
	if brandID == nil {
		return repositories.ListBrands(ctx, e.db)
	}
	brand, err := repositories.GetBrand(ctx, e.db, *brandID)
	if err != nil {
		return nil, err
	}
	return []*models.Brand{brand}, nil
}

// rebuildCreative groups a brand's creatives by start month and upserts one
// row per month with the count and the summed active days.
func (e *Engine) rebuildCreative(ctx context.Context, brand *models.Brand, ads []*models.AdCreative) (int, error) {
	type bucket struct {
		count      int
		activeDays int
	}

	now := e.now()
	buckets := make(map[time.Time]*bucket)
	for _, ad := range ads {
		month := ad.MonthStart()
		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
		}
		b.count++
		b.activeDays += ad.ActiveDays(now)
	}

	months := make([]time.Time, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	rows := make([]*models.CreativeSummary, 0, len(months))
	for _, month := range months {
		b := buckets[month]
		rows = append(rows, &models.CreativeSummary{
			BrandID:         brand.ID,
			Month:           month,
			BrandName:       brand.Name,
			CreativesCount:  b.count,
			ActiveDaysTotal: b.activeDays,
			LibraryURL:      brand.LibraryURL,
		})
	}

	if err := repositories.UpsertCreativeSummaries(ctx, e.db, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// rebuildFunnel groups a brand's creatives by (destination URL, month),
// skipping rows with no link, and upserts one classified row per group.
func (e *Engine) rebuildFunnel(ctx context.Context, brand *models.Brand, ads []*models.AdCreative) (int, error) {
	type key struct {
		link  string
		month time.Time
	}

	counts := make(map[key]int)
	for _, ad := range ads {
		if !ad.HasLink() {
			continue
		}
		counts[key{link: *ad.LinkURL, month: ad.MonthStart()}]++
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].month.Equal(keys[j].month) {
			return keys[i].month.Before(keys[j].month)
		}
		return keys[i].link < keys[j].link
	})

	rows := make([]*models.FunnelSummary, 0, len(keys))
	for _, k := range keys {
		c := ClassifyLink(k.link)
		rows = append(rows, &models.FunnelSummary{
			BrandID:        brand.ID,
			LinkURL:        k.link,
			Month:          k.month,
			BrandName:      brand.Name,
			Domain:         c.Domain,
			Path:           c.Path,
			FunnelType:     c.Type,
			CreativesCount: counts[k],
			LibraryURL:     brand.LibraryURL,
		})
	}

	if err := repositories.UpsertFunnelSummaries(ctx, e.db, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
