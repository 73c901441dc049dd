package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CreativeSummary is a monthly creative-volume aggregate per brand, fully
// recomputed from current AdCreative rows on every refresh.
type CreativeSummary struct {
	bun.BaseModel `bun:"table:creative_summaries,alias:cs"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	BrandID         int64     `bun:"brand_id,notnull,unique:brand_month" json:"brand_id"`
	Month           time.Time `bun:"month,notnull,unique:brand_month" json:"month"`
	BrandName       string    `bun:"brand_name,notnull" json:"brand_name"`
	CreativesCount  int       `bun:"creatives_count,notnull" json:"creatives_count"`
	ActiveDaysTotal int       `bun:"active_days_total,notnull" json:"active_days_total"`
	LibraryURL      string    `bun:"library_url,notnull" json:"library_url"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Brand *Brand `bun:"rel:belongs-to,join:brand_id=id" json:"-"`
}

// FunnelSummary is a monthly per-destination-URL aggregate per brand with a
// heuristic funnel classification of the URL.
type FunnelSummary struct {
	bun.BaseModel `bun:"table:funnel_summaries,alias:fs"`

	ID             int64      `bun:"id,pk,autoincrement" json:"id"`
	BrandID        int64      `bun:"brand_id,notnull,unique:brand_url_month" json:"brand_id"`
	LinkURL        string     `bun:"link_url,notnull,unique:brand_url_month" json:"link_url"`
	Month          time.Time  `bun:"month,notnull,unique:brand_url_month" json:"month"`
	BrandName      string     `bun:"brand_name,notnull" json:"brand_name"`
	Domain         string     `bun:"domain,notnull" json:"domain"`
	Path           *string    `bun:"path" json:"path,omitempty"`
	FunnelType     FunnelType `bun:"funnel_type,notnull" json:"funnel_type"`
	CreativesCount int        `bun:"creatives_count,notnull" json:"creatives_count"`
	LibraryURL     string     `bun:"library_url,notnull" json:"library_url"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Brand *Brand `bun:"rel:belongs-to,join:brand_id=id" json:"-"`
}
