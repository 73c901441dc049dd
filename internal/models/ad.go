package models

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// AdCreative is one normalized creative, the atomic unit of truth. The
// (brand_id, archive_id) pair is unique; repeated ingestion of the same ad
// overwrites the existing row instead of duplicating it.
type AdCreative struct {
	bun.BaseModel `bun:"table:ad_creatives,alias:a"`

	ID           int64       `bun:"id,pk,autoincrement" json:"id"`
	BrandID      int64       `bun:"brand_id,notnull,unique:brand_archive" json:"brand_id"`
	ArchiveID    string      `bun:"archive_id,notnull,unique:brand_archive" json:"archive_id"`
	Source       SourceTag   `bun:"source,notnull" json:"source"`
	LibraryURL   string      `bun:"library_url,notnull" json:"library_url"`
	PageID       string      `bun:"page_id,notnull" json:"page_id"`
	PageName     *string     `bun:"page_name" json:"page_name,omitempty"`
	StartDate    time.Time   `bun:"start_date,notnull" json:"start_date"`
	EndDate      *time.Time  `bun:"end_date" json:"end_date,omitempty"`
	LinkURL      *string     `bun:"link_url" json:"link_url,omitempty"`
	Caption      *string     `bun:"caption" json:"caption,omitempty"`
	Title        *string     `bun:"title" json:"title,omitempty"`
	CTAText      *string     `bun:"cta_text" json:"cta_text,omitempty"`
	MediaType    *MediaType  `bun:"media_type" json:"media_type,omitempty"`
	ThumbnailURL *string     `bun:"thumbnail_url" json:"thumbnail_url,omitempty"`
	MediaURL     *string     `bun:"media_url" json:"media_url,omitempty"`
	Reach        *int64      `bun:"reach" json:"reach,omitempty"`
	PageLikes    *int64      `bun:"page_likes" json:"page_likes,omitempty"`
	Platforms    StringArray `bun:"platforms,type:json" json:"platforms,omitempty"`
	Categories   StringArray `bun:"categories,type:json" json:"categories,omitempty"`
	CreatedAt    time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time   `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Brand *Brand `bun:"rel:belongs-to,join:brand_id=id" json:"-"`
}

// BeforeUpdate updates the timestamp on modifications.
func (a *AdCreative) BeforeUpdate(ctx context.Context, query *bun.UpdateQuery) error {
	a.UpdatedAt = time.Now()
	return nil
}

// Validate checks that required AdCreative fields are present.
func (a *AdCreative) Validate() error {
	if a.BrandID <= 0 {
		return errors.New("brand id is required")
	}
	if a.ArchiveID == "" {
		return errors.New("archive id is required")
	}
	if a.Source == "" {
		return errors.New("source is required")
	}
	if a.StartDate.IsZero() {
		return errors.New("start date is required")
	}
	return nil
}

// HasLink reports whether the creative carries a destination URL.
func (a *AdCreative) HasLink() bool {
	return a.LinkURL != nil && *a.LinkURL != ""
}

// MonthStart returns the first day of the creative's start month in UTC.
func (a *AdCreative) MonthStart() time.Time {
	y, m, _ := a.StartDate.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// ActiveDays returns whole days the creative has been running, using now
// for still-running ads. Never negative.
func (a *AdCreative) ActiveDays(now time.Time) int {
	end := now
	if a.EndDate != nil && !a.EndDate.IsZero() {
		end = *a.EndDate
	}
	days := int(end.Sub(a.StartDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
