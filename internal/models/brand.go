package models

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// MaxBrandNameLen caps stored brand display names.
const MaxBrandNameLen = 120

// Brand is a tracked competitor ad-source, identified externally by its
// ad-library URL. At most one Brand exists per library URL.
type Brand struct {
	bun.BaseModel `bun:"table:brands,alias:b"`

	ID              int64       `bun:"id,pk,autoincrement" json:"id"`
	LibraryURL      string      `bun:"library_url,unique,notnull" json:"library_url"`
	Name            string      `bun:"name,notnull" json:"name"`
	Active          bool        `bun:"active,notnull" json:"active"`
	BusinessID      int64       `bun:"business_id,notnull" json:"business_id"`
	LastFetchedAt   *time.Time  `bun:"last_fetched_at" json:"last_fetched_at,omitempty"`
	LastFetchStatus FetchStatus `bun:"last_fetch_status,nullzero" json:"last_fetch_status,omitempty"`
	LastFetchError  *string     `bun:"last_fetch_error" json:"last_fetch_error,omitempty"`
	CreatedAt       time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time   `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Ads []*AdCreative `bun:"rel:has-many,join:id=brand_id" json:"-"`
}

// BeforeUpdate updates the timestamp on modifications.
func (b *Brand) BeforeUpdate(ctx context.Context, query *bun.UpdateQuery) error {
	b.UpdatedAt = time.Now()
	return nil
}

// Validate checks that required Brand fields are present.
func (b *Brand) Validate() error {
	if b.LibraryURL == "" {
		return errors.New("library URL is required")
	}
	if b.Name == "" {
		return errors.New("name is required")
	}
	if b.BusinessID <= 0 {
		return errors.New("business id is required")
	}
	return nil
}

// HadSuccessfulFetch reports whether the brand has ever completed an ingestion.
func (b *Brand) HadSuccessfulFetch() bool {
	return b.LastFetchedAt != nil && !b.LastFetchedAt.IsZero()
}

// ClampBrandName truncates a display name to the stored maximum.
func ClampBrandName(name string) string {
	if len(name) <= MaxBrandNameLen {
		return name
	}
	return name[:MaxBrandNameLen]
}
