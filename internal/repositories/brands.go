package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/adpulse/ingestor/internal/models"
)

// FindBrandByLibraryURL fetches a brand by its library URL. Returns nil when
// no brand exists for the URL.
func FindBrandByLibraryURL(ctx context.Context, db *bun.DB, libraryURL string) (*models.Brand, error) {
	brand := new(models.Brand)
	err := db.NewSelect().
		Model(brand).
		Where("library_url = ?", libraryURL).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return brand, nil
}

// GetBrand fetches a brand by id.
func GetBrand(ctx context.Context, db *bun.DB, id int64) (*models.Brand, error) {
	brand := new(models.Brand)
	err := db.NewSelect().Model(brand).Where("b.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return brand, nil
}

// ListBrands returns all brands ordered by name.
func ListBrands(ctx context.Context, db *bun.DB) ([]*models.Brand, error) {
	var brands []*models.Brand
	err := db.NewSelect().Model(&brands).Order("name ASC").Scan(ctx)
	return brands, err
}

// ResolveBrand finds-or-creates a brand keyed by library URL and keeps its
// display name, active flag and business link current. Calling it twice with
// the same URL converges to a single row. An empty name keeps the stored name
// on existing brands and falls back to a placeholder on creation, so a
// name-less refresh never demotes a previously derived name.
func ResolveBrand(ctx context.Context, db *bun.DB, libraryURL, name string, businessID int64) (*models.Brand, error) {
	name = models.ClampBrandName(name)

	existing, err := FindBrandByLibraryURL(ctx, db, libraryURL)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if name != "" {
			existing.Name = name
		}
		existing.Active = true
		existing.BusinessID = businessID
		_, err := db.NewUpdate().
			Model(existing).
			Column("name", "active", "business_id", "updated_at").
			WherePK().
			Exec(ctx)
		return existing, err
	}

	if name == "" {
		name = "Unknown Brand"
	}
	brand := &models.Brand{
		LibraryURL:      libraryURL,
		Name:            name,
		Active:          true,
		BusinessID:      businessID,
		LastFetchStatus: models.FetchPending,
	}
	if err := brand.Validate(); err != nil {
		return nil, err
	}
	_, err = db.NewInsert().Model(brand).Exec(ctx)
	return brand, err
}

// UpdateBrandFetchStatus records the outcome of an ingestion run on the brand
// row. A nil fetchErr clears any stored error message.
func UpdateBrandFetchStatus(ctx context.Context, db *bun.DB, brandID int64, status models.FetchStatus, fetchErr *string, fetchedAt *time.Time) error {
	q := db.NewUpdate().
		Model((*models.Brand)(nil)).
		Set("last_fetch_status = ?", status).
		Set("last_fetch_error = ?", fetchErr).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("id = ?", brandID)

	if fetchedAt != nil {
		q = q.Set("last_fetched_at = ?", fetchedAt)
	}

	_, err := q.Exec(ctx)
	return err
}
