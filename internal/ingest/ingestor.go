package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/adpulse/ingestor/internal/metrics"
	"github.com/adpulse/ingestor/internal/models"
	"github.com/adpulse/ingestor/internal/repositories"
	"github.com/adpulse/ingestor/internal/sources"
	"github.com/adpulse/ingestor/internal/summary"
)

// DefaultBatchSize bounds upsert payloads; batches carry no semantic meaning.
const DefaultBatchSize = 250

// Request describes one single-brand ingestion run.
type Request struct {
	LibraryURL string           `json:"library_url"`
	BusinessID int64            `json:"business_id"`
	Name       string           `json:"name,omitempty"`
	Source     models.SourceTag `json:"source,omitempty"`
	Count      int              `json:"count,omitempty"`
	StartDate  time.Time        `json:"-"`
	EndDate    time.Time        `json:"-"`
	Summarize  bool             `json:"summarize,omitempty"`
}

// Validate rejects malformed requests before any I/O happens.
func (r Request) Validate() error {
	if strings.TrimSpace(r.LibraryURL) == "" {
		return errors.New("library url is required")
	}
	if r.BusinessID <= 0 {
		return errors.New("business id is required")
	}
	if r.StartDate.IsZero() != r.EndDate.IsZero() {
		return errors.New("start and end date must be provided together")
	}
	if !r.StartDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return errors.New("end date is before start date")
	}
	return nil
}

func (r Request) sourceTag() models.SourceTag {
	if r.Source == "" {
		return models.SourceScrapeCreators
	}
	return r.Source
}

// Result is the uniform outcome shape of an ingestion run. The orchestrator
// never panics or leaks provider errors across its boundary; failures land in
// Error with Success=false, and the outcome is always recorded on the brand.
// RowsTransformed is how many fetched items were upserted; Inserted is the
// verified row-count delta, so re-ingesting known ads reports zero.
type Result struct {
	Success         bool            `json:"success"`
	BrandID         int64           `json:"brand_id,omitempty"`
	BrandName       string          `json:"brand_name,omitempty"`
	RowsTransformed int             `json:"rows_transformed"`
	Inserted        int             `json:"inserted"`
	Summaries       *summary.Counts `json:"summaries,omitempty"`
	SummaryError    string          `json:"summary_error,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// Ingestor composes fetch, normalization, brand bookkeeping, batched upserts
// and optional summary recomputation into one synchronous run per request.
type Ingestor struct {
	db        *bun.DB
	providers map[models.SourceTag]sources.Provider
	engine    *summary.Engine
	log       *slog.Logger
	batchSize int
	locks     *brandLocks
	now       func() time.Time
}

// New creates an ingestor over the given providers.
func New(db *bun.DB, providers []sources.Provider, engine *summary.Engine, log *slog.Logger, batchSize int) *Ingestor {
	byTag := make(map[models.SourceTag]sources.Provider, len(providers))
	for _, p := range providers {
		byTag[p.Name()] = p
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Ingestor{
		db:        db,
		providers: byTag,
		engine:    engine,
		log:       log,
		batchSize: batchSize,
		locks:     newBrandLocks(),
		now:       time.Now,
	}
}

// Ingest runs one end-to-end ingestion for a library URL. No step is retried
// internally; batches already committed before a failure stay committed.
func (ing *Ingestor) Ingest(ctx context.Context, req Request) Result {
	started := time.Now()
	defer func() {
		metrics.IngestDuration.Observe(time.Since(started).Seconds())
	}()

	if err := req.Validate(); err != nil {
		return Result{Error: err.Error()}
	}

	tag := req.sourceTag()
	provider, ok := ing.providers[tag]
	if !ok {
		return Result{Error: fmt.Sprintf("unknown source %q", tag)}
	}

	unlock := ing.locks.acquire(req.LibraryURL)
	defer unlock()

	brand, err := repositories.ResolveBrand(ctx, ing.db, req.LibraryURL, req.Name, req.BusinessID)
	if err != nil {
		return Result{Error: "resolve brand: " + err.Error()}
	}

	res := Result{BrandID: brand.ID, BrandName: brand.Name}

	opts := sources.FetchOptions{Count: req.Count, StartDate: req.StartDate, EndDate: req.EndDate}
	ads, err := provider.Fetch(ctx, req.LibraryURL, opts)
	if err != nil {
		ing.markError(ctx, brand.ID, err.Error())
		metrics.ProviderErrors.WithLabelValues(string(tag)).Inc()
		metrics.IngestRuns.WithLabelValues(string(tag), "provider_error").Inc()
		res.Error = err.Error()
		return res
	}

	// A name derived from the fetched page beats the pre-fetch placeholder.
	if req.Name == "" {
		if derived := derivedName(ads); derived != "" && derived != brand.Name {
			if updated, err := repositories.ResolveBrand(ctx, ing.db, req.LibraryURL, derived, req.BusinessID); err == nil {
				brand = updated
				res.BrandName = brand.Name
			}
		}
	}

	if len(ads) == 0 {
		// Soft failure: the call completed but found nothing worth ingesting.
		// Still flagged on the brand so operators notice bad URLs.
		ing.markError(ctx, brand.ID, "no valid ads found")
		metrics.IngestRuns.WithLabelValues(string(tag), "empty").Inc()
		res.Success = true
		return res
	}

	for _, ad := range ads {
		ad.BrandID = brand.ID
	}
	res.RowsTransformed = len(ads)

	before, err := repositories.CountAdCreativesByBrand(ctx, ing.db, brand.ID)
	if err != nil {
		msg := "count creatives: " + err.Error()
		ing.markError(ctx, brand.ID, msg)
		metrics.IngestRuns.WithLabelValues(string(tag), "storage_error").Inc()
		res.Error = msg
		return res
	}

	for start := 0; start < len(ads); start += ing.batchSize {
		end := start + ing.batchSize
		if end > len(ads) {
			end = len(ads)
		}
		if err := repositories.UpsertAdCreatives(ctx, ing.db, ads[start:end]); err != nil {
			msg := "upsert creatives: " + err.Error()
			ing.markError(ctx, brand.ID, msg)
			metrics.IngestRuns.WithLabelValues(string(tag), "storage_error").Inc()
			res.Error = msg
			return res
		}
	}

	// Verify by re-counting rather than trusting upsert row counts, which
	// no-op on unchanged rows.
	count, err := repositories.CountAdCreativesByBrand(ctx, ing.db, brand.ID)
	if err != nil {
		msg := "count creatives: " + err.Error()
		ing.markError(ctx, brand.ID, msg)
		metrics.IngestRuns.WithLabelValues(string(tag), "storage_error").Inc()
		res.Error = msg
		return res
	}
	if count == 0 {
		msg := "upsert completed but no data found"
		ing.markError(ctx, brand.ID, msg)
		metrics.IngestRuns.WithLabelValues(string(tag), "verify_error").Inc()
		res.Error = msg
		return res
	}

	now := ing.now()
	if err := repositories.UpdateBrandFetchStatus(ctx, ing.db, brand.ID, models.FetchSuccess, nil, &now); err != nil {
		ing.log.Warn("record fetch success", slog.Int64("brand_id", brand.ID), slog.String("err", err.Error()))
	}

	res.Success = true
	res.Inserted = count - before
	metrics.CreativesUpserted.Add(float64(len(ads)))
	metrics.IngestRuns.WithLabelValues(string(tag), "success").Inc()

	if req.Summarize {
		counts, err := ing.engine.Rebuild(ctx, &brand.ID)
		if err != nil {
			// Best-effort rollup: a failed recompute doesn't fail ingestion.
			ing.log.Warn("summary rebuild failed", slog.Int64("brand_id", brand.ID), slog.String("err", err.Error()))
			res.SummaryError = err.Error()
		} else {
			res.Summaries = &counts
			metrics.SummaryRows.WithLabelValues("creative").Add(float64(counts.CreativeCount))
			metrics.SummaryRows.WithLabelValues("funnel").Add(float64(counts.FunnelCount))
		}
	}

	return res
}

// markError records a failed run on the brand row. Failures here are logged
// but don't mask the original error.
func (ing *Ingestor) markError(ctx context.Context, brandID int64, msg string) {
	if err := repositories.UpdateBrandFetchStatus(ctx, ing.db, brandID, models.FetchError, &msg, nil); err != nil {
		ing.log.Warn("record fetch error", slog.Int64("brand_id", brandID), slog.String("err", err.Error()))
	}
}

// derivedName builds a display name from fetched items: the first page name,
// else a "Page {id}" placeholder.
func derivedName(ads []*models.AdCreative) string {
	for _, ad := range ads {
		if ad.PageName != nil && *ad.PageName != "" {
			return models.ClampBrandName(*ad.PageName)
		}
	}
	for _, ad := range ads {
		if ad.PageID != "" {
			return "Page " + ad.PageID
		}
	}
	return ""
}
