package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/adpulse/ingestor/internal/models"
)

// Hard per-brand-per-call ceilings. Requests never ask a provider for more
// than these, regardless of what the caller requested.
const (
	MaxCountFetch = 300
	MaxRangeFetch = 5000

	DefaultCount      = 50
	DefaultWindowDays = 30
)

// FetchOptions bounds one provider call by item count or by date range.
// Count and the date range are mutually exclusive; Normalize applies the
// "last 30 days, small count" default when neither is set.
type FetchOptions struct {
	Count     int
	StartDate time.Time
	EndDate   time.Time
}

// DateBounded reports whether the options carry a date range.
func (o FetchOptions) DateBounded() bool {
	return !o.StartDate.IsZero() && !o.EndDate.IsZero()
}

// Normalize fills in defaults and clamps the request to the hard ceilings.
func (o FetchOptions) Normalize(now time.Time) FetchOptions {
	if o.Count <= 0 && !o.DateBounded() {
		o.Count = DefaultCount
		o.EndDate = now
		o.StartDate = now.AddDate(0, 0, -DefaultWindowDays)
	}

	ceiling := MaxCountFetch
	if o.DateBounded() && o.Count <= 0 {
		ceiling = MaxRangeFetch
	}
	if o.Count <= 0 || o.Count > ceiling {
		o.Count = ceiling
	}
	return o
}

// InRange reports whether t falls inside the option's date range, treating
// the end date as end-of-day inclusive.
func (o FetchOptions) InRange(t time.Time) bool {
	if !o.DateBounded() {
		return true
	}
	endOfDay := time.Date(o.EndDate.Year(), o.EndDate.Month(), o.EndDate.Day(), 23, 59, 59, 0, o.EndDate.Location())
	return !t.Before(o.StartDate) && !t.After(endOfDay)
}

// Provider retrieves creatives from one external ad archive and normalizes
// them into canonical AdCreative rows. Implementations apply the validity
// filter, the ceiling, and post-fetch date filtering; BrandID is left unset
// for the orchestrator to fill.
type Provider interface {
	Name() models.SourceTag
	Fetch(ctx context.Context, libraryURL string, opts FetchOptions) ([]*models.AdCreative, error)
}

// ProviderError is a hard fetch failure: non-2xx status or a malformed body.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Body)
}

// TruncateBody limits an upstream error body for inclusion in messages.
func TruncateBody(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max])
	}
	return string(b)
}
