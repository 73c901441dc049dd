package scrapecreators

import (
	"context"
	"time"

	"github.com/adpulse/ingestor/internal/models"
	"github.com/adpulse/ingestor/internal/sources"
)

// Provider adapts the scraping service to the canonical source contract.
type Provider struct {
	client *Client
}

// NewProvider creates a provider over a configured client.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// Name returns the source tag stamped on rows from this provider.
func (p *Provider) Name() models.SourceTag {
	return models.SourceScrapeCreators
}

// Fetch retrieves raw scraper items, truncates to the capped count, filters
// to valid items, and maps them to canonical rows. Date-bounded fetches drop
// items whose start date is missing or outside the range.
func (p *Provider) Fetch(ctx context.Context, libraryURL string, opts sources.FetchOptions) ([]*models.AdCreative, error) {
	now := time.Now().UTC()
	opts = opts.Normalize(now)

	items, err := p.client.FetchAds(ctx, libraryURL, opts.Count)
	if err != nil {
		return nil, err
	}

	if len(items) > opts.Count {
		items = items[:opts.Count]
	}

	ads := make([]*models.AdCreative, 0, len(items))
	for _, item := range items {
		if !Usable(item) {
			continue
		}
		if opts.DateBounded() {
			start, ok := StartDate(item)
			if !ok || !opts.InRange(start) {
				continue
			}
		}
		ads = append(ads, MapAdCreative(item, libraryURL, now))
	}
	return ads, nil
}
