package metaapi

import (
	"context"
	"time"

	"github.com/adpulse/ingestor/internal/models"
	"github.com/adpulse/ingestor/internal/sources"
)

// Provider adapts the vendor ad-archive API to the canonical source contract.
type Provider struct {
	client *Client
}

// NewProvider creates a provider over a configured client.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// Name returns the source tag stamped on rows from this provider.
func (p *Provider) Name() models.SourceTag {
	return models.SourceMetaAPI
}

// Fetch resolves the page id from the library URL, retrieves archives up to
// the capped count, filters to valid items, and maps them to canonical rows.
func (p *Provider) Fetch(ctx context.Context, libraryURL string, opts sources.FetchOptions) ([]*models.AdCreative, error) {
	now := time.Now().UTC()
	opts = opts.Normalize(now)

	pageID, err := PageIDFromLibraryURL(libraryURL)
	if err != nil {
		return nil, err
	}

	items, err := p.client.FetchArchives(ctx, pageID, opts.Count)
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
