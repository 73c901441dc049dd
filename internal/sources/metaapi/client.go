package metaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/adpulse/ingestor/internal/ratelimit"
	"github.com/adpulse/ingestor/internal/sources"
)

const providerName = "meta_api"

const archiveFields = "id,page_id,page_name,ad_delivery_start_time,ad_delivery_stop_time,ad_creation_time,ad_creative_bodies,ad_creative_link_titles,ad_creative_link_captions,ad_creative_link_descriptions,ad_snapshot_url,publisher_platforms,eu_total_reach"

// Vendor pages are capped server-side; larger limits get rejected.
const pageLimit = 100

// Client handles vendor ad-archive API requests.
type Client struct {
	httpClient  *http.Client
	limiter     ratelimit.Limiter
	baseURL     string
	accessToken string
}

// NewClient creates a new vendor API client.
func NewClient(baseURL, accessToken string, limiter ratelimit.Limiter) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		limiter:     limiter,
		baseURL:     baseURL,
		accessToken: accessToken,
	}
}

// FetchArchives retrieves up to limit archive items for a page id, following
// the vendor's cursor paging.
func (c *Client) FetchArchives(ctx context.Context, pageID string, limit int) ([]Archive, error) {
	params := url.Values{}
	params.Set("search_page_ids", pageID)
	params.Set("ad_active_status", "ALL")
	params.Set("fields", archiveFields)
	params.Set("limit", fmt.Sprintf("%d", min(limit, pageLimit)))
	if c.accessToken != "" {
		params.Set("access_token", c.accessToken)
	}

	next := fmt.Sprintf("%s/ads_archive?%s", c.baseURL, params.Encode())

	items := make([]Archive, 0, limit)
	for next != "" && len(items) < limit {
		page, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Data...)
		next = page.Paging.Next
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*archivePage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &sources.ProviderError{Provider: providerName, Status: resp.StatusCode, Body: sources.TruncateBody(body)}
	}

	var page archivePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &sources.ProviderError{Provider: providerName, Body: "non-list body: " + sources.TruncateBody(body)}
	}
	if page.Data == nil {
		return nil, &sources.ProviderError{Provider: providerName, Body: "non-list body: " + sources.TruncateBody(body)}
	}
	return &page, nil
}

// PageIDFromLibraryURL extracts the external page id from an ad-library URL.
func PageIDFromLibraryURL(libraryURL string) (string, error) {
	u, err := url.Parse(libraryURL)
	if err != nil {
		return "", fmt.Errorf("parse library url: %w", err)
	}
	if id := u.Query().Get("view_all_page_id"); id != "" {
		return id, nil
	}
	if id := u.Query().Get("id"); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("library url carries no page id: %s", libraryURL)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
