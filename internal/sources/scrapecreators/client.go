package scrapecreators

import (
	"bytes"
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

const providerName = "scrapecreators"

// Client handles scraping-service API requests.
type Client struct {
	httpClient *http.Client
	limiter    ratelimit.Limiter
	baseURL    string
	apiKey     string
}

// NewClient creates a new scraping-service client.
func NewClient(baseURL, apiKey string, limiter ratelimit.Limiter) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    limiter,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// FetchAds retrieves up to limit raw scraper items for a library URL.
func (c *Client) FetchAds(ctx context.Context, libraryURL string, limit int) ([]AdPayload, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("url", libraryURL)
	params.Set("limit", fmt.Sprintf("%d", limit))

	u := fmt.Sprintf("%s/v1/facebook/adLibrary/company/ads?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
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

	return decodeItems(body)
}

// decodeItems accepts either a bare JSON array or the service's envelope
// object with an "ads" (or "results") list. Anything else is a hard failure.
func decodeItems(body []byte) ([]AdPayload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []AdPayload
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &sources.ProviderError{Provider: providerName, Body: "malformed list body: " + sources.TruncateBody(body)}
		}
		return items, nil
	}

	var envelope struct {
		Ads     []AdPayload `json:"ads"`
		Results []AdPayload `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, &sources.ProviderError{Provider: providerName, Body: "non-list body: " + sources.TruncateBody(body)}
	}
	if envelope.Ads != nil {
		return envelope.Ads, nil
	}
	if envelope.Results != nil {
		return envelope.Results, nil
	}
	return nil, &sources.ProviderError{Provider: providerName, Body: "non-list body: " + sources.TruncateBody(body)}
}
