package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// FetchStatus records the outcome of the most recent ingestion for a brand.
type FetchStatus string

const (
	FetchSuccess FetchStatus = "success"
	FetchError   FetchStatus = "error"
	FetchPending FetchStatus = "pending"
)

// SourceTag identifies which provider produced a creative.
type SourceTag string

const (
	SourceScrapeCreators SourceTag = "scrapecreators"
	SourceMetaAPI        SourceTag = "meta_api"
	SourceImport         SourceTag = "import"
)

// FunnelType is a heuristic classification of a destination URL.
type FunnelType string

const (
	FunnelTrackingLink FunnelType = "tracking_link"
	FunnelAppStore     FunnelType = "app_store"
	FunnelQuiz         FunnelType = "quiz_funnel"
	FunnelLandingPage  FunnelType = "landing_page"
	FunnelUnknown      FunnelType = "unknown"
)

// MediaType describes the primary media of a creative.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaImage MediaType = "image"
)

// StringArray stores a slice of strings in SQLite as JSON.
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StringArray")
	}

	return json.Unmarshal(bytes, s)
}
