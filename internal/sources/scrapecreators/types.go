package scrapecreators

import "github.com/adpulse/ingestor/internal/sources"

// AdPayload is one item from the scraping service. Fields are routinely
// absent, re-typed, or duplicated between the top level and the snapshot.
type AdPayload struct {
	AdArchiveID       sources.FlexString `json:"ad_archive_id"`
	ID                sources.FlexString `json:"id"`
	PageID            sources.FlexString `json:"page_id"`
	PageName          string             `json:"page_name"`
	StartDate         interface{}        `json:"start_date"`
	EndDate           interface{}        `json:"end_date"`
	StartDateString   string             `json:"start_date_string"`
	EndDateString     string             `json:"end_date_string"`
	PublisherPlatform []string           `json:"publisher_platform"`
	Error             string             `json:"error"`
	Snapshot          *Snapshot          `json:"snapshot"`
}

// Snapshot holds the creative detail nested inside each scraper item.
type Snapshot struct {
	PageID         sources.FlexString `json:"page_id"`
	PageName       string             `json:"page_name"`
	LinkURL        string             `json:"link_url"`
	Caption        string             `json:"caption"`
	Title          string             `json:"title"`
	Body           *Body              `json:"body"`
	CTAText        string             `json:"cta_text"`
	DisplayFormat  string             `json:"display_format"`
	CreationTime   interface{}        `json:"creation_time"`
	PageLikeCount  *int64             `json:"page_like_count"`
	PageCategories []string           `json:"page_categories"`
	Cards          []Card             `json:"cards"`
	Images         []Image            `json:"images"`
	Videos         []Video            `json:"videos"`
}

// Body wraps the primary ad text.
type Body struct {
	Text string `json:"text"`
}

// Card is one carousel card.
type Card struct {
	Title                string `json:"title"`
	Body                 string `json:"body"`
	LinkURL              string `json:"link_url"`
	CTAText              string `json:"cta_text"`
	VideoHDURL           string `json:"video_hd_url"`
	VideoSDURL           string `json:"video_sd_url"`
	VideoPreviewImageURL string `json:"video_preview_image_url"`
	OriginalImageURL     string `json:"original_image_url"`
	ResizedImageURL      string `json:"resized_image_url"`
}

// Image is one top-level still.
type Image struct {
	OriginalImageURL string `json:"original_image_url"`
	ResizedImageURL  string `json:"resized_image_url"`
}

// Video is one top-level video rendition.
type Video struct {
	VideoHDURL           string `json:"video_hd_url"`
	VideoSDURL           string `json:"video_sd_url"`
	VideoPreviewImageURL string `json:"video_preview_image_url"`
}
