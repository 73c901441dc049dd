package scrapecreators

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adpulse/ingestor/internal/models"
	"github.com/adpulse/ingestor/internal/sources"
)

// Usable is the validity filter: an item is eligible for transformation only
// if it carries at least one id field and no error indicator.
func Usable(item AdPayload) bool {
	if item.Error != "" {
		return false
	}
	return item.AdArchiveID.Usable() || item.ID.Usable()
}

// MapAdCreative converts one scraper item into a canonical AdCreative.
// Required fields are always populated: an unresolvable start date falls back
// to now, and a missing archive id is synthesized so the item still yields
// exactly one row. BrandID is left for the orchestrator.
func MapAdCreative(item AdPayload, libraryURL string, now time.Time) *models.AdCreative {
	ad := &models.AdCreative{
		ArchiveID:  archiveID(item, now),
		Source:     models.SourceScrapeCreators,
		LibraryURL: libraryURL,
		PageID:     pageID(item),
		Platforms:  item.PublisherPlatform,
	}

	if t, ok := StartDate(item); ok {
		ad.StartDate = t
	} else {
		ad.StartDate = now
	}
	if t, ok := sources.ResolveTimestamp(item.EndDate, item.EndDateString); ok {
		ad.EndDate = &t
	}

	ad.PageName = strPtr(item.PageName)

	snap := item.Snapshot
	if snap == nil {
		return ad
	}

	if snap.PageName != "" {
		ad.PageName = strPtr(snap.PageName)
	}
	ad.LinkURL = strPtr(destinationURL(snap))
	ad.Caption = strPtr(captionText(snap))
	ad.Title = strPtr(titleText(snap))
	ad.CTAText = strPtr(ctaText(snap))
	ad.PageLikes = snap.PageLikeCount
	ad.Categories = snap.PageCategories

	mediaType, mediaURL, thumb := extractMedia(snap)
	if mediaType != "" {
		mt := mediaType
		ad.MediaType = &mt
	}
	ad.MediaURL = strPtr(mediaURL)
	ad.ThumbnailURL = strPtr(thumb)

	return ad
}

// StartDate resolves the item's start date without the now-fallback, so
// date-range fetches can drop items that don't carry a parseable date.
func StartDate(item AdPayload) (time.Time, bool) {
	candidates := []interface{}{item.StartDate, item.StartDateString}
	if item.Snapshot != nil {
		candidates = append(candidates, item.Snapshot.CreationTime)
	}
	return sources.ResolveTimestamp(candidates...)
}

func archiveID(item AdPayload, now time.Time) string {
	if item.AdArchiveID.Usable() {
		return item.AdArchiveID.String()
	}
	if item.ID.Usable() {
		return item.ID.String()
	}
	// No usable id: synthesize one so the row is never dropped. It will not
	// deduplicate against a future correctly-keyed copy of the same ad.
	page := pageID(item)
	if page == "" {
		page = "unknown"
	}
	return fmt.Sprintf("synthetic-%s-%d-%s", page, now.Unix(), uuid.NewString()[:8])
}

func pageID(item AdPayload) string {
	if item.PageID.Usable() {
		return item.PageID.String()
	}
	if item.Snapshot != nil && item.Snapshot.PageID.Usable() {
		return item.Snapshot.PageID.String()
	}
	return ""
}

func destinationURL(snap *Snapshot) string {
	if snap.LinkURL != "" {
		return snap.LinkURL
	}
	for _, card := range snap.Cards {
		if card.LinkURL != "" {
			return card.LinkURL
		}
	}
	return ""
}

func captionText(snap *Snapshot) string {
	if snap.Body != nil && snap.Body.Text != "" {
		return snap.Body.Text
	}
	if snap.Caption != "" {
		return snap.Caption
	}
	for _, card := range snap.Cards {
		if card.Body != "" {
			return card.Body
		}
	}
	return ""
}

func titleText(snap *Snapshot) string {
	if snap.Title != "" {
		return snap.Title
	}
	for _, card := range snap.Cards {
		if card.Title != "" {
			return card.Title
		}
	}
	return ""
}

func ctaText(snap *Snapshot) string {
	if snap.CTAText != "" {
		return snap.CTAText
	}
	for _, card := range snap.Cards {
		if card.CTAText != "" {
			return card.CTAText
		}
	}
	return ""
}

// extractMedia picks the primary media by priority: card video, card image,
// top-level videos, top-level images. Thumbnails follow the same priority,
// preferring preview/resized variants.
func extractMedia(snap *Snapshot) (models.MediaType, string, string) {
	for _, card := range snap.Cards {
		if url := firstNonEmpty(card.VideoHDURL, card.VideoSDURL); url != "" {
			return models.MediaVideo, url, card.VideoPreviewImageURL
		}
		if url := firstNonEmpty(card.OriginalImageURL, card.ResizedImageURL); url != "" {
			return models.MediaImage, url, firstNonEmpty(card.ResizedImageURL, card.OriginalImageURL)
		}
	}
	for _, video := range snap.Videos {
		if url := firstNonEmpty(video.VideoHDURL, video.VideoSDURL); url != "" {
			return models.MediaVideo, url, video.VideoPreviewImageURL
		}
	}
	for _, img := range snap.Images {
		if url := firstNonEmpty(img.OriginalImageURL, img.ResizedImageURL); url != "" {
			return models.MediaImage, url, firstNonEmpty(img.ResizedImageURL, img.OriginalImageURL)
		}
	}
	return "", "", ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
