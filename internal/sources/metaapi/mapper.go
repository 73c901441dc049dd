package metaapi

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adpulse/ingestor/internal/models"
	"github.com/adpulse/ingestor/internal/sources"
)

// Usable is the validity filter for vendor items.
func Usable(item Archive) bool {
	if item.Error != "" {
		return false
	}
	return item.ID.Usable()
}

// MapAdCreative converts one vendor archive item into a canonical AdCreative.
// A missing id gets a fresh random one so the item still yields a row.
func MapAdCreative(item Archive, libraryURL string, now time.Time) *models.AdCreative {
	ad := &models.AdCreative{
		ArchiveID:  archiveID(item),
		Source:     models.SourceMetaAPI,
		LibraryURL: libraryURL,
		PageID:     item.PageID.String(),
		PageName:   strPtr(item.PageName),
		Platforms:  item.PublisherPlatforms,
		Reach:      item.EUTotalReach,
	}

	if t, ok := StartDate(item); ok {
		ad.StartDate = t
	} else {
		ad.StartDate = now
	}
	if t, ok := sources.ResolveTimestamp(item.AdDeliveryStopTime); ok {
		ad.EndDate = &t
	}

	ad.Caption = firstPtr(item.AdCreativeBodies)
	ad.Title = firstPtr(item.AdCreativeLinkTitles)
	if link := destinationURL(item); link != "" {
		ad.LinkURL = &link
	}
	if item.AdSnapshotURL != "" {
		ad.MediaURL = &item.AdSnapshotURL
	}

	return ad
}

// StartDate resolves the delivery start without the now-fallback, trying the
// creation time as a secondary candidate.
func StartDate(item Archive) (time.Time, bool) {
	return sources.ResolveTimestamp(item.AdDeliveryStartTime, item.AdCreationTime)
}

func archiveID(item Archive) string {
	if item.ID.Usable() {
		return item.ID.String()
	}
	return uuid.NewString()
}

// destinationURL builds a destination from the first link caption, which the
// vendor serves without a scheme ("example.com/product").
func destinationURL(item Archive) string {
	for _, caption := range item.AdCreativeLinkCaptions {
		caption = strings.TrimSpace(caption)
		if caption == "" {
			continue
		}
		if !strings.Contains(caption, "://") {
			return "https://" + caption
		}
		return caption
	}
	return ""
}

func firstPtr(values []string) *string {
	for _, v := range values {
		if v != "" {
			return &v
		}
	}
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
