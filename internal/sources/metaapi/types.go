package metaapi

import "github.com/adpulse/ingestor/internal/sources"

// Archive is one ad from the vendor's ad-archive API: a flat shape with
// delivery times and creative text arrays instead of a nested snapshot.
type Archive struct {
	ID                         sources.FlexString `json:"id"`
	PageID                     sources.FlexString `json:"page_id"`
	PageName                   string             `json:"page_name"`
	AdDeliveryStartTime        string             `json:"ad_delivery_start_time"`
	AdDeliveryStopTime         string             `json:"ad_delivery_stop_time"`
	AdCreationTime             string             `json:"ad_creation_time"`
	AdCreativeBodies           []string           `json:"ad_creative_bodies"`
	AdCreativeLinkTitles       []string           `json:"ad_creative_link_titles"`
	AdCreativeLinkCaptions     []string           `json:"ad_creative_link_captions"`
	AdCreativeLinkDescriptions []string           `json:"ad_creative_link_descriptions"`
	AdSnapshotURL              string             `json:"ad_snapshot_url"`
	PublisherPlatforms         []string           `json:"publisher_platforms"`
	EUTotalReach               *int64             `json:"eu_total_reach"`
	Error                      string             `json:"error"`
}

// archivePage is one page of the vendor API response.
type archivePage struct {
	Data   []Archive `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}
