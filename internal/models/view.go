package models

// ViewType selects a grouping of the catalog.
type ViewType string

const (
	ViewCountry  ViewType = "country"
	ViewCategory ViewType = "category"
)

// UncategorizedGroup is the synthetic bucket for channels that declare
// no category. Such channels are never silently dropped.
const UncategorizedGroup = "Uncategorized"

// EnrichedChannel is the display-ready projection of a channel: quality
// suffix applied to the name, best logo resolved, relations inlined.
// Built fresh on every computation; never mutated afterwards.
type EnrichedChannel struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Country    string   `json:"country,omitempty"`
	Logo       string   `json:"logo"`
	Website    string   `json:"website,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Language   string   `json:"language,omitempty"`
	IsNSFW     bool     `json:"is_nsfw"`
	Feeds      []Feed   `json:"feeds,omitempty"`
	Streams    []Stream `json:"streams,omitempty"`
}

// Stats is the aggregate block attached to every grouped view.
type Stats struct {
	TotalChannels       int `json:"total_channels"`
	ChannelsWithStreams int `json:"channels_with_streams"`
	TotalCountries      int `json:"total_countries"`
	TotalCategories     int `json:"total_categories"`
	TotalLogos          int `json:"total_logos"`
	TotalStreams        int `json:"total_streams"`
	LinkedStreams       int `json:"linked_streams"`
	OrphanStreams       int `json:"orphan_streams"`
	ChannelsWithLogos   int `json:"channels_with_logos"`
	SkippedRecords      int `json:"skipped_records,omitempty"`
}

// GroupedView is a denormalized view of the catalog: group label to
// channels, plus the sorted reference lists and aggregate stats.
// The Countries and Categories orderings are part of the contract.
type GroupedView struct {
	Groups     map[string][]EnrichedChannel `json:"groups"`
	Countries  []Country                    `json:"countries"`
	Categories []Category                   `json:"categories"`
	Stats      Stats                        `json:"stats"`
}

// SearchResult is one flattened match from a grouped view.
type SearchResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Logo     string `json:"logo,omitempty"`
	URL      string `json:"url,omitempty"`
}
