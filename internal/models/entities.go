package models

// EntityName identifies one of the raw entity collections.
type EntityName string

// The six entity collections served by every loader.
const (
	EntityChannels   EntityName = "channels"
	EntityCountries  EntityName = "countries"
	EntityCategories EntityName = "categories"
	EntityStreams    EntityName = "streams"
	EntityLogos      EntityName = "logos"
	EntityFeeds      EntityName = "feeds"
)

// AllEntities lists every collection in load order.
var AllEntities = []EntityName{
	EntityChannels, EntityCountries, EntityCategories,
	EntityStreams, EntityLogos, EntityFeeds,
}

// Country is a display-name record keyed by ISO code.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag,omitempty"`
}

// Category is a display-name record keyed by id (e.g. "news").
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stream is one playable URL. Channel may be empty, in which case the
// stream is orphaned (counted in stats, never grouped).
type Stream struct {
	Channel string `json:"channel,omitempty"`
	Feed    string `json:"feed,omitempty"`
	Title   string `json:"title,omitempty"`
	URL     string `json:"url"`
	Height  int    `json:"height,omitempty"` // 0 = unknown
	Width   int    `json:"width,omitempty"`
}

// Logo is a candidate image for a channel, optionally tied to a feed.
// Width/Height of 0 mean undeclared.
type Logo struct {
	Channel string `json:"channel"`
	Feed    string `json:"feed,omitempty"`
	URL     string `json:"url"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// Feed is a broadcast variant of a channel. The feed flagged main is the
// canonical ("master") variant.
type Feed struct {
	Channel string `json:"channel"`
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	IsMain  bool   `json:"is_main"`
}

// Collections bundles the six raw entity sets as returned by a loader.
// Absent optional collections are empty slices, never nil semantics the
// rest of the code has to special-case.
type Collections struct {
	Channels   []Channel  `json:"channels"`
	Countries  []Country  `json:"countries"`
	Categories []Category `json:"categories"`
	Streams    []Stream   `json:"streams"`
	Logos      []Logo     `json:"logos"`
	Feeds      []Feed     `json:"feeds"`

	// Skipped counts records dropped during validation (missing required
	// fields). Carried into Stats so malformed input stays visible.
	Skipped int `json:"skipped,omitempty"`
}
