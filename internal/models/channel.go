package models

// Channel represents one channel record from the directory dataset
// (e.g. "cnn.us" with name, country, categories, website, nsfw flag).
type Channel struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	AltNames   []string `json:"alt_names,omitempty"`
	Country    string   `json:"country"` // ISO 3166-1 alpha-2 upper-case, e.g. "US"
	Categories []string `json:"categories,omitempty"`
	Website    string   `json:"website,omitempty"`
	IsNSFW     bool     `json:"is_nsfw"`
}
