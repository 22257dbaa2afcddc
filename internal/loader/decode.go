package loader

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/voyagen/channeldex/internal/models"
)

// decodeCollection parses one raw JSON collection into the matching
// slice of c, returning the number of records skipped during
// validation. A record missing a required field is dropped, not nulled.
func decodeCollection(name models.EntityName, data []byte, c *models.Collections) (int, error) {
	switch name {
	case models.EntityChannels:
		return decodeChannels(data, c)
	case models.EntityCountries:
		return decodeCountries(data, c)
	case models.EntityCategories:
		return decodeCategories(data, c)
	case models.EntityStreams:
		return decodeStreams(data, c)
	case models.EntityLogos:
		return decodeLogos(data, c)
	case models.EntityFeeds:
		return decodeFeeds(data, c)
	}
	return 0, fmt.Errorf("unknown entity collection %q", name)
}

func decodeChannels(data []byte, c *models.Collections) (int, error) {
	var raw []models.Channel
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("channels: %w", err)
	}
	skipped := 0
	c.Channels = make([]models.Channel, 0, len(raw))
	for _, ch := range raw {
		if ch.ID == "" || ch.Name == "" {
			skipped++
			continue
		}
		if ch.Categories == nil {
			ch.Categories = []string{}
		}
		c.Channels = append(c.Channels, ch)
	}
	return skipped, nil
}

func decodeCountries(data []byte, c *models.Collections) (int, error) {
	var raw []models.Country
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("countries: %w", err)
	}
	skipped := 0
	c.Countries = make([]models.Country, 0, len(raw))
	for _, co := range raw {
		if co.Code == "" || co.Name == "" {
			skipped++
			continue
		}
		c.Countries = append(c.Countries, co)
	}
	return skipped, nil
}

func decodeCategories(data []byte, c *models.Collections) (int, error) {
	var raw []models.Category
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("categories: %w", err)
	}
	skipped := 0
	c.Categories = make([]models.Category, 0, len(raw))
	for _, cat := range raw {
		if cat.ID == "" || cat.Name == "" {
			skipped++
			continue
		}
		c.Categories = append(c.Categories, cat)
	}
	return skipped, nil
}

// rawStream tolerates height/width published as numbers, quoted
// numbers, or "1080p"-style strings.
type rawStream struct {
	Channel string          `json:"channel"`
	Feed    string          `json:"feed"`
	Title   string          `json:"title"`
	URL     string          `json:"url"`
	Height  json.RawMessage `json:"height"`
	Width   json.RawMessage `json:"width"`
}

func decodeStreams(data []byte, c *models.Collections) (int, error) {
	var raw []rawStream
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("streams: %w", err)
	}
	skipped := 0
	c.Streams = make([]models.Stream, 0, len(raw))
	for _, s := range raw {
		if s.URL == "" {
			skipped++
			continue
		}
		c.Streams = append(c.Streams, models.Stream{
			Channel: s.Channel,
			Feed:    s.Feed,
			Title:   s.Title,
			URL:     s.URL,
			Height:  parseDimension(s.Height),
			Width:   parseDimension(s.Width),
		})
	}
	return skipped, nil
}

func decodeLogos(data []byte, c *models.Collections) (int, error) {
	var raw []models.Logo
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("logos: %w", err)
	}
	skipped := 0
	c.Logos = make([]models.Logo, 0, len(raw))
	for _, l := range raw {
		if l.Channel == "" || l.URL == "" {
			skipped++
			continue
		}
		c.Logos = append(c.Logos, l)
	}
	return skipped, nil
}

func decodeFeeds(data []byte, c *models.Collections) (int, error) {
	var raw []models.Feed
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("feeds: %w", err)
	}
	skipped := 0
	c.Feeds = make([]models.Feed, 0, len(raw))
	for _, f := range raw {
		if f.Channel == "" || f.ID == "" {
			skipped++
			continue
		}
		c.Feeds = append(c.Feeds, f)
	}
	return skipped, nil
}

// parseDimension extracts a pixel count from a JSON number or string.
// "1080", "1080p" and 1080 all yield 1080; anything else yields 0.
func parseDimension(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(s, "p")
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
