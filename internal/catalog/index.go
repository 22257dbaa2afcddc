// Package catalog joins the raw entity collections into denormalized,
// display-ready groupings: relation indexes, logo ranking, display-name
// enrichment, country/category views, and search over a built view.
package catalog

import "github.com/voyagen/channeldex/internal/models"

// Indexes holds the per-computation lookup structures. They reference
// records in the source Collections without copying, are rebuilt from
// scratch on every computation, and are never shared across
// computations.
type Indexes struct {
	ChannelByID      map[string]*models.Channel
	CountryByCode    map[string]*models.Country
	CategoryByID     map[string]*models.Category
	FeedsByChannel   map[string][]*models.Feed
	StreamsByChannel map[string][]*models.Stream
	LogosByChannel   map[string][]*models.Logo
}

// BuildIndexes constructs the lookup structures from c. Multi-valued
// indexes preserve the insertion order of the source collections.
func BuildIndexes(c *models.Collections) *Indexes {
	idx := &Indexes{
		ChannelByID:      make(map[string]*models.Channel, len(c.Channels)),
		CountryByCode:    make(map[string]*models.Country, len(c.Countries)),
		CategoryByID:     make(map[string]*models.Category, len(c.Categories)),
		FeedsByChannel:   make(map[string][]*models.Feed),
		StreamsByChannel: make(map[string][]*models.Stream),
		LogosByChannel:   make(map[string][]*models.Logo),
	}
	for i := range c.Channels {
		ch := &c.Channels[i]
		idx.ChannelByID[ch.ID] = ch
	}
	for i := range c.Countries {
		co := &c.Countries[i]
		idx.CountryByCode[co.Code] = co
	}
	for i := range c.Categories {
		cat := &c.Categories[i]
		idx.CategoryByID[cat.ID] = cat
	}
	for i := range c.Feeds {
		f := &c.Feeds[i]
		idx.FeedsByChannel[f.Channel] = append(idx.FeedsByChannel[f.Channel], f)
	}
	for i := range c.Streams {
		s := &c.Streams[i]
		if s.Channel == "" {
			continue
		}
		idx.StreamsByChannel[s.Channel] = append(idx.StreamsByChannel[s.Channel], s)
	}
	for i := range c.Logos {
		l := &c.Logos[i]
		idx.LogosByChannel[l.Channel] = append(idx.LogosByChannel[l.Channel], l)
	}
	return idx
}
