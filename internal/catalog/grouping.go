package catalog

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/voyagen/channeldex/internal/models"
)

// ErrUnsupportedViewType is returned for a view type the engine does
// not produce. It fails fast with no partial result.
var ErrUnsupportedViewType = errors.New("unsupported view type")

// Engine builds grouped views from raw collections. It is stateless
// apart from configuration; indexes are rebuilt per call.
type Engine struct {
	fallbackLogo string
	coll         *collate.Collator
}

// NewEngine returns an engine using fallbackLogo for channels without
// logo candidates. The collator fixes the ordering contract for the
// country and category reference lists.
func NewEngine(fallbackLogo string) *Engine {
	return &Engine{
		fallbackLogo: fallbackLogo,
		coll:         collate.New(language.Und, collate.IgnoreCase),
	}
}

// BuildView joins c into the requested grouping. Channels without
// streams are excluded from every group but still counted in stats.
func (e *Engine) BuildView(c *models.Collections, view models.ViewType) (*models.GroupedView, error) {
	idx := BuildIndexes(c)

	var groups map[string][]models.EnrichedChannel
	switch view {
	case models.ViewCountry:
		groups = e.byCountry(c, idx)
	case models.ViewCategory:
		groups = e.byCategory(c, idx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedViewType, view)
	}

	return &models.GroupedView{
		Groups:     groups,
		Countries:  e.sortedCountries(c.Countries),
		Categories: e.sortedCategories(c.Categories),
		Stats:      e.Stats(c, idx),
	}, nil
}

// byCountry groups streamable channels under their country's display
// name. Channels whose country code has no Country record are skipped.
// Colliding display names merge into one group.
func (e *Engine) byCountry(c *models.Collections, idx *Indexes) map[string][]models.EnrichedChannel {
	groups := make(map[string][]models.EnrichedChannel)
	for i := range c.Channels {
		ch := &c.Channels[i]
		if len(idx.StreamsByChannel[ch.ID]) == 0 {
			continue
		}
		country, ok := idx.CountryByCode[ch.Country]
		if !ok {
			continue
		}
		groups[country.Name] = append(groups[country.Name], e.enrich(ch, country.Name, idx))
	}
	return groups
}

// byCategory fans each streamable channel out into every category it
// declares; an empty category list lands it in the synthetic
// uncategorized bucket instead.
func (e *Engine) byCategory(c *models.Collections, idx *Indexes) map[string][]models.EnrichedChannel {
	groups := make(map[string][]models.EnrichedChannel)
	for i := range c.Channels {
		ch := &c.Channels[i]
		if len(idx.StreamsByChannel[ch.ID]) == 0 {
			continue
		}
		if len(ch.Categories) == 0 {
			groups[models.UncategorizedGroup] = append(groups[models.UncategorizedGroup], e.enrich(ch, models.UncategorizedGroup, idx))
			continue
		}
		for _, catID := range ch.Categories {
			label := catID
			if cat, ok := idx.CategoryByID[catID]; ok {
				label = cat.Name
			}
			groups[label] = append(groups[label], e.enrich(ch, label, idx))
		}
	}
	return groups
}

// enrich builds the display-ready projection of one channel for one
// group membership. Ranking and enrichment are pure functions of
// (channel, indexes), so repeated calls per membership are fine.
func (e *Engine) enrich(ch *models.Channel, group string, idx *Indexes) models.EnrichedChannel {
	streams := idx.StreamsByChannel[ch.ID]
	ec := models.EnrichedChannel{
		ID:         ch.ID,
		Name:       DisplayName(ch, streams),
		Group:      group,
		Country:    ch.Country,
		Logo:       BestLogo(ch.ID, idx, e.fallbackLogo),
		Website:    ch.Website,
		Categories: ch.Categories,
		IsNSFW:     ch.IsNSFW,
	}
	for _, f := range idx.FeedsByChannel[ch.ID] {
		ec.Feeds = append(ec.Feeds, *f)
	}
	for _, s := range streams {
		ec.Streams = append(ec.Streams, *s)
	}
	return ec
}

// Stats computes the aggregate block over the full collections.
func (e *Engine) Stats(c *models.Collections, idx *Indexes) models.Stats {
	st := models.Stats{
		TotalChannels:   len(c.Channels),
		TotalCountries:  len(c.Countries),
		TotalCategories: len(c.Categories),
		TotalLogos:      len(c.Logos),
		TotalStreams:    len(c.Streams),
		SkippedRecords:  c.Skipped,
	}
	for i := range c.Channels {
		id := c.Channels[i].ID
		if len(idx.StreamsByChannel[id]) > 0 {
			st.ChannelsWithStreams++
		}
		if len(idx.LogosByChannel[id]) > 0 {
			st.ChannelsWithLogos++
		}
	}
	for i := range c.Streams {
		s := &c.Streams[i]
		if s.Channel != "" {
			st.LinkedStreams++
		} else if s.Title != "" {
			st.OrphanStreams++
		}
	}
	return st
}

// sortedCountries returns a copy ordered by display name under the
// engine's collator. The ordering is a guaranteed contract.
func (e *Engine) sortedCountries(countries []models.Country) []models.Country {
	out := make([]models.Country, len(countries))
	copy(out, countries)
	sort.SliceStable(out, func(i, j int) bool {
		return e.coll.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// sortedCategories returns a copy ordered by display name.
func (e *Engine) sortedCategories(categories []models.Category) []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)
	sort.SliceStable(out, func(i, j int) bool {
		return e.coll.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}
