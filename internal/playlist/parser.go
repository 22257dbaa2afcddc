// Package playlist parses the legacy line-oriented M3U playlist format
// into the same category-shaped grouped view the catalog engine
// produces, so downstream code is agnostic to data origin.
package playlist

import (
	"bufio"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/voyagen/channeldex/internal/models"
)

// Options controls the grouping caps. Unlimited disables both.
type Options struct {
	MaxGroups        int
	MaxGroupChannels int
	Unlimited        bool
}

var (
	reGroup    = regexp.MustCompile(`group-title="([^"]*)"`)
	reLogo     = regexp.MustCompile(`tvg-logo="([^"]*)"`)
	reCountry  = regexp.MustCompile(`tvg-country="([^"]*)"`)
	reLanguage = regexp.MustCompile(`tvg-language="([^"]*)"`)
)

// pending accumulates one channel between its #EXTINF line and the
// stream URL line that follows it.
type pending struct {
	name     string
	group    string
	logo     string
	country  string
	language string
}

// Parse tokenizes playlist text into a category-shaped grouped view.
// Each #EXTINF line starts a channel; the next non-comment, non-blank
// line is its stream URL. Channel ids are derived from
// (name, group, url) and are stable for identical triples.
func Parse(text string, opts Options) *models.GroupedView {
	groups := make(map[string][]models.EnrichedChannel)

	scanner := bufio.NewScanner(strings.NewReader(text))
	// Some playlists carry very long EXTINF lines.
	const maxSize = 1024 * 1024
	scanner.Buffer(make([]byte, 0, 64*1024), maxSize)

	var cur *pending
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(strings.ToUpper(line), "#EXTINF:"):
			cur = parseExtinf(line)
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		default:
			if cur == nil {
				continue
			}
			addChannel(groups, cur, line, opts)
			cur = nil
		}
	}

	return finalize(groups, opts)
}

// parseExtinf extracts the channel name and the independent key="value"
// attributes from a metadata line. The name is everything after the
// first comma, so names containing commas survive intact.
func parseExtinf(line string) *pending {
	p := &pending{group: models.UncategorizedGroup}
	if i := strings.Index(line, ","); i >= 0 {
		p.name = strings.TrimSpace(line[i+1:])
	}
	if m := reGroup.FindStringSubmatch(line); m != nil && strings.TrimSpace(m[1]) != "" {
		p.group = strings.TrimSpace(m[1])
	}
	if m := reLogo.FindStringSubmatch(line); m != nil {
		p.logo = strings.TrimSpace(m[1])
	}
	if m := reCountry.FindStringSubmatch(line); m != nil {
		p.country = strings.TrimSpace(m[1])
	}
	if m := reLanguage.FindStringSubmatch(line); m != nil {
		p.language = strings.TrimSpace(m[1])
	}
	return p
}

// addChannel appends the accumulated channel to its group, honoring
// the per-group channel cap. Overflow is dropped silently.
func addChannel(groups map[string][]models.EnrichedChannel, p *pending, url string, opts Options) {
	if p.name == "" {
		return
	}
	if !opts.Unlimited && opts.MaxGroupChannels > 0 && len(groups[p.group]) >= opts.MaxGroupChannels {
		return
	}
	groups[p.group] = append(groups[p.group], models.EnrichedChannel{
		ID:       hashID(p.name + p.group + url),
		Name:     p.name,
		Group:    p.group,
		Country:  p.country,
		Logo:     p.logo,
		Language: p.language,
		Streams:  []models.Stream{{URL: url, Title: p.name}},
	})
}

// finalize sorts group keys lexicographically, truncates to the group
// cap, and sorts each group's channels by name.
func finalize(groups map[string][]models.EnrichedChannel, opts Options) *models.GroupedView {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if !opts.Unlimited && opts.MaxGroups > 0 && len(keys) > opts.MaxGroups {
		keys = keys[:opts.MaxGroups]
	}

	view := &models.GroupedView{
		Groups:     make(map[string][]models.EnrichedChannel, len(keys)),
		Countries:  []models.Country{},
		Categories: make([]models.Category, 0, len(keys)),
	}
	for _, k := range keys {
		channels := groups[k]
		sort.SliceStable(channels, func(i, j int) bool {
			return channels[i].Name < channels[j].Name
		})
		view.Groups[k] = channels
		view.Categories = append(view.Categories, models.Category{ID: k, Name: k})

		view.Stats.TotalChannels += len(channels)
		view.Stats.ChannelsWithStreams += len(channels)
		view.Stats.TotalStreams += len(channels)
		view.Stats.LinkedStreams += len(channels)
	}
	view.Stats.TotalCategories = len(keys)
	return view
}

// hashID folds s into 32 bits with shift-and-subtract per character
// and base-36 encodes the absolute value. Stable for identical input.
func hashID(s string) string {
	var h int32
	for _, r := range s {
		h = (h << 5) - h + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}
