package catalog

import (
	"sort"
	"strings"

	"github.com/voyagen/channeldex/internal/models"
)

// Search scans every (group, channel) pair of an already-built view. A
// channel matches when its name or group label contains the query,
// case-insensitively. An empty query matches nothing. Results carry the
// group label as the category field and are sorted by channel name.
func Search(view *models.GroupedView, query string) []models.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	results := []models.SearchResult{}
	if q == "" {
		return results
	}
	for group, channels := range view.Groups {
		groupMatch := strings.Contains(strings.ToLower(group), q)
		for i := range channels {
			ch := &channels[i]
			if !groupMatch && !strings.Contains(strings.ToLower(ch.Name), q) {
				continue
			}
			r := models.SearchResult{
				ID:       ch.ID,
				Name:     ch.Name,
				Category: group,
				Logo:     ch.Logo,
			}
			if len(ch.Streams) > 0 {
				r.URL = ch.Streams[0].URL
			}
			results = append(results, r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results
}
