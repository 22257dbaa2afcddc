package catalog

import (
	"sort"
	"strings"

	"github.com/voyagen/channeldex/internal/models"
)

// logoTargetSize is the preferred rendered dimension; candidates are
// ranked by how close their declared size is to this on both axes.
const logoTargetSize = 150

// formatRank orders logo file formats, lower is better. Unknown
// extensions rank after every known one.
var formatRank = map[string]int{
	"svg":  0,
	"png":  1,
	"jpg":  2,
	"jpeg": 2,
	"webp": 3,
	"gif":  4,
}

const formatRankUnknown = 5

// BestLogo picks the single best logo URL for a channel, or fallback
// when the channel has no candidates. Ordering, best first: attached to
// the master feed, then format preference, then size closeness to the
// target. The sort is stable, so remaining ties keep insertion order.
func BestLogo(channelID string, idx *Indexes, fallback string) string {
	candidates := idx.LogosByChannel[channelID]
	if len(candidates) == 0 {
		return fallback
	}

	mainFeeds := make(map[string]bool)
	for _, f := range idx.FeedsByChannel[channelID] {
		if f.IsMain {
			mainFeeds[f.ID] = true
		}
	}

	ranked := make([]*models.Logo, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		am, bm := feedRank(a, mainFeeds), feedRank(b, mainFeeds)
		if am != bm {
			return am < bm
		}
		af, bf := extRank(a.URL), extRank(b.URL)
		if af != bf {
			return af < bf
		}
		return sizeDistance(a) < sizeDistance(b)
	})
	return ranked[0].URL
}

// feedRank is 0 for a logo attached to the channel's master feed.
func feedRank(l *models.Logo, mainFeeds map[string]bool) int {
	if l.Feed != "" && mainFeeds[l.Feed] {
		return 0
	}
	return 1
}

// extRank maps the lowercase URL suffix to the format preference order.
func extRank(url string) int {
	url = strings.ToLower(url)
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	dot := strings.LastIndexByte(url, '.')
	if dot < 0 || dot == len(url)-1 {
		return formatRankUnknown
	}
	if r, ok := formatRank[url[dot+1:]]; ok {
		return r
	}
	return formatRankUnknown
}

// sizeDistance sums the per-axis distance from the target size.
// An undeclared dimension counts as the target itself.
func sizeDistance(l *models.Logo) int {
	w, h := l.Width, l.Height
	if w == 0 {
		w = logoTargetSize
	}
	if h == 0 {
		h = logoTargetSize
	}
	return abs(w-logoTargetSize) + abs(h-logoTargetSize)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
