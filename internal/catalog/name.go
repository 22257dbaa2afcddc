package catalog

import (
	"fmt"
	"regexp"

	"github.com/voyagen/channeldex/internal/models"
)

// qualityLabelRe extracts a parenthesized quality marker from a stream
// title, e.g. "CNN (1080p)" or "TVE (HD)".
var qualityLabelRe = regexp.MustCompile(`(?i)\((\d+p|hd|fhd|4k)\)`)

// DisplayName derives the enriched display name for a channel: the raw
// name plus a quality suffix taken from its best stream. A channel with
// no streams keeps its name unchanged.
func DisplayName(ch *models.Channel, streams []*models.Stream) string {
	if len(streams) == 0 {
		return ch.Name
	}
	best := streams[0]
	for _, s := range streams[1:] {
		if s.Height > best.Height {
			best = s
		}
	}
	label := qualityLabel(best.Height)
	if label == "" {
		if m := qualityLabelRe.FindStringSubmatch(best.Title); m != nil {
			label = m[1]
		}
	}
	if label == "" {
		return ch.Name
	}
	return fmt.Sprintf("%s (%s)", ch.Name, label)
}

// qualityLabel maps a pixel height to a display label, highest first.
func qualityLabel(height int) string {
	switch {
	case height >= 2160:
		return "4K"
	case height >= 1440:
		return "1440p"
	case height >= 1080:
		return "1080p"
	case height >= 720:
		return "720p"
	case height >= 480:
		return "480p"
	case height >= 360:
		return "360p"
	}
	return ""
}
