package catalog

import (
	"testing"

	"github.com/voyagen/channeldex/internal/models"
)

func streamPtrs(streams ...models.Stream) []*models.Stream {
	out := make([]*models.Stream, len(streams))
	for i := range streams {
		out[i] = &streams[i]
	}
	return out
}

func TestDisplayName_NoStreams(t *testing.T) {
	ch := &models.Channel{ID: "cnn.us", Name: "CNN"}
	if got := DisplayName(ch, nil); got != "CNN" {
		t.Errorf("DisplayName = %q, want unchanged name", got)
	}
}

func TestDisplayName_HeightThresholds(t *testing.T) {
	cases := []struct {
		height int
		want   string
	}{
		{2160, "CNN (4K)"},
		{1440, "CNN (1440p)"},
		{1080, "CNN (1080p)"},
		{720, "CNN (720p)"},
		{480, "CNN (480p)"},
		{360, "CNN (360p)"},
		{240, "CNN"},
		{0, "CNN"},
	}
	ch := &models.Channel{ID: "cnn.us", Name: "CNN"}
	for _, tc := range cases {
		streams := streamPtrs(models.Stream{URL: "u", Height: tc.height})
		if got := DisplayName(ch, streams); got != tc.want {
			t.Errorf("height %d: DisplayName = %q, want %q", tc.height, got, tc.want)
		}
	}
}

func TestDisplayName_PicksHighestStream(t *testing.T) {
	ch := &models.Channel{ID: "cnn.us", Name: "CNN"}
	streams := streamPtrs(
		models.Stream{URL: "a", Height: 480},
		models.Stream{URL: "b", Height: 1080},
		models.Stream{URL: "c", Height: 720},
	)
	if got := DisplayName(ch, streams); got != "CNN (1080p)" {
		t.Errorf("DisplayName = %q, want 1080p from the best stream", got)
	}
}

func TestDisplayName_TieKeepsFirstStream(t *testing.T) {
	// Reduce-left: on equal heights the earlier stream's title is the
	// one consulted for the parenthesized fallback.
	ch := &models.Channel{ID: "x", Name: "X"}
	streams := streamPtrs(
		models.Stream{URL: "a", Title: "X (HD)"},
		models.Stream{URL: "b", Title: "X (4K)"},
	)
	if got := DisplayName(ch, streams); got != "X (HD)" {
		t.Errorf("DisplayName = %q, want label from first tied stream", got)
	}
}

func TestDisplayName_TitleFallback(t *testing.T) {
	ch := &models.Channel{ID: "x", Name: "X"}
	cases := []struct {
		title string
		want  string
	}{
		{"X News (1080p)", "X (1080p)"},
		{"X (fhd)", "X (fhd)"},
		{"X [720]", "X"},
		{"", "X"},
	}
	for _, tc := range cases {
		streams := streamPtrs(models.Stream{URL: "u", Title: tc.title})
		if got := DisplayName(ch, streams); got != tc.want {
			t.Errorf("title %q: DisplayName = %q, want %q", tc.title, got, tc.want)
		}
	}
}
