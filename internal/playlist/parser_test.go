package playlist

import (
	"fmt"
	"strings"
	"testing"

	"github.com/voyagen/channeldex/internal/models"
)

func TestParse_RoundTrip(t *testing.T) {
	text := "#EXTM3U\n" +
		`#EXTINF:-1 group-title="News",Channel A` + "\n" +
		"http://example/a.m3u8\n"

	view := Parse(text, Options{})
	news := view.Groups["News"]
	if len(news) != 1 {
		t.Fatalf("News has %d channels, want 1", len(news))
	}
	ch := news[0]
	if ch.Name != "Channel A" {
		t.Errorf("Name = %q", ch.Name)
	}
	if len(ch.Streams) != 1 || ch.Streams[0].URL != "http://example/a.m3u8" {
		t.Errorf("Streams = %v", ch.Streams)
	}
	if ch.ID == "" {
		t.Error("channel id must be non-empty")
	}

	// Parsing the same input again yields the same id.
	again := Parse(text, Options{})
	if got := again.Groups["News"][0].ID; got != ch.ID {
		t.Errorf("id not stable: %q vs %q", ch.ID, got)
	}
}

func TestParse_IDDependsOnTriple(t *testing.T) {
	a := hashID("Channel A" + "News" + "http://example/a.m3u8")
	b := hashID("Channel A" + "News" + "http://example/b.m3u8")
	if a == b {
		t.Error("different urls must produce different ids")
	}
	if a != hashID("Channel ANewshttp://example/a.m3u8") {
		t.Error("id must be a pure function of the concatenated triple")
	}
}

func TestParse_NameKeepsCommas(t *testing.T) {
	text := `#EXTINF:-1 group-title="News",News, Weather & Sport` + "\n" +
		"http://example/x.m3u8\n"
	view := Parse(text, Options{})
	if got := view.Groups["News"][0].Name; got != "News, Weather & Sport" {
		t.Errorf("Name = %q, want commas preserved", got)
	}
}

func TestParse_Attributes(t *testing.T) {
	text := `#EXTINF:-1 tvg-logo="http://cdn/l.png" tvg-country="UK" tvg-language="English" group-title="News",BBC` + "\n" +
		"http://example/bbc.m3u8\n"
	view := Parse(text, Options{})
	ch := view.Groups["News"][0]
	if ch.Logo != "http://cdn/l.png" || ch.Country != "UK" || ch.Language != "English" {
		t.Errorf("attributes not extracted: %+v", ch)
	}
}

func TestParse_MissingGroupIsUncategorized(t *testing.T) {
	text := "#EXTINF:-1,Loner\nhttp://example/l.m3u8\n"
	view := Parse(text, Options{})
	if len(view.Groups[models.UncategorizedGroup]) != 1 {
		t.Errorf("groups = %v, want channel in %q", view.Groups, models.UncategorizedGroup)
	}
}

func TestParse_SkipsCommentsAndBlanks(t *testing.T) {
	text := "#EXTM3U\n" +
		`#EXTINF:-1 group-title="News",Channel A` + "\n" +
		"\n" +
		"# a stray comment\n" +
		"http://example/a.m3u8\n"
	view := Parse(text, Options{})
	if len(view.Groups["News"]) != 1 {
		t.Fatalf("comment/blank lines broke the accumulator: %v", view.Groups)
	}
}

func TestParse_URLWithoutExtinfIgnored(t *testing.T) {
	view := Parse("http://example/orphan.m3u8\n", Options{})
	if view.Stats.TotalChannels != 0 {
		t.Errorf("orphan url produced %d channels", view.Stats.TotalChannels)
	}
}

func TestParse_ChannelsSortedWithinGroup(t *testing.T) {
	text := `#EXTINF:-1 group-title="News",Zulu` + "\n" +
		"http://example/z.m3u8\n" +
		`#EXTINF:-1 group-title="News",Alpha` + "\n" +
		"http://example/a.m3u8\n"
	view := Parse(text, Options{})
	news := view.Groups["News"]
	if news[0].Name != "Alpha" || news[1].Name != "Zulu" {
		t.Errorf("channels not sorted by name: %v", news)
	}
}

func TestParse_GroupCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "#EXTINF:-1 group-title=\"Group %c\",Ch %d\nhttp://example/%d.m3u8\n", 'E'-i, i, i)
	}
	view := Parse(b.String(), Options{MaxGroups: 3})
	if len(view.Groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(view.Groups))
	}
	// Truncation happens after the lexicographic sort of group keys.
	for _, want := range []string{"Group A", "Group B", "Group C"} {
		if _, ok := view.Groups[want]; !ok {
			t.Errorf("group %q missing after truncation", want)
		}
	}
	if len(view.Categories) != 3 {
		t.Errorf("Categories = %v, want the 3 kept groups", view.Categories)
	}
}

func TestParse_PerGroupChannelCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "#EXTINF:-1 group-title=\"News\",Ch %d\nhttp://example/%d.m3u8\n", i, i)
	}
	view := Parse(b.String(), Options{MaxGroupChannels: 2})
	if got := len(view.Groups["News"]); got != 2 {
		t.Errorf("News has %d channels, want cap of 2", got)
	}
}

func TestParse_UnlimitedDisablesCaps(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "#EXTINF:-1 group-title=\"G%d\",Ch %d\nhttp://example/%d.m3u8\n", i, i, i)
	}
	view := Parse(b.String(), Options{MaxGroups: 2, MaxGroupChannels: 1, Unlimited: true})
	if len(view.Groups) != 5 {
		t.Errorf("unlimited parse kept %d groups, want 5", len(view.Groups))
	}
}
