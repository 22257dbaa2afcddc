package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/voyagen/channeldex/internal/models"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "channels.json", `[{"id": "cnn.us", "name": "CNN", "country": "US", "categories": ["news"]}]`)
	writeFixture(t, dir, "countries.json", `[{"code": "US", "name": "United States"}]`)
	writeFixture(t, dir, "categories.json", `[{"id": "news", "name": "News"}]`)
	writeFixture(t, dir, "streams.json", `[{"channel": "cnn.us", "url": "http://x/cnn.m3u8", "height": 1080}]`)
	writeFixture(t, dir, "logos.json", `[{"channel": "cnn.us", "url": "http://x/cnn.png"}]`)
	writeFixture(t, dir, "feeds.json", `[{"channel": "cnn.us", "id": "main", "is_main": true}]`)
	return dir
}

func TestDirLoader_LoadsAllCollections(t *testing.T) {
	l := NewDirLoader(fixtureDir(t))
	c, err := l.LoadEntities(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Channels) != 1 || len(c.Countries) != 1 || len(c.Categories) != 1 ||
		len(c.Streams) != 1 || len(c.Logos) != 1 || len(c.Feeds) != 1 {
		t.Errorf("collections = %+v", c)
	}
	if c.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", c.Skipped)
	}
}

func TestDirLoader_SubsetOfCollections(t *testing.T) {
	l := NewDirLoader(fixtureDir(t))
	c, err := l.LoadEntities(context.Background(), models.EntityChannels, models.EntityStreams)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Channels) != 1 || len(c.Streams) != 1 {
		t.Errorf("requested collections missing: %+v", c)
	}
	if len(c.Countries) != 0 {
		t.Errorf("unrequested collection loaded: %v", c.Countries)
	}
}

func TestDirLoader_MissingFileIsSourceUnavailable(t *testing.T) {
	dir := t.TempDir() // empty
	l := NewDirLoader(dir)
	_, err := l.LoadEntities(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestDirLoader_CountsSkippedAcrossCollections(t *testing.T) {
	dir := fixtureDir(t)
	writeFixture(t, dir, "channels.json", `[{"id": "cnn.us", "name": "CNN"}, {"id": "", "name": "bad"}]`)
	writeFixture(t, dir, "logos.json", `[{"channel": "", "url": "http://x/a.png"}]`)

	l := NewDirLoader(dir)
	c, err := l.LoadEntities(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if c.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", c.Skipped)
	}
}
