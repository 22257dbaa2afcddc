package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	files := map[string]string{
		"/channels.json":   `[{"id": "cnn.us", "name": "CNN", "country": "US"}]`,
		"/countries.json":  `[{"code": "US", "name": "United States"}]`,
		"/categories.json": `[{"id": "news", "name": "News"}]`,
		"/streams.json":    `[{"channel": "cnn.us", "url": "http://x/cnn.m3u8"}]`,
		"/logos.json":      `[]`,
		"/feeds.json":      `[]`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPLoader_LoadsAllCollections(t *testing.T) {
	srv := fixtureServer(t)
	l := NewHTTPLoader(srv.URL, "channeldex-test", 5*time.Second)
	c, err := l.LoadEntities(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Channels) != 1 || len(c.Streams) != 1 {
		t.Errorf("collections = %+v", c)
	}
	if c.Logos == nil || c.Feeds == nil {
		t.Error("empty collections must decode to empty slices")
	}
}

func TestHTTPLoader_HTTPErrorIsSourceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	l := NewHTTPLoader(srv.URL, "", 5*time.Second)
	if _, err := l.LoadEntities(context.Background()); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestHTTPLoader_CancelledContextIsNotSourceFailure(t *testing.T) {
	srv := fixtureServer(t)
	l := NewHTTPLoader(srv.URL, "", 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.LoadEntities(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrSourceUnavailable) {
		t.Error("a superseded fetch must not be reported as a source failure")
	}
}
