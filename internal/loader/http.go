package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voyagen/channeldex/internal/models"
)

// HTTPLoader fetches entity collections from a base URL publishing
// <base>/<name>.json (the iptv-org API layout). A cancelled context
// surfaces as the context error so callers can treat a superseded
// fetch as "no result" rather than a source failure.
type HTTPLoader struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewHTTPLoader returns a loader for baseURL with a per-request timeout.
func NewHTTPLoader(baseURL, userAgent string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// LoadEntities implements Loader.
func (h *HTTPLoader) LoadEntities(ctx context.Context, names ...models.EntityName) (*models.Collections, error) {
	c := &models.Collections{}
	want := wanted(names)
	for _, name := range models.AllEntities {
		if !want[name] {
			continue
		}
		data, err := h.fetch(ctx, string(name)+".json")
		if err != nil {
			// A superseded fetch is not a source failure.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		skipped, err := decodeCollection(name, data, c)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		c.Skipped += skipped
	}
	return c, nil
}

func (h *HTTPLoader) fetch(ctx context.Context, file string) ([]byte, error) {
	url := h.baseURL + "/" + file
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrSourceUnavailable, url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, url, err)
	}
	return body, nil
}
