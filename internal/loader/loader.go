// Package loader supplies the raw entity collections the catalog is
// built from. Three interchangeable sources exist: a directory of JSON
// files, an HTTP API publishing the same files, and Postgres tables.
// The catalog never knows which one produced its input.
package loader

import (
	"context"
	"errors"

	"github.com/voyagen/channeldex/internal/models"
)

// ErrSourceUnavailable wraps any failure to obtain a requested
// collection. It propagates to the consumer so a renderer can tell
// "no channels matched" apart from "data could not be loaded".
var ErrSourceUnavailable = errors.New("entity source unavailable")

// Loader produces raw entity collections. With no names given, all six
// collections are loaded. A record missing a required field is skipped
// and counted in Collections.Skipped rather than failing the load.
type Loader interface {
	LoadEntities(ctx context.Context, names ...models.EntityName) (*models.Collections, error)
}

// wanted turns the variadic name list into a membership check.
// An empty list selects everything.
func wanted(names []models.EntityName) map[models.EntityName]bool {
	m := make(map[models.EntityName]bool, len(models.AllEntities))
	if len(names) == 0 {
		for _, n := range models.AllEntities {
			m[n] = true
		}
		return m
	}
	for _, n := range names {
		m[n] = true
	}
	return m
}
