package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voyagen/channeldex/internal/models"
)

// DirLoader reads entity collections from <dir>/<name>.json files,
// the layout produced by an offline snapshot of the directory API.
type DirLoader struct {
	dir string
}

// NewDirLoader returns a loader over the given directory.
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{dir: dir}
}

// LoadEntities implements Loader.
func (d *DirLoader) LoadEntities(ctx context.Context, names ...models.EntityName) (*models.Collections, error) {
	c := &models.Collections{}
	want := wanted(names)
	for _, name := range models.AllEntities {
		if !want[name] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(d.dir, string(name)+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrSourceUnavailable, path, err)
		}
		skipped, err := decodeCollection(name, data, c)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		c.Skipped += skipped
	}
	return c, nil
}
