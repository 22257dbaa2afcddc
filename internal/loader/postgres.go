package loader

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voyagen/channeldex/internal/models"
)

// PGLoader reads entity collections from Postgres tables (see
// migrations/ for the schema). It serves deployments that mirror the
// upstream dataset into a database instead of shipping JSON snapshots.
type PGLoader struct {
	pool *pgxpool.Pool
}

// NewPGLoader connects to dsn. Caller must call Close when done.
func NewPGLoader(ctx context.Context, dsn string) (*PGLoader, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &PGLoader{pool: pool}, nil
}

// Close closes the connection pool.
func (p *PGLoader) Close() {
	p.pool.Close()
}

// LoadEntities implements Loader.
func (p *PGLoader) LoadEntities(ctx context.Context, names ...models.EntityName) (*models.Collections, error) {
	c := &models.Collections{}
	want := wanted(names)
	for _, name := range models.AllEntities {
		if !want[name] {
			continue
		}
		var err error
		switch name {
		case models.EntityChannels:
			err = p.loadChannels(ctx, c)
		case models.EntityCountries:
			err = p.loadCountries(ctx, c)
		case models.EntityCategories:
			err = p.loadCategories(ctx, c)
		case models.EntityStreams:
			err = p.loadStreams(ctx, c)
		case models.EntityLogos:
			err = p.loadLogos(ctx, c)
		case models.EntityFeeds:
			err = p.loadFeeds(ctx, c)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, name, err)
		}
	}
	return c, nil
}

func (p *PGLoader) loadChannels(ctx context.Context, c *models.Collections) error {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, country, COALESCE(categories, '{}'), COALESCE(website, ''), is_nsfw
		 FROM channels ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Country, &ch.Categories, &ch.Website, &ch.IsNSFW); err != nil {
			return err
		}
		if ch.ID == "" || ch.Name == "" {
			c.Skipped++
			continue
		}
		c.Channels = append(c.Channels, ch)
	}
	return rows.Err()
}

func (p *PGLoader) loadCountries(ctx context.Context, c *models.Collections) error {
	rows, err := p.pool.Query(ctx,
		`SELECT code, name, COALESCE(flag, '') FROM countries ORDER BY code`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var co models.Country
		if err := rows.Scan(&co.Code, &co.Name, &co.Flag); err != nil {
			return err
		}
		if co.Code == "" || co.Name == "" {
			c.Skipped++
			continue
		}
		c.Countries = append(c.Countries, co)
	}
	return rows.Err()
}

func (p *PGLoader) loadCategories(ctx context.Context, c *models.Collections) error {
	rows, err := p.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return err
		}
		if cat.ID == "" || cat.Name == "" {
			c.Skipped++
			continue
		}
		c.Categories = append(c.Categories, cat)
	}
	return rows.Err()
}

func (p *PGLoader) loadStreams(ctx context.Context, c *models.Collections) error {
	rows, err := p.pool.Query(ctx,
		`SELECT COALESCE(channel, ''), COALESCE(feed, ''), COALESCE(title, ''), url,
		        COALESCE(height, 0), COALESCE(width, 0)
		 FROM streams ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s models.Stream
		if err := rows.Scan(&s.Channel, &s.Feed, &s.Title, &s.URL, &s.Height, &s.Width); err != nil {
			return err
		}
		if s.URL == "" {
			c.Skipped++
			continue
		}
		c.Streams = append(c.Streams, s)
	}
	return rows.Err()
}

func (p *PGLoader) loadLogos(ctx context.Context, c *models.Collections) error {
	rows, err := p.pool.Query(ctx,
		`SELECT channel, COALESCE(feed, ''), url, COALESCE(width, 0), COALESCE(height, 0)
		 FROM logos ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var l models.Logo
		if err := rows.Scan(&l.Channel, &l.Feed, &l.URL, &l.Width, &l.Height); err != nil {
			return err
		}
		if l.Channel == "" || l.URL == "" {
			c.Skipped++
			continue
		}
		c.Logos = append(c.Logos, l)
	}
	return rows.Err()
}

func (p *PGLoader) loadFeeds(ctx context.Context, c *models.Collections) error {
	rows, err := p.pool.Query(ctx,
		`SELECT channel, id, COALESCE(name, ''), is_main FROM feeds ORDER BY channel, id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var f models.Feed
		if err := rows.Scan(&f.Channel, &f.ID, &f.Name, &f.IsMain); err != nil {
			return err
		}
		if f.Channel == "" || f.ID == "" {
			c.Skipped++
			continue
		}
		c.Feeds = append(c.Feeds, f)
	}
	return rows.Err()
}
