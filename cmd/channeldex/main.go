package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/voyagen/channeldex/internal/cache"
	"github.com/voyagen/channeldex/internal/catalog"
	"github.com/voyagen/channeldex/internal/config"
	"github.com/voyagen/channeldex/internal/loader"
	"github.com/voyagen/channeldex/internal/server"
	"github.com/voyagen/channeldex/internal/service"
)

func main() {
	configPath := flag.String("config", "", "Optional config file path (YAML); else use environment")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	src, cleanup, err := buildLoader(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loader: %v\n", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Connect to Redis if REDIS_URL is configured; without it the view
	// cache runs memory-only.
	var persist cache.Persister
	if cfg.RedisURL != "" {
		rds, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "redis: %v\n", err)
			os.Exit(1)
		}
		defer rds.Close()

		if err := rds.Ping(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "redis ping: %v\n", err)
			os.Exit(1)
		}
		persist = cache.NewRedisPersister(rds)
		fmt.Fprintln(os.Stderr, "redis connected (persisted cache tier enabled)")
	} else {
		fmt.Fprintln(os.Stderr, "redis disabled (REDIS_URL not set)")
	}

	viewCache := cache.NewViewCache(persist, cfg.CacheTTL)
	viewCache.Restore(ctx)

	engine := catalog.NewEngine(cfg.FallbackLogo)
	agg := service.New(src, viewCache, engine)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(agg, cfg)
	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

// buildLoader picks the entity source by configuration precedence:
// local snapshot directory, then Postgres, then the HTTP API.
func buildLoader(ctx context.Context, cfg *config.Config) (loader.Loader, func(), error) {
	switch {
	case cfg.DataDir != "":
		fmt.Fprintf(os.Stderr, "entity source: directory %s\n", cfg.DataDir)
		return loader.NewDirLoader(cfg.DataDir), nil, nil

	case cfg.DatabaseURL != "":
		absMigrations, err := filepath.Abs("migrations")
		if err != nil {
			absMigrations = "migrations"
		}
		if _, err := os.Stat(absMigrations); err != nil {
			if exe, e := os.Executable(); e == nil {
				absMigrations = filepath.Join(filepath.Dir(exe), "migrations")
			}
		}
		if err := loader.RunMigrations(cfg.DatabaseURL, "file://"+absMigrations); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		pg, err := loader.NewPGLoader(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		fmt.Fprintln(os.Stderr, "entity source: postgres")
		return pg, pg.Close, nil

	default:
		fmt.Fprintf(os.Stderr, "entity source: %s\n", cfg.SourceURL)
		return loader.NewHTTPLoader(cfg.SourceURL, cfg.UserAgent, cfg.Timeout), nil, nil
	}
}
