package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// ErrNoSource is returned when no entity source is configured.
var ErrNoSource = errors.New("no entity source configured: set DATA_DIR, DATABASE_URL or SOURCE_URL")

// Defaults applied when the environment or file leaves a field unset.
const (
	DefaultTTL          = time.Hour
	DefaultTimeout      = 30 * time.Second
	DefaultFallbackLogo = "https://iptv-org.github.io/assets/default-logo.png"
	DefaultMaxGroups    = 100
	DefaultGroupCap     = 300
)

// Config holds application configuration. Components receive the values
// they need as constructor arguments; nothing reads the environment at
// use time.
type Config struct {
	DataDir     string        `yaml:"data_dir"`
	DatabaseURL string        `yaml:"database_url"`
	SourceURL   string        `yaml:"source_url"`
	RedisURL    string        `yaml:"redis_url"`
	ServerPort  string        `yaml:"server_port"`
	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`

	CacheTTL     time.Duration `yaml:"cache_ttl"`
	FallbackLogo string        `yaml:"fallback_logo"`

	// Playlist ingestion caps (ignored when a request sets unlimited).
	MaxGroups        int `yaml:"max_groups"`
	MaxGroupChannels int `yaml:"max_group_channels"`
}

// Load builds config from environment variables.
// If no source variable is set, Load tries .env.local and .env first.
// At least one of DATA_DIR, DATABASE_URL, SOURCE_URL is required.
func Load() (*Config, error) {
	if os.Getenv("DATA_DIR") == "" && os.Getenv("DATABASE_URL") == "" && os.Getenv("SOURCE_URL") == "" {
		loadEnvFiles()
	}
	c := &Config{
		DataDir:     os.Getenv("DATA_DIR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SourceURL:   os.Getenv("SOURCE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		ServerPort:  os.Getenv("SERVER_PORT"),
		UserAgent:   os.Getenv("FETCHER_USER_AGENT"),
	}
	if s := os.Getenv("FETCHER_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			c.Timeout = d
		}
	}
	if s := os.Getenv("CACHE_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			c.CacheTTL = d
		}
	}
	c.FallbackLogo = os.Getenv("FALLBACK_LOGO")
	if s := os.Getenv("MAX_GROUPS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			c.MaxGroups = n
		}
	}
	if s := os.Getenv("MAX_GROUP_CHANNELS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			c.MaxGroupChannels = n
		}
	}
	return c.finish()
}

// finish fills defaults and validates that a source is configured.
func (c *Config) finish() (*Config, error) {
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	if c.UserAgent == "" {
		c.UserAgent = "ChannelDex/1.0"
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultTTL
	}
	if c.FallbackLogo == "" {
		c.FallbackLogo = DefaultFallbackLogo
	}
	if c.MaxGroups <= 0 {
		c.MaxGroups = DefaultMaxGroups
	}
	if c.MaxGroupChannels <= 0 {
		c.MaxGroupChannels = DefaultGroupCap
	}
	if c.DataDir == "" && c.DatabaseURL == "" && c.SourceURL == "" {
		return nil, ErrNoSource
	}
	return c, nil
}
