package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	DataDir          string `yaml:"data_dir"`
	DatabaseURL      string `yaml:"database_url"`
	SourceURL        string `yaml:"source_url"`
	RedisURL         string `yaml:"redis_url"`
	ServerPort       string `yaml:"server_port"`
	UserAgent        string `yaml:"user_agent"`
	Timeout          string `yaml:"timeout"`
	CacheTTL         string `yaml:"cache_ttl"`
	FallbackLogo     string `yaml:"fallback_logo"`
	MaxGroups        int    `yaml:"max_groups"`
	MaxGroupChannels int    `yaml:"max_group_channels"`
}

// LoadFromFile loads config from a YAML file. At least one entity source
// (data_dir, database_url or source_url) is required.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	c := &Config{
		DataDir:          f.DataDir,
		DatabaseURL:      f.DatabaseURL,
		SourceURL:        f.SourceURL,
		RedisURL:         f.RedisURL,
		ServerPort:       f.ServerPort,
		UserAgent:        f.UserAgent,
		FallbackLogo:     f.FallbackLogo,
		MaxGroups:        f.MaxGroups,
		MaxGroupChannels: f.MaxGroupChannels,
	}
	if f.Timeout != "" {
		if d, err := time.ParseDuration(f.Timeout); err == nil {
			c.Timeout = d
		}
	}
	if f.CacheTTL != "" {
		if d, err := time.ParseDuration(f.CacheTTL); err == nil {
			c.CacheTTL = d
		}
	}
	return c.finish()
}
