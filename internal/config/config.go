package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

// StoreConfig selects the entity store backend: "memory", "sqlite" or
// "memgraph".
type StoreConfig struct {
	Backend    string `toml:"backend"`
	SQLitePath string `toml:"sqlite_path"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type LayoutConfig struct {
	HorizontalSpacing float64 `toml:"horizontal_spacing"`
	VerticalSpacing   float64 `toml:"vertical_spacing"`
	SpouseSpacing     float64 `toml:"spouse_spacing"`
	RootSpacing       float64 `toml:"root_spacing"`
}

type ResolverConfig struct {
	GenerationsUp         int  `toml:"generations_up"`
	GenerationsDown       int  `toml:"generations_down"`
	IncludeSpouses        bool `toml:"include_spouses"`
	IncludeSiblings       bool `toml:"include_siblings"`
	IncludeExtendedFamily bool `toml:"include_extended_family"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Store    StoreConfig    `toml:"store"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Layout   LayoutConfig   `toml:"layout"`
	Resolver ResolverConfig `toml:"resolver"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Store:  StoreConfig{Backend: "memory", SQLitePath: "kintree.db"},
		Resolver: ResolverConfig{
			GenerationsUp:   3,
			GenerationsDown: 3,
			IncludeSpouses:  true,
			IncludeSiblings: true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
