// Package config loads server settings from defaults, an optional TOML
// file, and environment overrides, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	StaticRoot  string `toml:"static_root"`
	AssetPrefix string `toml:"asset_prefix"`
	// DatabaseURL enables the Postgres access-log recorder when set.
	DatabaseURL string `toml:"database_url"`
}

func Default() Config {
	return Config{
		Host:        "127.0.0.1",
		Port:        8080,
		StaticRoot:  "static",
		AssetPrefix: "/assets/",
	}
}

// Load layers the TOML file at path (if non-empty) over the defaults,
// then applies PORT and STATIC_ROOT environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "read config file %s", path)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid PORT %q", port)
		}
		cfg.Port = p
	}
	if root := os.Getenv("STATIC_ROOT"); root != "" {
		cfg.StaticRoot = root
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
