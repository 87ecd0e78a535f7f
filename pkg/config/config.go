// Package config loads the editor configuration from a TOML file.
//
// The file lives at ~/.config/flowbox/config.toml by default; a missing
// file yields the built-in defaults. Example:
//
//	[canvas]
//	width = 3000
//	height = 2000
//
//	[grid]
//	size = 20
//	column_width = 160
//	enabled = true
//
//	[history]
//	limit = 100
//
//	[store]
//	backend = "diskv"         # diskv | redis | mongo | memory
//	path = ""                 # diskv base dir, empty for the default
//	redis_addr = "localhost:6379"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	flowerrors "github.com/futurita/flowbox/pkg/errors"
)

// Store backend names accepted in [store].backend.
const (
	BackendDiskv  = "diskv"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config is the full editor configuration.
type Config struct {
	Canvas  Canvas  `toml:"canvas"`
	Grid    Grid    `toml:"grid"`
	History History `toml:"history"`
	Store   Store   `toml:"store"`
}

// Canvas bounds the area nodes can occupy.
type Canvas struct {
	Width  float64 `toml:"width" validate:"gt=0"`
	Height float64 `toml:"height" validate:"gt=0"`
}

// Grid holds the snapping defaults applied to new boards.
type Grid struct {
	Size        float64 `toml:"size" validate:"gt=0"`
	ColumnWidth float64 `toml:"column_width" validate:"gt=0"`
	Enabled     bool    `toml:"enabled"`
}

// History bounds the per-board undo stack.
type History struct {
	Limit int `toml:"limit" validate:"gte=1,lte=1000"`
}

// Store selects and configures the persistence backend.
type Store struct {
	Backend       string `toml:"backend" validate:"oneof=diskv redis mongo memory"`
	Path          string `toml:"path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas:  Canvas{Width: 3000, Height: 2000},
		Grid:    Grid{Size: 20, ColumnWidth: 160, Enabled: true},
		History: History{Limit: 100},
		Store: Store{
			Backend:   BackendDiskv,
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
	}
}

// DefaultPath returns ~/.config/flowbox/config.toml, or an empty string
// when the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "flowbox", "config.toml")
}

// Load reads the configuration at path, layering it over the defaults.
// An empty path selects DefaultPath; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, flowerrors.Wrap(flowerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, flowerrors.Wrap(flowerrors.ErrCodeInvalidConfig, err, "invalid values in %s", path)
	}
	return cfg, nil
}
