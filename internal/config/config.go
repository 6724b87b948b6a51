// Package config loads id3meta settings from a .env file, an optional YAML
// file and ID3META_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/simonhull/id3meta"
	"github.com/simonhull/id3meta/internal/display"
)

// Display holds the listing options of the id3meta command.
type Display struct {
	ShowMetadata  bool `yaml:"show_metadata" env:"ID3META_SHOW_METADATA" env-default:"true" env-description:"show tag values instead of names derived from the path"`
	Underscores   bool `yaml:"underscores" env:"ID3META_UNDERSCORES" env-default:"true" env-description:"replace underscores with spaces"`
	Transliterate bool `yaml:"transliterate" env:"ID3META_TRANSLITERATE" env-default:"false" env-description:"transliterate Cyrillic to Latin"`
}

// Config is the complete configuration. Every field can be set from YAML
// or from the environment variable named in its env tag.
type Config struct {
	LegacyCharset string `yaml:"legacy_charset" env:"ID3META_LEGACY_CHARSET" env-default:"windows-1251" env-description:"single-byte charset for legacy ID3 text"`
	MaxTagSize    int    `yaml:"max_tag_size" env:"ID3META_MAX_TAG_SIZE" env-default:"3145728" env-description:"largest ID3v2 tag read, in bytes"`
	Workers       int    `yaml:"workers" env:"ID3META_WORKERS" env-default:"0" env-description:"files processed at once (0 = number of CPUs)"`
	LogLevel      string `yaml:"log_level" env:"ID3META_LOG_LEVEL" env-default:"info" env-description:"trace, debug, info, warn or error"`

	Display Display `yaml:"display"`
}

// Load reads a .env file from the working directory if there is one, then
// the YAML file at path (optional), then the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cleanenv cannot.
func (c *Config) Validate() error {
	if _, err := id3meta.Charset(c.LegacyCharset); err != nil {
		return fmt.Errorf("ID3META_LEGACY_CHARSET: %w", err)
	}
	if c.MaxTagSize <= 0 {
		return fmt.Errorf("ID3META_MAX_TAG_SIZE must be positive, got %d", c.MaxTagSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("ID3META_WORKERS must not be negative, got %d", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Options converts the configuration into extraction options.
func (c *Config) Options() ([]id3meta.Option, error) {
	enc, err := id3meta.Charset(c.LegacyCharset)
	if err != nil {
		return nil, err
	}
	return []id3meta.Option{
		id3meta.WithLegacyEncoding(enc),
		id3meta.WithMaxTagSize(c.MaxTagSize),
		id3meta.WithWorkers(c.WorkerCount()),
		id3meta.WithRepairPolicy(id3meta.DefaultRepairPolicy(enc)),
	}, nil
}

// WorkerCount returns Workers, or runtime.NumCPU() when Workers is 0.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Level parses LogLevel (case-insensitive).
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("ID3META_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

// DisplayOptions converts Display for internal/display.
func (c *Config) DisplayOptions() display.Options {
	return display.Options{
		ShowMetadata:  c.Display.ShowMetadata,
		Underscores:   c.Display.Underscores,
		Transliterate: c.Display.Transliterate,
	}
}

// Usage describes every environment variable.
func Usage() (string, error) {
	var cfg Config
	header := "Environment variables:"
	return cleanenv.GetDescription(&cfg, &header)
}
