// Package config holds bjsonctl's runtime configuration, bindable as
// cobra/pflag flags or loaded from a YAML file, the same split
// MacroPower-x's CLI tooling uses for its own commands.
package config

import (
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"

	"github.com/xdg-go/bjson/xlog"
)

// Config is the full set of knobs bjsonctl's subcommands read.
type Config struct {
	// MaxDepth caps container nesting during parse and navigation.
	// Zero means bjson.DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth"`
	// CacheEnabled turns on the statement-lifetime parse cache for
	// commands that process more than one input in a single process.
	CacheEnabled bool `yaml:"cache_enabled"`
	// LogLevel and LogFormat configure xlog's output.
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// NewConfig returns the zero-value defaults (depth per bjson's own
// default, cache on, info/text logging).
func NewConfig() *Config {
	return &Config{
		MaxDepth:     0,
		CacheEnabled: true,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// RegisterFlags binds c's fields onto fs, following MacroPower-x's
// pattern of one RegisterFlags method per config struct instead of a
// package-level flag set.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.MaxDepth, "max-depth", c.MaxDepth, "maximum container nesting depth (0 = default)")
	fs.BoolVar(&c.CacheEnabled, "cache", c.CacheEnabled, "enable the parse cache across multiple inputs")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text, json")
}

// FromYAML loads and merges a YAML config file at path into c. A
// missing file is not an error -- callers are expected to have already
// populated c with flag-derived defaults.
func (c *Config) FromYAML(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Logger builds the slog.Logger described by c's LogLevel/LogFormat.
func (c *Config) Logger() *slog.Logger {
	return xlog.New(os.Stderr, xlog.ParseLevel(c.LogLevel), xlog.ParseFormat(c.LogFormat))
}
