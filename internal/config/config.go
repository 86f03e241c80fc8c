package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dastanaron/bookmarks-csv/internal/models"
	"github.com/dastanaron/bookmarks-csv/internal/parser"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// FormatFirefox reads a Firefox places.sqlite database
const FormatFirefox = "firefox"

// Formats lists the accepted input formats
var Formats = []string{parser.FormatChromium, parser.FormatHTML, FormatFirefox}

// Environment variables read by ApplyEnv
const (
	EnvConfig   = "BOOKMARKS_CONFIG"
	EnvBrowser  = "BOOKMARKS_BROWSER"
	EnvInput    = "BOOKMARKS_INPUT"
	EnvFormat   = "BOOKMARKS_FORMAT"
	EnvOutput   = "BOOKMARKS_OUTPUT"
	EnvLogLevel = "BOOKMARKS_LOG_LEVEL"
)

// Config holds application configuration
type Config struct {
	Browser         string     `yaml:"browser" json:"browser"`
	Input           string     `yaml:"input" json:"input"`
	Format          string     `yaml:"format" json:"format"`
	Output          string     `yaml:"output" json:"output"`
	TimestampFields []string   `yaml:"timestamp_fields" json:"timestamp_fields"`
	LogLevel        slog.Level `yaml:"log_level" json:"log_level"`
}

// NewConfig creates a new configuration with defaults.
// Input, format and output stay empty until Resolve derives them from the browser.
func NewConfig() *Config {
	return &Config{
		Browser:         BrowserVivaldi,
		TimestampFields: []string{models.FieldDateAdded, models.FieldDateModified},
		LogLevel:        slog.LevelInfo,
	}
}

// WithBrowser sets the browser whose profile is read
func (c *Config) WithBrowser(browser string) *Config {
	c.Browser = browser
	return c
}

// WithInput sets a custom bookmarks file path
func (c *Config) WithInput(path string) *Config {
	c.Input = path
	return c
}

// WithFormat sets the input format
func (c *Config) WithFormat(format string) *Config {
	c.Format = format
	return c
}

// WithOutput sets the CSV destination
func (c *Config) WithOutput(path string) *Config {
	c.Output = path
	return c
}

// WithLogLevel sets the diagnostic level
func (c *Config) WithLogLevel(level slog.Level) *Config {
	c.LogLevel = level
	return c
}

// ApplyEnv overrides fields with BOOKMARKS_* environment variables that are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvBrowser); v != "" {
		c.WithBrowser(v)
	}
	if v := os.Getenv(EnvInput); v != "" {
		c.WithInput(v)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.WithFormat(v)
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.WithOutput(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.WithLogLevel(level)
	}
	return nil
}

// Resolve fills the fields left empty with values derived from the browser.
func (c *Config) Resolve() {
	c.Browser = strings.ToLower(c.Browser)
	if c.Format == "" {
		c.Format = FormatFor(c.Browser)
	}
	if c.Input == "" {
		c.Input = DefaultBookmarksPath(c.Browser)
	}
	if c.Output == "" {
		c.Output = defaultOutputPath(c.Browser)
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Browser, validation.Required, validation.In(anySlice(Browsers)...)),
		validation.Field(&c.Format, validation.Required, validation.In(anySlice(Formats)...)),
		validation.Field(&c.Input, validation.Required),
		validation.Field(&c.Output, validation.Required),
		validation.Field(&c.TimestampFields, validation.Each(validation.Required)),
	)
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Load reads a YAML file into target, expanding ${VAR} references first.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	return nil
}

// LoadOptional loads filename when it exists and does nothing otherwise
func LoadOptional[T any](filename string, target *T) error {
	if filename == "" {
		return nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return Load(filename, target)
}

// DefaultFile returns the config file looked up when none is given
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bookmarks-csv", "config.yaml")
}

func defaultOutputPath(browser string) string {
	name := browser + "_bookmarks.csv"
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(exe), name)
}
