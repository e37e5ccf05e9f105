// ABOUTME: Configuration management for the feed generator
// ABOUTME: Loads the JSON config file, applies defaults, and validates the recognized options

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/morningfeed/internal/fsutil"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config stores morningfeed configuration.
type Config struct {
	// SourceURL is the news index page searched for the morning report link.
	SourceURL string `json:"source_url,omitempty"`

	// OutputPath is where the RSS document is written.
	// Supports ~ expansion for home directory.
	OutputPath string `json:"output_path,omitempty"`

	// MaxItems is the retention cap. Zero means the default (50).
	MaxItems int `json:"max_items,omitempty"`

	// Sanitize runs extracted article HTML through the sanitizer. Defaults to true.
	Sanitize *bool `json:"sanitize,omitempty"`

	// TimeoutSeconds bounds each HTTP request. Zero means the default (30).
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// Default returns a config with every option at its default
func Default() *Config {
	sanitize := DefaultSanitize
	return &Config{
		SourceURL:      DefaultSourceURL,
		OutputPath:     DefaultOutputPath,
		MaxItems:       DefaultMaxItems,
		Sanitize:       &sanitize,
		TimeoutSeconds: int(DefaultHTTPTimeout / time.Second),
	}
}

// GetSourceURL returns the configured index URL, defaulting to the Zhibo8 news page.
func (c *Config) GetSourceURL() string {
	if c.SourceURL == "" {
		return DefaultSourceURL
	}
	return c.SourceURL
}

// GetOutputPath returns the configured feed path with ~ expanded.
func (c *Config) GetOutputPath() string {
	if c.OutputPath == "" {
		return DefaultOutputPath
	}
	return ExpandPath(c.OutputPath)
}

// GetMaxItems returns the retention cap, defaulting to 50.
func (c *Config) GetMaxItems() int {
	if c.MaxItems == 0 {
		return DefaultMaxItems
	}
	return c.MaxItems
}

// GetSanitize reports whether extracted HTML is sanitized.
func (c *Config) GetSanitize() bool {
	if c.Sanitize == nil {
		return DefaultSanitize
	}
	return *c.Sanitize
}

// GetTimeout returns the per-request HTTP timeout.
func (c *Config) GetTimeout() time.Duration {
	if c.TimeoutSeconds == 0 {
		return DefaultHTTPTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the recognized options.
func (c *Config) Validate() error {
	if c.MaxItems < 0 {
		return fmt.Errorf("%w: max_items must be positive, got %d", ErrInvalid, c.MaxItems)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: timeout_seconds must be positive, got %d", ErrInvalid, c.TimeoutSeconds)
	}

	u, err := url.Parse(c.GetSourceURL())
	if err != nil {
		return fmt.Errorf("%w: source_url: %v", ErrInvalid, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: source_url must be http or https, got %q", ErrInvalid, c.GetSourceURL())
	}
	if u.Host == "" {
		return fmt.Errorf("%w: source_url is missing a host", ErrInvalid)
	}

	if strings.TrimSpace(c.GetOutputPath()) == "" {
		return fmt.Errorf("%w: output_path is empty", ErrInvalid)
	}

	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "morningfeed", "config.json")
}

// Load reads config from path, or from GetConfigPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to path.
func (c *Config) Save(path string) error {
	if path == "" {
		path = GetConfigPath()
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.AtomicWrite(path, append(data, '\n'), DefaultFilePerms)
}
