// Package config loads the CLI's YAML configuration: renderer settings,
// default page options and the site used to make asset URLs absolute.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-chromepdf/internal/fileutil"
	"github.com/alnah/go-chromepdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX
	MaxURLLength      = 2048 // Browser limit
	MaxLengthValue    = 20   // "297mm", "11.69in"
	MaxPageSizeLength = 30   // "Comm10E" or a CSS size token
	MaxPasswordLength = 127  // PDF password limit
	MaxSessionLength  = 256  // Session tokens
	MaxWorkers        = 32
)

// appDir is the directory name under the user config directory.
const appDir = "go-chromepdf"

// Config holds all CLI configuration.
type Config struct {
	Renderer RendererConfig `yaml:"renderer"`
	Page     PageConfig     `yaml:"page"`
	Site     SiteConfig     `yaml:"site"`
	Log      LogConfig      `yaml:"log"`
}

// RendererConfig selects and tunes the browser renderer.
type RendererConfig struct {
	Enabled     *bool  `yaml:"enabled"`     // Browser renderer on (default: true)
	BrowserBin  string `yaml:"browserBin"`  // Empty = discover
	NoSandbox   bool   `yaml:"noSandbox"`   // Disable the Chrome sandbox
	Timeout     string `yaml:"timeout"`     // Go duration, e.g. "45s" (default: 30s)
	Workers     int    `yaml:"workers"`     // 0 = auto
	SettleDelay string `yaml:"settleDelay"` // Go duration (default: 50ms)
}

// PageConfig holds default render options. Keys match the host option names.
type PageConfig struct {
	Size         string `yaml:"size"`
	Width        string `yaml:"width"`
	Height       string `yaml:"height"`
	MarginTop    string `yaml:"marginTop"`
	MarginBottom string `yaml:"marginBottom"`
	MarginLeft   string `yaml:"marginLeft"`
	MarginRight  string `yaml:"marginRight"`
	Password     string `yaml:"password"`
}

// SiteConfig is the site relative asset URLs resolve against.
type SiteConfig struct {
	BaseURL   string `yaml:"baseURL"`
	SessionID string `yaml:"sessionID"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: warn)
}

// RendererEnabled reports whether the browser renderer is selected.
func (c *Config) RendererEnabled() bool {
	return c.Renderer.Enabled == nil || *c.Renderer.Enabled
}

// TimeoutDuration returns the parsed render timeout, or 0 when unset.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := parseDuration(c.Renderer.Timeout)
	return d
}

// SettleDuration returns the parsed settle delay and whether it was set.
func (c *Config) SettleDuration() (time.Duration, bool) {
	if c.Renderer.SettleDelay == "" {
		return 0, false
	}
	d, err := parseDuration(c.Renderer.SettleDelay)
	return d, err == nil
}

// Validate checks field lengths and value formats.
// Called automatically by LoadConfig, but available for configs built or
// modified in code (environment and flag overrides).
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"renderer.browserBin", c.Renderer.BrowserBin, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.width", c.Page.Width, MaxLengthValue},
		{"page.height", c.Page.Height, MaxLengthValue},
		{"page.marginTop", c.Page.MarginTop, MaxLengthValue},
		{"page.marginBottom", c.Page.MarginBottom, MaxLengthValue},
		{"page.marginLeft", c.Page.MarginLeft, MaxLengthValue},
		{"page.marginRight", c.Page.MarginRight, MaxLengthValue},
		{"page.password", c.Page.Password, MaxPasswordLength},
		{"site.baseURL", c.Site.BaseURL, MaxURLLength},
		{"site.sessionID", c.Site.SessionID, MaxSessionLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Renderer.Timeout != "" {
		d, err := parseDuration(c.Renderer.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: renderer.timeout %q (must be a positive duration like 30s)", ErrInvalidValue, c.Renderer.Timeout)
		}
	}
	if c.Renderer.SettleDelay != "" {
		d, err := parseDuration(c.Renderer.SettleDelay)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: renderer.settleDelay %q (must be a duration like 50ms)", ErrInvalidValue, c.Renderer.SettleDelay)
		}
	}
	if c.Renderer.Workers < 0 || c.Renderer.Workers > MaxWorkers {
		return fmt.Errorf("%w: renderer.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Renderer.Workers)
	}

	if c.Site.BaseURL != "" {
		u, err := url.Parse(c.Site.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: site.baseURL %q (must be an http or https URL)", ErrInvalidValue, c.Site.BaseURL)
		}
	}
	if c.Site.SessionID != "" && strings.ContainsAny(c.Site.SessionID, " \t\r\n&?#\"'<>") {
		return fmt.Errorf("%w: site.sessionID contains characters not allowed in a query value", ErrInvalidValue)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(s))
}

// DefaultConfig returns the configuration used when no file is given: browser
// renderer on, everything else left to library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.DecodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-chromepdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
