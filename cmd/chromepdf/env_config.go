package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	chromepdf "github.com/alnah/go-chromepdf"
	"github.com/alnah/go-chromepdf/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "CHROMEPDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Renderer
	ConfigPath string        // CHROMEPDF_CONFIG: config file name or path
	BrowserBin string        // CHROMEPDF_BROWSER_BIN: Chrome/Chromium binary
	NoSandbox  bool          // CHROMEPDF_NO_SANDBOX: "1" or "true"
	Timeout    time.Duration // CHROMEPDF_TIMEOUT: per-render timeout
	Workers    int           // CHROMEPDF_WORKERS: concurrent browsers

	// Page
	PageSize string // CHROMEPDF_PAGE_SIZE: A4, Letter, ...
	Password string // CHROMEPDF_PASSWORD: encrypt output

	// Site
	BaseURL   string // CHROMEPDF_BASE_URL: site asset URLs resolve against
	SessionID string // CHROMEPDF_SID: session token appended to asset URLs

	LogLevel string // CHROMEPDF_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid CHROMEPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CHROMEPDF_CONFIG":      true,
	chromepdf.EnvBrowserBin: true,
	"CHROMEPDF_NO_SANDBOX":  true,
	"CHROMEPDF_TIMEOUT":     true,
	"CHROMEPDF_WORKERS":     true,
	"CHROMEPDF_PAGE_SIZE":   true,
	"CHROMEPDF_PASSWORD":    true,
	"CHROMEPDF_BASE_URL":    true,
	"CHROMEPDF_SID":         true,
	"CHROMEPDF_LOG_LEVEL":   true,
	"CHROMEPDF_CONTAINER":   true, // read by container detection
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable numeric or duration values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CHROMEPDF_CONFIG"),
		BrowserBin: os.Getenv(chromepdf.EnvBrowserBin),
		PageSize:   os.Getenv("CHROMEPDF_PAGE_SIZE"),
		Password:   os.Getenv("CHROMEPDF_PASSWORD"),
		BaseURL:    os.Getenv("CHROMEPDF_BASE_URL"),
		SessionID:  os.Getenv("CHROMEPDF_SID"),
		LogLevel:   os.Getenv("CHROMEPDF_LOG_LEVEL"),
	}

	if v, err := strconv.ParseBool(os.Getenv("CHROMEPDF_NO_SANDBOX")); err == nil {
		cfg.NoSandbox = v
	}

	if timeout := os.Getenv("CHROMEPDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("CHROMEPDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for every unrecognized CHROMEPDF_*
// variable, e.g. CHROMEPDF_TIMOUT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.BrowserBin != "" && cfg.Renderer.BrowserBin == "" {
		cfg.Renderer.BrowserBin = env.BrowserBin
	}
	if env.NoSandbox {
		cfg.Renderer.NoSandbox = true
	}
	if env.Timeout > 0 && cfg.Renderer.Timeout == "" {
		cfg.Renderer.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 && cfg.Renderer.Workers == 0 {
		cfg.Renderer.Workers = env.Workers
	}

	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Password != "" && cfg.Page.Password == "" {
		cfg.Page.Password = env.Password
	}

	if env.BaseURL != "" && cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = env.BaseURL
	}
	if env.SessionID != "" && cfg.Site.SessionID == "" {
		cfg.Site.SessionID = env.SessionID
	}

	if env.LogLevel != "" && cfg.Log.Level == "" {
		cfg.Log.Level = env.LogLevel
	}
}
