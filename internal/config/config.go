package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"linkedin-scraper/internal/models"
)

const (
	DriverChromedp = "chromedp"
	DriverRod      = "rod"

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
)

// DefaultConfig returns the default configuration for the scraper
func DefaultConfig() models.Config {
	return models.Config{
		Driver:             DriverChromedp,
		Headless:           false,
		NoSandbox:          true,
		UserAgent:          DefaultUserAgent,
		PageLoadTimeout:    30 * time.Second,
		PollInterval:       500 * time.Millisecond,
		ScrollPause:        2 * time.Second,
		MaxScrolls:         10,
		ExpandSections:     true,
		ManualLoginTimeout: 5 * time.Minute,
		ProfileDelay:       3 * time.Second,
		DatabasePath:       "scraper.db",
		OutputDir:          ".",
		LogLevel:           "info",
	}
}

// Load builds the effective configuration: defaults, then the json5 file at
// path and its .local override, then .env and process environment.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (models.Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		file, err := ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := file.apply(&cfg); err != nil {
				return cfg, fmt.Errorf("invalid config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}
	ApplyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv copies credentials and browser overrides from the environment
func ApplyEnv(cfg *models.Config) {
	if v := os.Getenv("LINKEDIN_EMAIL"); v != "" {
		cfg.Credentials.Email = v
	}
	if v := os.Getenv("LINKEDIN_PASSWORD"); v != "" {
		cfg.Credentials.Password = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
}

// Validate rejects settings the scraper cannot run with
func Validate(cfg models.Config) error {
	if cfg.Driver != DriverChromedp && cfg.Driver != DriverRod {
		return fmt.Errorf("unknown driver %q (want %s or %s)", cfg.Driver, DriverChromedp, DriverRod)
	}
	if cfg.PageLoadTimeout <= 0 {
		return fmt.Errorf("page load timeout must be positive")
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if cfg.MaxScrolls < 0 {
		return fmt.Errorf("max scrolls must not be negative")
	}
	return nil
}
