package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"

	"linkedin-scraper/internal/logging"
	"linkedin-scraper/internal/models"
)

// File is the on-disk shape of the configuration. Durations are strings
// such as "30s"; pointer fields distinguish "unset" from false.
type File struct {
	Driver      string `json:"driver"`
	Headless    *bool  `json:"headless"`
	NoSandbox   *bool  `json:"no_sandbox"`
	UserAgent   string `json:"user_agent"`
	ChromePath  string `json:"chrome_path"`
	UserDataDir string `json:"user_data_dir"`

	PageLoadTimeout    string `json:"page_load_timeout"`
	PollInterval       string `json:"poll_interval"`
	ScrollPause        string `json:"scroll_pause"`
	MaxScrolls         *int   `json:"max_scrolls"`
	ExpandSections     *bool  `json:"expand_sections"`
	ManualLoginTimeout string `json:"manual_login_timeout"`
	ProfileDelay       string `json:"profile_delay"`

	DatabasePath string `json:"database_path"`
	OutputDir    string `json:"output_dir"`
	SaveHTML     *bool  `json:"save_html"`
	LogLevel     string `json:"log_level"`

	Email    string `json:"email"`
	Password string `json:"password"`
}

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// LocalPath returns the override file name for name, e.g.
// scraper.json5 -> scraper.local.json5
func LocalPath(name string) string {
	prefix, ext := splitExt(filepath.Base(name))
	local := prefix + ".local"
	if ext != "" {
		local += "." + ext
	}
	return filepath.Join(filepath.Dir(name), local)
}

// ReadFile reads name and merges <name>.local.<ext> over it.
// It returns os.ErrNotExist when neither file exists.
func ReadFile(name string) (File, error) {
	var out File
	found := false

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, err
		}
		found = true
	}

	localPath := LocalPath(name)
	local, err := os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(local) > 0 {
		var override File
		if err := json5.Unmarshal(local, &override); err != nil {
			return out, err
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return out, err
		}
		logging.WithField("local", localPath).Debug("merging config with local overrides")
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

func (f File) apply(cfg *models.Config) error {
	setString(&cfg.Driver, f.Driver)
	setString(&cfg.UserAgent, f.UserAgent)
	setString(&cfg.ChromePath, f.ChromePath)
	setString(&cfg.UserDataDir, f.UserDataDir)
	setString(&cfg.DatabasePath, f.DatabasePath)
	setString(&cfg.OutputDir, f.OutputDir)
	setString(&cfg.LogLevel, f.LogLevel)
	setString(&cfg.Credentials.Email, f.Email)
	setString(&cfg.Credentials.Password, f.Password)

	setBool(&cfg.Headless, f.Headless)
	setBool(&cfg.NoSandbox, f.NoSandbox)
	setBool(&cfg.ExpandSections, f.ExpandSections)
	setBool(&cfg.SaveHTML, f.SaveHTML)
	if f.MaxScrolls != nil {
		cfg.MaxScrolls = *f.MaxScrolls
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"page_load_timeout", f.PageLoadTimeout, &cfg.PageLoadTimeout},
		{"poll_interval", f.PollInterval, &cfg.PollInterval},
		{"scroll_pause", f.ScrollPause, &cfg.ScrollPause},
		{"manual_login_timeout", f.ManualLoginTimeout, &cfg.ManualLoginTimeout},
		{"profile_delay", f.ProfileDelay, &cfg.ProfileDelay},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = v
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
