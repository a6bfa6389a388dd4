package models

import "time"

// Config represents the application configuration
type Config struct {
	Driver      string
	Headless    bool
	NoSandbox   bool
	UserAgent   string
	ChromePath  string
	UserDataDir string

	PageLoadTimeout    time.Duration
	PollInterval       time.Duration
	ScrollPause        time.Duration
	MaxScrolls         int
	ExpandSections     bool
	ManualLoginTimeout time.Duration
	ProfileDelay       time.Duration

	DatabasePath string
	OutputDir    string
	SaveHTML     bool
	LogLevel     string

	Credentials Credentials
}
