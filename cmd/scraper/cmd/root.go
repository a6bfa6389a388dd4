package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"linkedin-scraper/internal/config"
	"linkedin-scraper/internal/logging"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/utils"
)

var (
	configPath        string
	headless          bool
	driver            string
	loginMode         string
	logLevel          string
	continueOnFailure bool

	cfg models.Config
)

var rootCmd = &cobra.Command{
	Use:           "scraper",
	Short:         "scraper extracts structured data from LinkedIn profile pages.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("headless") {
			cfg.Headless = headless
		}
		if flags.Changed("driver") {
			cfg.Driver = driver
		}
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		return logging.SetLevel(cfg.LogLevel)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "scraper.json5", "config file (json5); a .local variant next to it overrides it")
	pf.BoolVar(&headless, "headless", false, "run the browser without a window")
	pf.StringVar(&driver, "driver", config.DriverChromedp, "browser driver: chromedp or rod")
	pf.StringVar(&loginMode, "login", "", "login method: none, manual, credentials, google or microsoft")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.BoolVar(&continueOnFailure, "continue-on-login-failure", false, "scrape anonymously when login fails")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		utils.PrintErr("❌ " + err.Error())
		os.Exit(1)
	}
}
