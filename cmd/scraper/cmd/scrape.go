package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"linkedin-scraper/internal/logging"
	"linkedin-scraper/internal/navigator"
	"linkedin-scraper/internal/record"
	"linkedin-scraper/internal/scraper"
	"linkedin-scraper/internal/storage"
	"linkedin-scraper/internal/utils"
)

var (
	scrapeOut string
	saveHTML  bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [profile-url]",
	Short: "Scrape one profile; prompts for the URL and login method when not given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		p := newPrompter(cmd.InOrStdin(), out)

		var url string
		if len(args) == 1 {
			url = args[0]
		} else {
			var err error
			if url, err = p.ask("Profile URL: "); err != nil {
				return err
			}
		}
		if err := navigator.ValidateURL(url); err != nil {
			return err
		}

		mode, err := resolveLogin(p)
		if err != nil {
			return err
		}
		if saveHTML {
			cfg.SaveHTML = true
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		var shutdown int32
		stop := utils.SetupSignalHandling(&shutdown, cancel)
		defer stop()

		login := scraper.LoginOptions{Mode: mode, ContinueOnFailure: continueOnFailure, Out: out}
		if ds, err := storage.NewDBStorage(cfg.DatabasePath); err != nil {
			logging.Warnf("session reuse disabled: %v", err)
		} else {
			defer ds.Close()
			login.Cookies = storage.NewCookieJar(ds, storage.DefaultSessionKey)
		}

		s, err := scraper.Open(ctx, cfg, login)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.Scrape(ctx, url)
		if err != nil {
			return err
		}
		if err := printRecord(out, rec); err != nil {
			return err
		}

		if scrapeOut != "" {
			if err := record.WriteJSON(scrapeOut, rec); err != nil {
				return err
			}
			fmt.Fprintf(out, "💾 Saved to %s\n", scrapeOut)
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeOut, "out", "o", "", "write the record to this JSON file")
	scrapeCmd.Flags().BoolVar(&saveHTML, "save-html", false, "keep the rendered page next to the output")
	rootCmd.AddCommand(scrapeCmd)
}
