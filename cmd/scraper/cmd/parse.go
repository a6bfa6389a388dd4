package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"linkedin-scraper/internal/diagnose"
	"linkedin-scraper/internal/extractor"
	"linkedin-scraper/internal/record"
	"linkedin-scraper/internal/scraper"
)

var (
	parseURL string
	parseOut string
)

var parseCmd = &cobra.Command{
	Use:   "parse <html-file>",
	Short: "Extract a record from a saved profile page without a browser.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := parseURL
		if url == "" {
			url = args[0]
		}
		rec, err := scraper.ParseHTMLFile(url, args[0])
		if err != nil {
			return err
		}
		if err := printRecord(cmd.OutOrStdout(), rec); err != nil {
			return err
		}
		if parseOut != "" {
			if err := record.WriteJSON(parseOut, rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "💾 Saved to %s\n", parseOut)
		}
		return nil
	},
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <html-file>",
	Short: "Report which fields the extractors find in a saved page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := extractor.ParseFile(args[0])
		if err != nil {
			return err
		}
		diagnose.Inspect(p).Render(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseURL, "url", "", "profile URL to store in the record (default: the file path)")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "write the record to this JSON file")
	rootCmd.AddCommand(parseCmd, diagnoseCmd)
}
