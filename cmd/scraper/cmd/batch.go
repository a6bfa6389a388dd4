package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/orchestrator"
	"linkedin-scraper/internal/record"
	"linkedin-scraper/internal/scraper"
	"linkedin-scraper/internal/storage"
	"linkedin-scraper/internal/utils"
)

var (
	urlsFile    string
	resumeRunID string
	batchOut    string
	batchFormat string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Scrape every profile in a URL list with one browser session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if urlsFile == "" && resumeRunID == "" {
			return fmt.Errorf("--urls or --resume is required")
		}
		mode := models.LoginNone
		if loginMode != "" {
			var err error
			if mode, err = models.ParseLoginMode(loginMode); err != nil {
				return err
			}
		}
		if saveHTML {
			cfg.SaveHTML = true
		}
		var format record.Format
		if batchFormat != "" {
			var err error
			if format, err = record.ParseFormat(batchFormat); err != nil {
				return err
			}
		}

		as, err := orchestrator.New(cfg)
		if err != nil {
			return err
		}
		defer as.Close()
		as.SetOutput(cmd.OutOrStdout())

		start := time.Now()
		_, err = as.Run(cmd.Context(), orchestrator.BatchOptions{
			URLsFile:    urlsFile,
			ResumeRunID: resumeRunID,
			OutputPath:  batchOut,
			Format:      format,
			Login: scraper.LoginOptions{
				Mode:              mode,
				ContinueOnFailure: continueOnFailure,
				Out:               cmd.OutOrStdout(),
			},
		})
		fmt.Fprintf(cmd.OutOrStdout(), "🎉 Finished in %s\n", utils.FormatDuration(time.Since(start)))
		return err
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent batch runs from the ledger.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := storage.NewDBStorage(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer ds.Close()

		runs, err := ds.RunRepo.ListRuns(20)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Run", "Status", "Created", "Done", "Left", "Output"})
		for _, r := range runs {
			stats, err := ds.ProfileRepo.GetRunStats(r.ID)
			if err != nil {
				return err
			}
			t.AppendRow(table.Row{
				r.ID, r.Status, r.CreatedAt.Local().Format("2006-01-02 15:04"),
				stats[string(models.URLStatusSuccess)],
				stats[string(models.URLStatusPending)] + stats[string(models.URLStatusFailed)],
				r.OutputPath,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&urlsFile, "urls", "", "file with one profile URL per line")
	batchCmd.Flags().StringVar(&resumeRunID, "resume", "", "continue the pending and failed URLs of a run")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "output file (default batch_<run>.<format>)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "output format: json, csv or xlsx (default from --out, else json)")
	batchCmd.Flags().BoolVar(&saveHTML, "save-html", false, "keep each rendered page in the output dir")
	rootCmd.AddCommand(batchCmd, runsCmd)
}
