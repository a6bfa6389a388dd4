package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"linkedin-scraper/internal/logging"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/record"
	"linkedin-scraper/internal/scraper"
	"linkedin-scraper/internal/storage"
	"linkedin-scraper/internal/utils"
)

// Scraper is a ProfileScraper holding a browser that must be released
type Scraper interface {
	ProfileScraper
	Close() error
}

// OpenFunc starts a logged in scraper
type OpenFunc func(ctx context.Context, cfg models.Config, login scraper.LoginOptions) (Scraper, error)

func openBrowserScraper(ctx context.Context, cfg models.Config, login scraper.LoginOptions) (Scraper, error) {
	s, err := scraper.Open(ctx, cfg, login)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// BatchOptions selects what a batch run scrapes and where it writes
type BatchOptions struct {
	URLsFile    string
	ResumeRunID string
	OutputPath  string
	Login       scraper.LoginOptions

	// Format of the output file, taken from the OutputPath extension when empty
	Format record.Format
}

// AutoScraper runs ledger-backed batches
type AutoScraper struct {
	config            models.Config
	dbStorage         *storage.DBStorage
	stateManager      *StateManager
	open              OpenFunc
	out               io.Writer
	shutdownRequested int32
}

// New opens the ledger database named in config
func New(config models.Config) (*AutoScraper, error) {
	ds, err := storage.NewDBStorage(config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return &AutoScraper{
		config:       config,
		dbStorage:    ds,
		stateManager: NewStateManager(ds),
		open:         openBrowserScraper,
		out:          os.Stdout,
	}, nil
}

// SetOpenFunc replaces how the browser scraper is started
func (as *AutoScraper) SetOpenFunc(fn OpenFunc) {
	as.open = fn
}

// SetOutput redirects console output
func (as *AutoScraper) SetOutput(w io.Writer) {
	as.out = w
}

// GetDBStorage returns the database storage
func (as *AutoScraper) GetDBStorage() *storage.DBStorage {
	return as.dbStorage
}

// Close closes the ledger database
func (as *AutoScraper) Close() error {
	return as.dbStorage.Close()
}

// including interrupts; the output file holds every record the run has
// including interrupts; the JSON array holds every record the run has
// produced, earlier resumed attempts included.
func (as *AutoScraper) Run(ctx context.Context, opts BatchOptions) (*models.BatchResult, error) {
	urls, outputPath, err := as.prepare(opts)
	if err != nil {
		return nil, err
	}
	runID := as.stateManager.RunID()
	log := logging.WithField("run_id", runID)

	fmt.Fprintf(as.out, "🚀 Run %s: %d URLs to scrape\n", runID, len(urls))
	fmt.Fprintln(as.out, strings.Repeat("=", 60))

	stop := utils.SetupSignalHandling(&as.shutdownRequested, func() {
		fmt.Fprintf(as.out, "💾 Progress is saved, resume with --resume %s\n", runID)
	})
	defer stop()

	login := opts.Login
	if login.Cookies == nil {
		login.Cookies = storage.NewCookieJar(as.dbStorage, storage.DefaultSessionKey)
	}

	res := &models.BatchResult{RunID: runID, Records: []models.ProfileRecord{}}
	if len(urls) > 0 {
		s, err := as.open(ctx, as.config, login)
		if err != nil {
			if finishErr := as.stateManager.Finish(true); finishErr != nil {
				log.Warnf("failed to close run: %v", finishErr)
			}
			return nil, err
		}

		bp := NewBatchProcessor(s, as.stateManager, as.config.ProfileDelay)
		bp.SetShutdownFlag(&as.shutdownRequested)
		bp.SetOutput(as.out)
		res = bp.Run(ctx, urls)

		if err := s.Close(); err != nil {
			log.Warnf("failed to close browser: %v", err)
		}
	}

	if err := as.stateManager.Finish(res.Interrupted); err != nil {
		log.Warnf("failed to close run: %v", err)
	}

	all, err := as.stateManager.Records()
	if err != nil {
		return res, err
	}
	format := opts.Format
	if format == "" {
		format = record.FormatForPath(outputPath)
	}
	if err := record.WriteList(outputPath, format, all); err != nil {
		return res, err
	}

	as.printFinalResults(res, len(all), outputPath)
	return res, nil
}

func (as *AutoScraper) prepare(opts BatchOptions) ([]string, string, error) {
	outputPath := opts.OutputPath

	if opts.ResumeRunID != "" {
		run, urls, err := as.stateManager.ResumeRun(opts.ResumeRunID)
		if err != nil {
			return nil, "", err
		}
		if outputPath == "" {
			outputPath = run.OutputPath
		}
		if outputPath == "" {
			outputPath = as.defaultOutputPath(run.ID, opts.Format)
		}
		return urls, outputPath, nil
	}

	if opts.URLsFile == "" {
		return nil, "", errors.New("a urls file or a run id to resume is required")
	}
	id, urls, err := as.stateManager.StartRun(opts.URLsFile)
	if err != nil {
		return nil, "", err
	}
	if outputPath == "" {
		outputPath = as.defaultOutputPath(id, opts.Format)
	}
	if err := as.stateManager.SetOutputPath(outputPath); err != nil {
		return nil, "", err
	}
	return urls, outputPath, nil
}

func (as *AutoScraper) defaultOutputPath(runID string, format record.Format) string {
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	if format == "" {
		format = record.FormatJSON
	}
	return filepath.Join(as.config.OutputDir, fmt.Sprintf("batch_%s.%s", short, format))
}

// printFinalResults prints the final batch results
func (as *AutoScraper) printFinalResults(res *models.BatchResult, written int, outputPath string) {
	fmt.Fprintln(as.out, "\n"+strings.Repeat("=", 60))

	t := table.NewWriter()
	t.SetOutputMirror(as.out)
	t.AppendHeader(table.Row{"Run", "Processed", "Success", "Failed", "Elapsed"})
	elapsed := time.Duration(0)
	if !res.Stats.StartTime.IsZero() {
		elapsed = time.Since(res.Stats.StartTime)
	}
	t.AppendRow(table.Row{res.RunID, res.Stats.Processed, res.Stats.Success, res.Stats.Failed, utils.FormatDuration(elapsed)})
	t.SetStyle(table.StyleRounded)
	t.Render()

	if len(res.Failures) > 0 {
		ft := table.NewWriter()
		ft.SetOutputMirror(as.out)
		ft.AppendHeader(table.Row{"Failed URL", "Error"})
		for _, f := range res.Failures {
			ft.AppendRow(table.Row{f.URL, f.Err.Error()})
		}
		ft.SetStyle(table.StyleRounded)
		ft.Render()
	}

	if stats, err := as.stateManager.Stats(); err == nil && stats["pending"]+stats["failed"] > 0 {
		fmt.Fprintf(as.out, "⏳ %d URLs left, resume with --resume %s\n", stats["pending"]+stats["failed"], res.RunID)
	}
	fmt.Fprintf(as.out, "💾 %d records written to %s\n", written, outputPath)
}
