package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/amishk599/jdprep/internal/config"
	"github.com/amishk599/jdprep/internal/history"
	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/report"
	"github.com/amishk599/jdprep/internal/retry"
	"github.com/amishk599/jdprep/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:          "jdprep",
	Short:        "Turn a job description into an interview prep plan",
	Long:         "jdprep reads a job description, detects the skills it asks for, scores your readiness and builds a study plan, round checklist and likely questions.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JDPREP_CONFIG env var or ./jdprep.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JDPREP_CONFIG env var > "./jdprep.yaml"
func loadConfig(path string) (*config.Config, error) {
	cfg, _, err := config.Resolve(path)
	return cfg, err
}

// setupLogger writes to stderr so reports on stdout stay machine-readable.
func setupLogger(cfg *config.Config, dbg bool) *slog.Logger {
	logLevel := cfg.Logging.SlogLevel()
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mustSetup loads config and builds the logger, exiting on a bad config.
func mustSetup() (*config.Config, *slog.Logger) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg, setupLogger(cfg, debug)
}

// openHistory opens the SQLite history store, retries it while another
// process holds the lock, and wraps it in a Service. The returned close func
// must be called when done.
func openHistory(cfg *config.Config, logger *slog.Logger) (*history.Service, func(), error) {
	s, err := store.NewSQLiteStore(cfg.Database.Path, cfg.Database.HistoryKey, cfg.History.Limit, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("history store opened", "path", cfg.Database.Path, "key", cfg.Database.HistoryKey)
	retrying := retry.NewRetryStore(s, 3, 100*time.Millisecond, logger)
	return history.NewService(retrying, logger), func() { s.Close() }, nil
}

// mustOpenHistory is openHistory for commands that cannot run without it.
func mustOpenHistory(cfg *config.Config, logger *slog.Logger) (*history.Service, func()) {
	svc, closeFn, err := openHistory(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	return svc, closeFn
}

// outputFormat resolves the --format flag, falling back to output.format.
func outputFormat(flag string, cfg *config.Config) (report.Format, error) {
	if flag == "" {
		flag = cfg.Output.Format
	}
	return report.ParseFormat(flag)
}

func writeReport(r *model.AnalysisResult, format report.Format, cfg *config.Config) error {
	return report.Write(os.Stdout, r, format, report.Options{Color: cfg.Output.Color, Width: 100})
}
