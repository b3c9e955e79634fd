package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amishk599/jdprep/internal/analyzer"
	"github.com/amishk599/jdprep/internal/history"
	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/store"
	"github.com/spf13/cobra"
)

var (
	analyzeFile    string
	analyzeCompany string
	analyzeRole    string
	analyzeFormat  string
	analyzeDryRun  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job description",
	Long:  "Reads a job description from --file or stdin, prints the preparation report and saves it to history.",
	Args:  cobra.NoArgs,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the job description from this file (default: stdin)")
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "company name (default: defaults.company)")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "role title (default: defaults.role)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "o", "", "output format: text, markdown, json, yaml (default: output.format)")
	analyzeCmd.Flags().BoolVar(&analyzeDryRun, "dry-run", false, "print the report without saving it")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger := mustSetup()

	format, err := outputFormat(analyzeFormat, cfg)
	if err != nil {
		return err
	}

	text, err := readJobDescription(analyzeFile, os.Stdin)
	if err != nil {
		return err
	}

	company := strings.TrimSpace(analyzeCompany)
	if company == "" {
		company = cfg.Defaults.Company
	}
	role := strings.TrimSpace(analyzeRole)
	if role == "" {
		role = cfg.Defaults.Role
	}

	result, err := analyzer.NewAnalyzer(logger).Analyze(text, company, role)
	if errors.Is(err, model.ErrEmptyInput) {
		return fmt.Errorf("job description is empty")
	}
	if err != nil {
		return fmt.Errorf("analyzing job description: %w", err)
	}

	// In dry-run mode, use a NopStore so nothing is persisted.
	var svc *history.Service
	if analyzeDryRun {
		logger.Info("dry-run mode enabled, analysis will not be saved")
		svc = history.NewService(store.NewNopStore(), logger)
	} else {
		var closeFn func()
		svc, closeFn = mustOpenHistory(cfg, logger)
		defer closeFn()
	}
	if err := svc.Save(result); err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}

	return writeReport(result, format, cfg)
}

// readJobDescription reads path, or stdin when path is empty or "-". An
// interactive stdin with no file is rejected so the command never hangs.
func readJobDescription(path string, stdin *os.File) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading job description: %w", err)
		}
		return string(data), nil
	}

	if path == "" {
		if info, err := stdin.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no job description: pass --file or pipe text on stdin")
		}
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading job description from stdin: %w", err)
	}
	return string(data), nil
}
