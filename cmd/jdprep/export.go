package main

import (
	"fmt"
	"os"

	"github.com/amishk599/jdprep/internal/report"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a saved analysis as a plain-text report",
	Long:  "Writes the plain-text readiness report to --out, or to readiness-report-<company>.txt in the current directory. Use --out - for stdout.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default: readiness-report-<company|job>.txt)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger := mustSetup()
	svc, closeFn := mustOpenHistory(cfg, logger)
	defer closeFn()

	r, err := svc.Get(args[0])
	if err != nil {
		return err
	}

	text := report.ExportText(r)
	if exportOut == "-" {
		fmt.Println(text)
		return nil
	}

	path := exportOut
	if path == "" {
		path = report.ExportFilename(r)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	logger.Info("report exported", "id", r.ID, "path", path)
	return nil
}
