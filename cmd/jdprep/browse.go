package main

import (
	"fmt"
	"os"

	"github.com/amishk599/jdprep/internal/browse"
	"github.com/amishk599/jdprep/internal/filter"
	"github.com/spf13/cobra"
)

var (
	browseCompanies []string
	browseSkills    []string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse saved analyses interactively (TUI)",
	Long:  "Shows the history picker, then a split view where enter or space toggles a skill between know and practice.",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringSliceVar(&browseCompanies, "company", nil, "only analyses whose company contains this text (repeatable)")
	browseCmd.Flags().StringSliceVar(&browseSkills, "skill", nil, "only analyses that detected this skill (repeatable)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Browse runs a TUI and any log output while the alt-screen is up
	// corrupts the display.
	silentLogger := discardLogger()
	svc, closeFn, err := openHistory(cfg, silentLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer closeFn()

	historyFilter := filter.NewCompanyAndSkillFilter(browseCompanies, browseSkills)
	for {
		// Reload each round so scores changed in the view show in the picker.
		all, err := svc.List()
		if err != nil {
			return err
		}
		items := historyFilter.Apply(all)
		if len(items) == 0 {
			fmt.Println("No matching analyses. Run `jdprep analyze` to create one.")
			return nil
		}

		choice, err := browse.RunPicker(items)
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}
		if choice < 0 {
			return nil
		}

		wantQuit, err := browse.RunReportView(&items[choice], svc)
		if err != nil {
			return fmt.Errorf("report view: %w", err)
		}
		if wantQuit {
			return nil
		}
		// else: loop → back to picker
	}
}
