package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amishk599/jdprep/internal/filter"
	"github.com/spf13/cobra"
)

var (
	listCompanies []string
	listSkills    []string
	showFormat    string
	clearYes      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show or clear saved analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved analyses, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved analysis",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().StringSliceVar(&listCompanies, "company", nil, "only analyses whose company contains this text (repeatable)")
	historyListCmd.Flags().StringSliceVar(&listSkills, "skill", nil, "only analyses that detected this skill (repeatable)")
	historyShowCmd.Flags().StringVarP(&showFormat, "format", "o", "", "output format: text, markdown, json, yaml (default: output.format)")
	historyClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "confirm deleting the whole history")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, logger := mustSetup()
	svc, closeFn := mustOpenHistory(cfg, logger)
	defer closeFn()

	all, err := svc.List()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No saved analyses. Run `jdprep analyze` to create one.")
		return nil
	}

	items := filter.NewCompanyAndSkillFilter(listCompanies, listSkills).Apply(all)
	if len(items) == 0 {
		fmt.Printf("No analyses match (%d saved).\n", len(all))
		return nil
	}

	fmt.Printf("%-15s %-22s %-20s %-7s %s\n", "ID", "Company", "Role", "Score", "Analyzed")
	fmt.Println(strings.Repeat("─", 80))

	now := time.Now()
	for _, r := range items {
		fmt.Printf("%-15s %-22s %-20s %-7s %s\n",
			r.ID, orDash(r.Company), orDash(r.Role), fmt.Sprintf("%d/100", r.FinalScore), humanAge(now.Sub(r.CreatedAt)))
	}

	fmt.Printf("\nTotal: %d analyses (%d saved)\n", len(items), len(all))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg, logger := mustSetup()

	format, err := outputFormat(showFormat, cfg)
	if err != nil {
		return err
	}

	svc, closeFn := mustOpenHistory(cfg, logger)
	defer closeFn()

	r, err := svc.Get(args[0])
	if err != nil {
		return err
	}
	return writeReport(r, format, cfg)
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to delete history without --yes")
	}

	cfg, logger := mustSetup()
	svc, closeFn := mustOpenHistory(cfg, logger)
	defer closeFn()

	if err := svc.Clear(); err != nil {
		return err
	}
	fmt.Println("History cleared.")
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func humanAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
