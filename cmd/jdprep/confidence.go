package main

import (
	"fmt"

	"github.com/amishk599/jdprep/internal/history"
	"github.com/amishk599/jdprep/internal/model"
	"github.com/spf13/cobra"
)

var confidenceCmd = &cobra.Command{
	Use:   "confidence",
	Short: "Mark how well you know a detected skill",
	Long:  "Each skill marked know adds 2 to the final score and each skill marked practice subtracts 2. The base score never changes.",
}

var confidenceSetCmd = &cobra.Command{
	Use:   "set <id> <skill> <know|practice>",
	Short: "Set the confidence for one skill",
	Args:  cobra.ExactArgs(3),
	RunE:  runConfidenceSet,
}

var confidenceToggleCmd = &cobra.Command{
	Use:   "toggle <id> <skill>",
	Short: "Flip a skill between know and practice",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfidenceToggle,
}

func init() {
	confidenceCmd.AddCommand(confidenceSetCmd, confidenceToggleCmd)
	rootCmd.AddCommand(confidenceCmd)
}

func runConfidenceSet(cmd *cobra.Command, args []string) error {
	cfg, logger := mustSetup()
	svc, closeFn := mustOpenHistory(cfg, logger)
	defer closeFn()

	r, err := svc.SetConfidence(args[0], args[1], model.Confidence(args[2]))
	if err != nil {
		return err
	}
	printConfidence(r, args[1])
	return nil
}

func runConfidenceToggle(cmd *cobra.Command, args []string) error {
	cfg, logger := mustSetup()
	svc, closeFn := mustOpenHistory(cfg, logger)
	defer closeFn()

	r, err := svc.Toggle(args[0], args[1])
	if err != nil {
		return err
	}
	printConfidence(r, args[1])
	return nil
}

func printConfidence(r *model.AnalysisResult, skill string) {
	fmt.Printf("%s: %s\n", skill, r.ConfidenceOf(history.NormalizeSkill(skill)))
	fmt.Printf("Final score: %d/100 (base %d)\n", r.FinalScore, r.BaseScore)
}
