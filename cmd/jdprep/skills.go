package main

import (
	"fmt"
	"strings"

	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/skills"
	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skill taxonomy",
	Long:  "Prints every category with the keywords it detects, in matching order.",
	Args:  cobra.NoArgs,
	RunE:  runSkills,
}

func init() {
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
	fmt.Printf("%-10s %-18s %-6s %s\n", "Category", "Label", "Count", "Keywords")
	fmt.Println(strings.Repeat("─", 80))

	total := 0
	for _, c := range model.Categories {
		keywords := skills.Default.Keywords(c)
		total += len(keywords)
		list := strings.Join(keywords, ", ")
		if c == model.CategoryOther && len(keywords) == 0 {
			list = "(fallback) " + strings.Join(skills.FallbackSkills, ", ")
		}
		fmt.Printf("%-10s %-18s %-6d %s\n", c, c.Label(), len(keywords), list)
	}

	fmt.Printf("\nTotal: %d keywords in %d categories\n", total, len(model.Categories))
	return nil
}
