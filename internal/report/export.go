// Package report renders an analysis for terminals, files and other tools.
package report

import (
	"fmt"
	"strings"

	"github.com/amishk599/jdprep/internal/model"
)

const maxWeakSkills = 3

// WeakSkills returns up to three skills, in flattened order, whose displayed
// status is practice. Skills without a recorded confidence count as practice.
func WeakSkills(r *model.AnalysisResult) []string {
	var weak []string
	for _, s := range r.FlatSkills {
		if r.ConfidenceOf(s) == model.ConfidencePractice {
			weak = append(weak, s)
			if len(weak) == maxWeakSkills {
				break
			}
		}
	}
	return weak
}

// ExportText renders the plain-text report that `jdprep export` writes.
func ExportText(r *model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("Placement Readiness Report\n")
	fmt.Fprintf(&b, "Company: %s\n", orNA(r.Company))
	fmt.Fprintf(&b, "Role: %s\n", orNA(r.Role))
	fmt.Fprintf(&b, "Score: %d/100\n\n", r.FinalScore)

	b.WriteString("Skills:\n")
	for i, s := range r.FlatSkills {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s (%s)", s, r.ConfidenceOf(s))
	}
	b.WriteString("\n\n")

	b.WriteString("7-Day Plan:\n")
	for i, d := range r.Plan {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", d.Day, d.Focus)
		for _, t := range d.Tasks {
			fmt.Fprintf(&b, "\n  - %s", t)
		}
	}
	b.WriteString("\n\n")

	b.WriteString("Interview Questions:\n")
	for i, q := range r.Questions {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, q)
	}

	return b.String()
}

// ExportFilename is the default file name for an exported report.
func ExportFilename(r *model.AnalysisResult) string {
	name := strings.TrimSpace(r.Company)
	if name == "" {
		name = "job"
	}
	name = strings.Map(func(c rune) rune {
		switch c {
		case '/', '\\', ':', 0:
			return '-'
		}
		return c
	}, name)
	return "readiness-report-" + name + ".txt"
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
