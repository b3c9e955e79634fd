package report

import (
	"fmt"
	"strings"

	"github.com/amishk599/jdprep/internal/model"
)

// Markdown renders the full report as a Markdown document.
func Markdown(r *model.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Placement Readiness: %s\n\n", orNA(r.Company))
	fmt.Fprintf(&b, "- **Role:** %s\n", orNA(r.Role))
	fmt.Fprintf(&b, "- **Score:** %d/100 (base %d)\n", r.FinalScore, r.BaseScore)
	fmt.Fprintf(&b, "- **Company:** %s · %s\n", r.CompanyIntel.Size, r.CompanyIntel.Industry)
	fmt.Fprintf(&b, "- **Focus:** %s\n", r.CompanyIntel.Focus)
	fmt.Fprintf(&b, "- **Analyzed:** %s\n\n", r.CreatedAt.Format("2006-01-02 15:04 MST"))

	b.WriteString("## Skills Detected\n\n")
	for _, c := range model.Categories {
		list := r.ExtractedSkills[c]
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(&b, "**%s:** ", c.Label())
		for i, s := range list {
			if i > 0 {
				b.WriteString(", ")
			}
			mark := " "
			if r.ConfidenceOf(s) == model.ConfidenceKnow {
				mark = "x"
			}
			fmt.Fprintf(&b, "[%s] %s", mark, s)
		}
		b.WriteString("\n\n")
	}

	if weak := WeakSkills(r); len(weak) > 0 {
		fmt.Fprintf(&b, "> **Action next:** practice %s, then start Day 1 of the plan.\n\n", strings.Join(weak, ", "))
	}

	b.WriteString("## 7-Day Plan\n\n")
	for _, d := range r.Plan {
		fmt.Fprintf(&b, "### %s: %s\n\n", d.Day, d.Focus)
		for _, t := range d.Tasks {
			fmt.Fprintf(&b, "- %s\n", t)
		}
		b.WriteByte('\n')
	}

	b.WriteString("## Round Checklist\n\n")
	for _, c := range r.Checklist {
		fmt.Fprintf(&b, "### %s\n\n", c.RoundTitle)
		for _, item := range c.Items {
			fmt.Fprintf(&b, "- [ ] %s\n", item)
		}
		b.WriteByte('\n')
	}

	b.WriteString("## Interview Rounds\n\n")
	for i, rm := range r.RoundMapping {
		fmt.Fprintf(&b, "%d. **%s** (%s): %s\n", i+1, rm.RoundTitle, rm.Type, rm.Description)
		if len(rm.FocusAreas) > 0 {
			fmt.Fprintf(&b, "   - Focus: %s\n", strings.Join(rm.FocusAreas, ", "))
		}
		if rm.Rationale != "" {
			fmt.Fprintf(&b, "   - Why: %s\n", rm.Rationale)
		}
	}
	b.WriteByte('\n')

	b.WriteString("## Likely Questions\n\n")
	for i, q := range r.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}

	return b.String()
}
