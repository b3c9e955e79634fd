package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jdprep/internal/model"
)

const (
	defaultWidth  = 80
	labelWidth    = 12
	scoreBarCells = 20
)

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	section  lipgloss.Style
	divider  lipgloss.Style
	know     lipgloss.Style
	practice lipgloss.Style
	hint     lipgloss.Style
	barFull  lipgloss.Style
	barEmpty lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain, label: plain.Width(labelWidth), value: plain, section: plain,
			divider: plain, know: plain, practice: plain, hint: plain,
			barFull: plain, barEmpty: plain,
		}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),
		label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(labelWidth),
		value: lipgloss.NewStyle(),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		divider: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		know: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")), // green
		practice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")), // amber
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),
		barFull: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
		barEmpty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
	}
}

// Render draws the report for a terminal. With opts.Color unset the output
// carries no escape sequences.
func Render(r *model.AnalysisResult, opts Options) string {
	st := newStyles(opts.Color)
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	wrapWidth := max(width-6, 20)

	var b strings.Builder
	field := func(label, value string) {
		if value == "" {
			return
		}
		indent := "\n" + strings.Repeat(" ", labelWidth)
		b.WriteString(st.label.Render(label))
		b.WriteString(st.value.Render(strings.ReplaceAll(value, "\n", indent)))
		b.WriteByte('\n')
	}
	section := func(label string) {
		fill := strings.Repeat("─", max(wrapWidth-len(label)-4, 3))
		b.WriteByte('\n')
		b.WriteString(st.divider.Render("── ") + st.section.Render(label) + st.divider.Render(" "+fill))
		b.WriteString("\n\n")
	}

	b.WriteString(st.title.Render("Placement Readiness Report"))
	b.WriteString("\n\n")
	field("Company", orNA(r.Company))
	field("Role", orNA(r.Role))
	field("Score", fmt.Sprintf("%s %d/100 (base %d)", scoreBar(r.FinalScore, st), r.FinalScore, r.BaseScore))
	field("Size", r.CompanyIntel.Size)
	field("Industry", r.CompanyIntel.Industry)
	field("Focus", wordWrap(r.CompanyIntel.Focus, wrapWidth-labelWidth))
	field("ID", r.ID)

	section("Skills Detected")
	for _, c := range model.Categories {
		list := r.ExtractedSkills[c]
		if len(list) == 0 {
			continue
		}
		tags := make([]string, 0, len(list))
		for _, s := range list {
			tags = append(tags, skillTag(s, r.ConfidenceOf(s), st))
		}
		b.WriteString(st.section.Render(c.Label()) + "\n")
		b.WriteString("  " + strings.Join(tags, "  ") + "\n")
	}

	if weak := WeakSkills(r); len(weak) > 0 {
		b.WriteByte('\n')
		b.WriteString(st.hint.Render(wordWrap(
			"Action next: you marked "+strings.Join(weak, ", ")+" as needing practice. Start with Day 1 of your plan now!",
			wrapWidth,
		)))
		b.WriteByte('\n')
	}

	section("7-Day Plan")
	for _, d := range r.Plan {
		b.WriteString(st.title.Render(d.Day+": "+d.Focus) + "\n")
		for _, t := range d.Tasks {
			b.WriteString("  • " + wordWrap(t, wrapWidth-4) + "\n")
		}
	}

	section("Round Checklist")
	for _, c := range r.Checklist {
		b.WriteString(st.title.Render(c.RoundTitle) + "\n")
		for _, item := range c.Items {
			b.WriteString("  ☐ " + wordWrap(item, wrapWidth-4) + "\n")
		}
	}

	section("Interview Rounds")
	for i, rm := range r.RoundMapping {
		b.WriteString(st.title.Render(fmt.Sprintf("%d. %s", i+1, rm.RoundTitle)))
		b.WriteString(st.hint.Render("  "+rm.Type) + "\n")
		if rm.Description != "" {
			b.WriteString("   " + wordWrap(rm.Description, wrapWidth-3) + "\n")
		}
		if len(rm.FocusAreas) > 0 {
			b.WriteString("   Focus: " + strings.Join(rm.FocusAreas, ", ") + "\n")
		}
		if rm.Rationale != "" {
			b.WriteString(st.hint.Render("   Why: "+rm.Rationale) + "\n")
		}
	}

	section("Likely Questions")
	for i, q := range r.Questions {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, wordWrap(q, wrapWidth-4))
	}

	return strings.TrimRight(b.String(), "\n")
}

func skillTag(skill string, c model.Confidence, st styles) string {
	if c == model.ConfidenceKnow {
		return st.know.Render("✓ " + skill)
	}
	return st.practice.Render("○ " + skill)
}

func scoreBar(score int, st styles) string {
	filled := max(0, min(score, 100)) * scoreBarCells / 100
	return st.barFull.Render(strings.Repeat("█", filled)) +
		st.barEmpty.Render(strings.Repeat("░", scoreBarCells-filled))
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
