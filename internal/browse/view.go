// Package browse is the interactive terminal UI over saved analyses: a
// history picker and a split view for marking skill confidence.
package browse

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/report"
)

// Toggler persists a confidence toggle and returns the updated analysis.
type Toggler interface {
	Toggle(id, skill string) (*model.AnalysisResult, error)
}

const (
	paneSkills = iota
	paneReport
)

// Width of the skill pane's content, excluding its border.
const skillPaneWidth = 30

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245"))

	knowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	practiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")). // bright white
			Background(lipgloss.Color("24"))  // dark blue bg

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// toggledMsg is sent when an async confidence toggle completes.
type toggledMsg struct {
	result *model.AnalysisResult
	skill  string
	err    error
}

// exportedMsg is sent when the text export has been written.
type exportedMsg struct {
	path string
	err  error
}

type skillEntry struct {
	category model.SkillCategory
	skill    string
}

type viewModel struct {
	result  *model.AnalysisResult
	toggler Toggler
	entries []skillEntry

	skillViewport  viewport.Model
	reportViewport viewport.Model
	activePane     int
	cursor         int
	width          int
	height         int
	ready          bool

	saving  bool
	status  string
	errText string

	wantQuit bool
}

func newViewModel(r *model.AnalysisResult, toggler Toggler) viewModel {
	var entries []skillEntry
	for _, c := range model.Categories {
		for _, s := range r.ExtractedSkills[c] {
			entries = append(entries, skillEntry{category: c, skill: s})
		}
	}
	return viewModel{
		result:  r,
		toggler: toggler,
		entries: entries,
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case toggledMsg:
		m.saving = false
		if msg.err != nil {
			m.errText = fmt.Sprintf("saving %s failed: %v", msg.skill, msg.err)
			return m, nil
		}
		m.errText = ""
		m.result = msg.result
		m.status = fmt.Sprintf("%s → %s · score %d/100", msg.skill, m.result.ConfidenceOf(msg.skill), m.result.FinalScore)
		m.recalcContent()
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			m.errText = ""
			m.status = "exported to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m viewModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "b":
		m.wantQuit = false
		return m, tea.Quit
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		m.recalcContent()
		return m, nil
	case "e":
		return m, m.exportCmd()
	}

	if m.activePane == paneSkills {
		switch msg.String() {
		case "up", "k":
			m.cursor = clamp(m.cursor-1, 0, max(len(m.entries)-1, 0))
			m.recalcContent()
			return m, nil
		case "down", "j":
			m.cursor = clamp(m.cursor+1, 0, max(len(m.entries)-1, 0))
			m.recalcContent()
			return m, nil
		case "enter", " ":
			if len(m.entries) == 0 || m.saving || m.toggler == nil {
				return m, nil
			}
			m.saving = true
			return m, m.toggleCmd(m.entries[m.cursor].skill)
		}
	}

	// Forward other keys (pgup/pgdn/home/end) to the active viewport.
	var cmd tea.Cmd
	if m.activePane == paneSkills {
		m.skillViewport, cmd = m.skillViewport.Update(msg)
	} else {
		m.reportViewport, cmd = m.reportViewport.Update(msg)
	}
	return m, cmd
}

func (m viewModel) toggleCmd(skill string) tea.Cmd {
	toggler := m.toggler
	id := m.result.ID
	return func() tea.Msg {
		updated, err := toggler.Toggle(id, skill)
		return toggledMsg{result: updated, skill: skill, err: err}
	}
}

func (m viewModel) exportCmd() tea.Cmd {
	r := m.result
	return func() tea.Msg {
		path := report.ExportFilename(r)
		err := os.WriteFile(path, []byte(report.ExportText(r)), 0644)
		return exportedMsg{path: path, err: err}
	}
}

func (m *viewModel) recalcLayout() {
	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)
	// 2 border chars per pane + 1 gap between panes.
	reportWidth := max(m.width-skillPaneWidth-5, 20)

	if !m.ready {
		m.skillViewport = viewport.New(skillPaneWidth, paneHeight)
		m.reportViewport = viewport.New(reportWidth, paneHeight)
		m.ready = true
	} else {
		m.skillViewport.Width = skillPaneWidth
		m.skillViewport.Height = paneHeight
		m.reportViewport.Width = reportWidth
		m.reportViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *viewModel) recalcContent() {
	if !m.ready {
		return
	}
	content, cursorLine := renderSkills(m.result, m.entries, m.cursor, m.activePane == paneSkills)
	m.skillViewport.SetContent(content)
	m.reportViewport.SetContent(report.Render(m.result, report.Options{Color: true, Width: m.reportViewport.Width}))

	vp := &m.skillViewport
	if cursorLine < vp.YOffset {
		vp.SetYOffset(cursorLine)
	} else if cursorLine >= vp.YOffset+vp.Height {
		vp.SetYOffset(cursorLine - vp.Height + 1)
	}
}

// renderSkills draws the skill list grouped by category and reports the line
// the cursor is on.
func renderSkills(r *model.AnalysisResult, entries []skillEntry, cursor int, isActive bool) (string, int) {
	if len(entries) == 0 {
		return "  (no skills)", 0
	}

	var b strings.Builder
	line, cursorLine := 0, 0
	var current model.SkillCategory
	for i, e := range entries {
		if i == 0 || e.category != current {
			if i > 0 {
				b.WriteByte('\n')
				line++
			}
			b.WriteString(categoryStyle.Render(e.category.Label()) + "\n")
			line++
			current = e.category
		}

		conf := r.ConfidenceOf(e.skill)
		mark, st := "○", practiceStyle
		if conf == model.ConfidenceKnow {
			mark, st = "✓", knowStyle
		}
		text := fmt.Sprintf("%s %s", mark, e.skill)

		if isActive && i == cursor {
			b.WriteString("> " + selectedStyle.Render(text) + "\n")
			cursorLine = line
		} else {
			b.WriteString("  " + st.Render(text) + "\n")
		}
		line++
	}
	return strings.TrimRight(b.String(), "\n"), cursorLine
}

func (m viewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	skillHeader := fmt.Sprintf(" Skills (%d)", len(m.entries))
	reportHeader := fmt.Sprintf(" Report · %d/100", m.result.FinalScore)

	skillBorder, reportBorder := inactiveBorderStyle, inactiveBorderStyle
	skillHeaderSt, reportHeaderSt := inactiveHeaderStyle, inactiveHeaderStyle
	if m.activePane == paneSkills {
		skillBorder, skillHeaderSt = activeBorderStyle, activeHeaderStyle
	} else {
		reportBorder, reportHeaderSt = activeBorderStyle, activeHeaderStyle
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(skillPaneWidth+2).Render(skillHeaderSt.Render(skillHeader)),
		" ",
		lipgloss.NewStyle().Width(m.reportViewport.Width+2).Render(reportHeaderSt.Render(reportHeader)),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		skillBorder.Width(skillPaneWidth).Render(m.skillViewport.View()),
		" ",
		reportBorder.Width(m.reportViewport.Width).Render(m.reportViewport.View()),
	)

	statusText := " enter/space toggle  ←/→/Tab switch  ↑/↓ move  e export  esc back  q quit"
	switch {
	case m.saving:
		statusText = " saving..."
	case m.errText != "":
		statusText = " " + errorStyle.Render("⚠ "+m.errText)
	case m.status != "":
		statusText = " " + m.status + "   " + statusText
	}
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RunReportView launches the split view for one analysis. Toggles persist
// through toggler as they happen.
// Returns wantQuit=true if the user pressed q/ctrl+c, false if they pressed esc to return to the picker.
func RunReportView(r *model.AnalysisResult, toggler Toggler) (bool, error) {
	m := newViewModel(r, toggler)

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	final := result.(viewModel)
	return final.wantQuit, nil
}
