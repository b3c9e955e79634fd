package browse

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jdprep/internal/model"
)

const (
	choiceNone = -1
	choiceQuit = -2
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

type pickerModel struct {
	items  []model.AnalysisResult
	cursor int
	chosen int
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.chosen = choiceQuit
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.items)-1, 0)
		case "enter":
			if len(m.items) > 0 {
				m.chosen = m.cursor
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := pickerTitleStyle.Render(fmt.Sprintf("Analysis history (%d): select a report", len(m.items)))
	s += "\n"

	if len(m.items) == 0 {
		s += pickerItemStyle.Render("(no saved analyses)") + "\n"
	}
	for i := range m.items {
		label := pickerLabel(&m.items[i])
		if i == m.cursor {
			s += pickerSelectedStyle.Render("> "+label) + "\n"
		} else {
			s += pickerItemStyle.Render(label) + "\n"
		}
	}

	s += pickerHintStyle.Render("↑/↓/j/k navigate  enter open  q quit")
	return s
}

func pickerLabel(r *model.AnalysisResult) string {
	company := r.Company
	if company == "" {
		company = "Untitled"
	}
	role := r.Role
	if role == "" {
		role = "-"
	}
	return fmt.Sprintf("%-22s %-20s %3d/100  %s",
		truncate(company, 22), truncate(role, 20), r.FinalScore, r.CreatedAt.Local().Format("2006-01-02 15:04"))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// RunPicker shows an interactive history selector.
// Returns the index of the chosen analysis, or -1 if the user quit.
func RunPicker(items []model.AnalysisResult) (int, error) {
	m := pickerModel{
		items:  items,
		chosen: choiceNone,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return -1, err
	}

	final := result.(pickerModel)
	if final.chosen < 0 {
		return -1, nil
	}
	return final.chosen, nil
}
