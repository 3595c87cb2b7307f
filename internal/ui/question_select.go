// Package ui implements the interactive prompt used by `score
// --interactive` in a real terminal: a list-select over each
// question's closed set of options, one question at a time.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/archfit/archfit/models"
)

// applyDelay is how long the recording spinner stays on screen after an
// answer is chosen, so the transition to the next question doesn't flash.
const applyDelay = 250 * time.Millisecond

// PromptAnswer asks the user to pick one option for q. Returns the
// chosen option value, or an error if the user cancels.
func PromptAnswer(q models.Question) (string, error) {
	if len(q.Options) == 0 {
		return "", fmt.Errorf("question %s has no options", q.QuestionID)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	m := questionSelectModel{question: q, cursor: 0, spinner: s}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run question prompt: %w", err)
	}

	result := finalModel.(questionSelectModel)
	if result.quit {
		return "", fmt.Errorf("question %s cancelled", q.QuestionID)
	}
	return result.question.Options[result.cursor].Value, nil
}

type questionSelectModel struct {
	question models.Question
	cursor   int
	quit     bool
	applying bool
	spinner  spinner.Model
}

func (m questionSelectModel) Init() tea.Cmd {
	return nil
}

func (m questionSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.applying {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.question.Options)-1 {
				m.cursor++
			}
		case "enter":
			m.applying = true
			return m, tea.Batch(m.spinner.Tick, tea.Tick(applyDelay, func(time.Time) tea.Msg {
				return applyDoneMsg{}
			}))
		}
	case spinner.TickMsg:
		if !m.applying {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case applyDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

type applyDoneMsg struct{}

func (m questionSelectModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	if m.applying {
		return "\n" + m.spinner.View() + " recording answer...\n"
	}

	s := "\n" + titleStyle.Render(m.question.QuestionText) + "\n\n"
	for i, opt := range m.question.Options {
		cursor := "  "
		style := normalStyle
		if m.cursor == i {
			cursor = "▶ "
			style = selectedStyle
		}
		s += cursor + style.Render(fmt.Sprintf("%-24s", opt.Label)) + "\n"
	}
	s += "\n" + dimStyle.Render("↑/↓ navigate • enter select • esc cancel") + "\n"
	return s
}
