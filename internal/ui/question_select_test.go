package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/archfit/archfit/models"
)

func testQuestion() models.Question {
	return models.Question{
		QuestionID:   "network_exposure",
		QuestionText: "How is this application exposed?",
		Options: []models.QuestionOption{
			{Value: "external", Label: "External"},
			{Value: "internal", Label: "Internal"},
			{Value: "mixed", Label: "Mixed"},
		},
	}
}

func newTestModel() questionSelectModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return questionSelectModel{question: testQuestion(), cursor: 0, spinner: s}
}

func TestUpdateMovesCursorDownAndUp(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(questionSelectModel)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1 after down", m.cursor)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(questionSelectModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after up", m.cursor)
	}
}

func TestUpdateCursorStaysWithinBounds(t *testing.T) {
	m := newTestModel()
	m.cursor = 0

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(questionSelectModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (cannot go above first option)", m.cursor)
	}

	m.cursor = len(m.question.Options) - 1
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(questionSelectModel)
	if m.cursor != len(m.question.Options)-1 {
		t.Errorf("cursor = %d, want %d (cannot go past last option)", m.cursor, len(m.question.Options)-1)
	}
}

func TestUpdateEscQuits(t *testing.T) {
	m := newTestModel()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(questionSelectModel)
	if !m.quit {
		t.Errorf("quit = false, want true after esc")
	}
	if cmd == nil {
		t.Errorf("cmd = nil, want tea.Quit")
	}
}

func TestUpdateEnterEntersApplyingState(t *testing.T) {
	m := newTestModel()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(questionSelectModel)
	if !m.applying {
		t.Fatalf("applying = false, want true after enter")
	}
	if cmd == nil {
		t.Errorf("cmd = nil, want a batch of spinner tick + delayed quit")
	}
}

func TestUpdateIgnoresKeysWhileApplying(t *testing.T) {
	m := newTestModel()
	m.applying = true
	m.cursor = 0

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(questionSelectModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (key input ignored while applying)", m.cursor)
	}
	if cmd != nil {
		t.Errorf("cmd = %v, want nil", cmd)
	}
}

func TestUpdateApplyDoneQuits(t *testing.T) {
	m := newTestModel()
	m.applying = true

	_, cmd := m.Update(applyDoneMsg{})
	if cmd == nil {
		t.Errorf("cmd = nil, want tea.Quit")
	}
}

func TestViewShowsSpinnerWhileApplying(t *testing.T) {
	m := newTestModel()
	m.applying = true

	view := m.View()
	if !strings.Contains(view, "recording answer") {
		t.Errorf("View() = %q, want it to mention recording answer while applying", view)
	}
}

func TestViewListsOptionsNormally(t *testing.T) {
	m := newTestModel()

	view := m.View()
	for _, opt := range m.question.Options {
		if !strings.Contains(view, opt.Label) {
			t.Errorf("View() missing option label %q", opt.Label)
		}
	}
}

func TestPromptAnswerRejectsQuestionWithNoOptions(t *testing.T) {
	_, err := PromptAnswer(models.Question{QuestionID: "empty"})
	if err == nil {
		t.Errorf("PromptAnswer() error = nil, want error for a question with no options")
	}
}
