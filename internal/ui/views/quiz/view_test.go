package quiz_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	quizdto "upmind/internal/modules/quiz/dto"
	"upmind/internal/ui/views/quiz"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAnsweringScoresQuestions(t *testing.T) {
	t.Parallel()
	m := quiz.New(nil)
	m, _ = m.Update(runes("go"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Editing())

	m, _ = m.Update(quiz.GeneratedMsg{Out: quizdto.GenerateOutput{
		Provider: "fallback",
		Questions: []quizdto.QuestionOutput{
			{Question: "Q1?", Options: []string{"w", "x", "y", "z"}, CorrectAnswer: 1, Explanation: "because x"},
			{Question: "Q2?", Options: []string{"w", "x", "y", "z"}, CorrectAnswer: 0, Explanation: "because w"},
		},
	}})
	assert.Contains(t, m.View(), "Q1?")

	m, _ = m.Update(runes("b"))
	assert.Contains(t, m.View(), "because x")
	assert.Contains(t, m.View(), "score 1/1")

	m, _ = m.Update(runes("n"))
	assert.Contains(t, m.View(), "Q2?")
	m, _ = m.Update(runes("c"))
	assert.Contains(t, m.View(), "score 1/2")
}

func TestEmptyTopicIsRejected(t *testing.T) {
	t.Parallel()
	m := quiz.New(nil)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.Editing())
	assert.Contains(t, m.View(), "enter a topic first")
}
