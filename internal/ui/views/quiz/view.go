package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	quizdto "upmind/internal/modules/quiz/dto"
	"upmind/internal/ui/theme"
)

type QuizPort interface {
	Generate(ctx context.Context, input quizdto.GenerateInput) (quizdto.GenerateOutput, error)
}

type GeneratedMsg struct {
	Out quizdto.GenerateOutput
	Err error
}

var Categories = []string{"general", "coding", "career", "startup"}

type Model struct {
	port     QuizPort
	title    textinput.Model
	spinner  spinner.Model
	category int
	loading  bool

	out      quizdto.GenerateOutput
	current  int
	answered int // -1 until the current question is answered
	correct  int
	status   string
	width    int
}

func New(port QuizPort) Model {
	ti := textinput.New()
	ti.Placeholder = "topic, e.g. system design interview"
	ti.CharLimit = 120
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, title: ti, spinner: sp, answered: -1}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Editing reports whether the topic input owns the keyboard.
func (m Model) Editing() bool { return m.title.Focused() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.title.Width = max(msg.Width-16, 20)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case GeneratedMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = "quiz: " + msg.Err.Error()
			cmd := m.title.Focus()
			return m, cmd
		}
		m.out = msg.Out
		m.current = 0
		m.answered = -1
		m.correct = 0
		m.status = "source: " + msg.Out.Provider
		return m, nil

	case tea.KeyMsg:
		if m.title.Focused() {
			switch msg.String() {
			case "enter":
				if strings.TrimSpace(m.title.Value()) == "" {
					m.status = "enter a topic first"
					return m, nil
				}
				m.title.Blur()
				m.loading = true
				m.status = ""
				return m, tea.Batch(m.generate(), m.spinner.Tick)
			case "ctrl+t":
				m.category = (m.category + 1) % len(Categories)
				return m, nil
			case "esc":
				m.title.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.title, cmd = m.title.Update(msg)
			return m, cmd
		}
		return m.handleAnswerKey(msg.String())
	}
	return m, nil
}

func (m Model) handleAnswerKey(k string) (Model, tea.Cmd) {
	switch k {
	case "/", "e":
		cmd := m.title.Focus()
		return m, cmd
	case "n":
		if m.answered >= 0 && m.current < len(m.out.Questions)-1 {
			m.current++
			m.answered = -1
		}
		return m, nil
	}
	if m.answered >= 0 || m.current >= len(m.out.Questions) {
		return m, nil
	}
	choice := answerIndex(k)
	if choice < 0 || choice >= len(m.out.Questions[m.current].Options) {
		return m, nil
	}
	m.answered = choice
	if choice == m.out.Questions[m.current].CorrectAnswer {
		m.correct++
	}
	return m, nil
}

func answerIndex(k string) int {
	switch k {
	case "1", "a":
		return 0
	case "2", "b":
		return 1
	case "3", "c":
		return 2
	case "4", "d":
		return 3
	}
	return -1
}

func (m Model) generate() tea.Cmd {
	port := m.port
	input := quizdto.GenerateInput{
		Title:    strings.TrimSpace(m.title.Value()),
		Category: Categories[m.category],
	}
	return func() tea.Msg {
		if port == nil {
			return GeneratedMsg{Err: fmt.Errorf("quiz not configured")}
		}
		out, err := port.Generate(context.Background(), input)
		return GeneratedMsg{Out: out, Err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Quiz") + "\n\n")
	sb.WriteString("topic    " + m.title.View() + "\n")
	sb.WriteString("category " + theme.Hot.Render(Categories[m.category]) +
		theme.Muted.Render("  (ctrl+t to change)") + "\n\n")

	if m.loading {
		sb.WriteString(m.spinner.View() + " generating…\n")
		return sb.String()
	}
	if len(m.out.Questions) > 0 && m.current < len(m.out.Questions) {
		q := m.out.Questions[m.current]
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("question %d/%d", m.current+1, len(m.out.Questions))) + "\n")
		sb.WriteString(q.Question + "\n\n")
		for i, opt := range q.Options {
			line := fmt.Sprintf("  %c) %s", 'a'+i, opt)
			switch {
			case m.answered < 0:
			case i == q.CorrectAnswer:
				line = theme.Good.Render(line)
			case i == m.answered:
				line = theme.Bad.Render(line)
			}
			sb.WriteString(line + "\n")
		}
		if m.answered >= 0 {
			sb.WriteString("\n" + theme.Muted.Render(q.Explanation) + "\n")
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("score %d/%d", m.correct, m.current+1)))
			if m.current < len(m.out.Questions)-1 {
				sb.WriteString(theme.Muted.Render("  · n for next"))
			}
			sb.WriteString("\n")
		}
	}
	if m.status != "" {
		sb.WriteString("\n" + theme.Muted.Render(m.status) + "\n")
	}
	return sb.String()
}
