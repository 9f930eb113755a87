package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	journaldto "upmind/internal/modules/journal/dto"
	rewarddto "upmind/internal/modules/reward/dto"
	"upmind/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type JournalPort interface {
	Prompt(ctx context.Context) (string, error)
	List(ctx context.Context, date string, limit int) ([]journaldto.EntryOutput, error)
}

type WriterPort interface {
	WriteJournal(ctx context.Context, content, mood string, tags []string) (rewarddto.JournalAwardOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type loadedMsg struct {
	prompt  string
	entries []journaldto.EntryOutput
	err     error
}

// SavedMsg reports the outcome of a journal write.
type SavedMsg struct {
	Out rewarddto.JournalAwardOutput
	Err error
}

// Moods cycles in this order.
var Moods = []string{"neutral", "positive", "negative"}

const recentLimit = 5

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	journal JournalPort
	writer  WriterPort
	editor  textarea.Model
	prompt  string
	recent  []journaldto.EntryOutput
	mood    int
	saving  bool
	status  string
	width   int
	height  int
}

func New(journal JournalPort, writer WriterPort) Model {
	ta := textarea.New()
	ta.Placeholder = "Write what's on your mind…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	return Model{journal: journal, writer: writer, editor: ta}
}

func (m Model) Init() tea.Cmd { return m.reload() }

// Editing reports whether keystrokes belong to the editor.
func (m Model) Editing() bool { return m.editor.Focused() }

func (m Model) reload() tea.Cmd {
	journal := m.journal
	return func() tea.Msg {
		if journal == nil {
			return loadedMsg{err: fmt.Errorf("journal not configured")}
		}
		ctx := context.Background()
		prompt, err := journal.Prompt(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		entries, err := journal.List(ctx, "", recentLimit)
		return loadedMsg{prompt: prompt, entries: entries, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width-4, 20))
		m.editor.SetHeight(max(msg.Height/2-4, 3))
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.status = "journal: " + msg.err.Error()
			return m, nil
		}
		m.prompt = msg.prompt
		m.recent = msg.entries
		return m, nil

	case SavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.status = "save: " + msg.Err.Error()
			return m, nil
		}
		m.editor.Reset()
		m.editor.Blur()
		m.mood = 0
		m.status = fmt.Sprintf("saved  +%d %s xp", msg.Out.Award.XP, msg.Out.Award.Category)
		return m, m.reload()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			if m.saving {
				return m, nil
			}
			m.saving = true
			m.status = "saving…"
			return m, m.save()
		case "ctrl+t":
			m.mood = (m.mood + 1) % len(Moods)
			return m, nil
		case "esc":
			m.editor.Blur()
			return m, nil
		case "enter", "i":
			if !m.editor.Focused() {
				cmd := m.editor.Focus()
				return m, cmd
			}
		}
	}

	if !m.editor.Focused() {
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) save() tea.Cmd {
	writer := m.writer
	content := m.editor.Value()
	mood := Moods[m.mood]
	return func() tea.Msg {
		if writer == nil {
			return SavedMsg{Err: fmt.Errorf("journal not configured")}
		}
		out, err := writer.WriteJournal(context.Background(), content, mood, nil)
		return SavedMsg{Out: out, Err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Journal") + "\n")
	if m.prompt != "" {
		sb.WriteString(theme.Muted.Render(m.prompt) + "\n")
	}
	sb.WriteString("\n" + m.editor.View() + "\n")
	sb.WriteString(theme.Muted.Render("mood: ") + theme.Hot.Render(Moods[m.mood]) +
		theme.Muted.Render("   ctrl+t mood · ctrl+s save · esc leave editor") + "\n")
	if m.status != "" {
		sb.WriteString(m.status + "\n")
	}

	if len(m.recent) > 0 {
		sb.WriteString(theme.Section.Render("Recent") + "\n")
		for _, e := range m.recent {
			line := strings.ReplaceAll(e.Content, "\n", " ")
			if len(line) > 60 {
				line = line[:60] + "…"
			}
			sb.WriteString(theme.Muted.Render(e.CreatedAt.Format("Jan 02 15:04")) + "  " + line + "\n")
		}
	}
	return sb.String()
}
