package progress

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rewarddto "upmind/internal/modules/reward/dto"
	"upmind/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SummaryPort interface {
	Summary(ctx context.Context) (rewarddto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SummaryLoadedMsg struct {
	Summary rewarddto.SummaryOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    SummaryPort
	summary rewarddto.SummaryOutput
	bars    map[string]progress.Model
	body    viewport.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port SummaryPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	return Model{
		port:    port,
		bars:    map[string]progress.Model{},
		body:    vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches a fresh summary.
func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return SummaryLoadedMsg{Err: fmt.Errorf("progress not configured")}
		}
		s, err := port.Summary(context.Background())
		return SummaryLoadedMsg{Summary: s, Err: err}
	}
}

func (m Model) Summary() rewarddto.SummaryOutput { return m.summary }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case SummaryLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.summary = msg.Summary
			m.syncBars()
		}
		m.body.SetContent(m.renderBody())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			cmds = append(cmds, m.Reload(), m.spinner.Tick)
		}
	}

	var vCmd tea.Cmd
	m.body, vCmd = m.body.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading && len(m.summary.Ledger.Categories) == 0 {
		return m.spinner.View() + " loading progress…"
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Progress") + "  " +
		theme.Muted.Render(m.summary.Date) + "\n\n")
	for _, c := range m.summary.Ledger.Categories {
		bar, ok := m.bars[c.Category]
		if !ok {
			continue
		}
		label := lipgloss.NewStyle().Foreground(theme.CategoryColor(c.Category)).Bold(true).
			Width(12).Render(c.Category)
		sb.WriteString(fmt.Sprintf("%s L%-3d %s  %s\n", label, c.Level,
			bar.ViewAs(c.Progress/100), theme.Muted.Render(fmt.Sprintf("%s / %d", c.Formatted, c.NextLevelAt))))
	}
	sb.WriteString("\n")
	sb.WriteString(m.body.View())
	return sb.String()
}

func (m *Model) syncBars() {
	for _, c := range m.summary.Ledger.Categories {
		if _, ok := m.bars[c.Category]; ok {
			continue
		}
		color := string(theme.CategoryColor(c.Category))
		m.bars[c.Category] = progress.New(
			progress.WithSolidFill(color),
			progress.WithoutPercentage(),
			progress.WithWidth(m.barWidth()),
		)
	}
}

func (m *Model) resize() {
	for k, b := range m.bars {
		b.Width = m.barWidth()
		m.bars[k] = b
	}
	bodyH := m.height - len(m.bars) - 4
	if bodyH < 3 {
		bodyH = 3
	}
	m.body.Width = m.width
	m.body.Height = bodyH
}

func (m Model) barWidth() int {
	w := m.width - 40
	if w < 10 {
		return 10
	}
	if w > 60 {
		return 60
	}
	return w
}

func (m Model) renderBody() string {
	if m.err != nil {
		return theme.Bad.Render("summary: " + m.err.Error())
	}
	s := m.summary
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total XP      %s\n", theme.Hot.Render(s.Ledger.TotalFormatted)))
	sb.WriteString(fmt.Sprintf("Streak        %d day(s)  best %d\n", s.Stats.CurrentStreak, s.Stats.LongestStreak))
	sb.WriteString(fmt.Sprintf("Sessions      %d total, %d today\n", s.Stats.TotalSessions, s.SessionsToday))
	sb.WriteString(fmt.Sprintf("Tasks today   %d\n", s.TasksToday))
	journaled := theme.Muted.Render("not yet")
	if s.JournaledToday {
		journaled = theme.Good.Render("done")
	}
	sb.WriteString(fmt.Sprintf("Journal       %s  streak %d\n", journaled, s.JournalStreak))
	if s.DailyBonus.HasBonus {
		sb.WriteString(theme.Unlock.Render(fmt.Sprintf("Daily bonus   +%d (%s)", s.DailyBonus.BonusXP, s.DailyBonus.Reason)) + "\n")
	}
	if s.StreakBonusXP > 0 {
		sb.WriteString(theme.Unlock.Render(fmt.Sprintf("Streak bonus  +%d", s.StreakBonusXP)) + "\n")
	}

	sb.WriteString(theme.Section.Render("Achievements") + "\n")
	for _, a := range s.Achievements {
		mark := theme.Muted.Render("○")
		title := a.Title
		if a.Unlocked {
			mark = theme.Unlock.Render("★")
			title = theme.Unlock.Render(a.Title)
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s %s\n", mark, title,
			theme.Muted.Render(a.Description), theme.Muted.Render(fmt.Sprintf("%.0f%%", a.Progress))))
	}
	return sb.String()
}
