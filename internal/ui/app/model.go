package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	journaldto "upmind/internal/modules/journal/dto"
	phasedto "upmind/internal/modules/phase/dto"
	quizdto "upmind/internal/modules/quiz/dto"
	rewarddto "upmind/internal/modules/reward/dto"
	xpdto "upmind/internal/modules/xp/dto"
	"upmind/internal/ui/components"
	"upmind/internal/ui/theme"
	breatheview "upmind/internal/ui/views/breathe"
	journalview "upmind/internal/ui/views/journal"
	progressview "upmind/internal/ui/views/progress"
	quizview "upmind/internal/ui/views/quiz"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are declared in their own packages.

type XPPort interface {
	Add(ctx context.Context, category string, amount int) (xpdto.LedgerOutput, error)
}

type RewardPort interface {
	Summary(ctx context.Context) (rewarddto.SummaryOutput, error)
	CompleteTask(ctx context.Context, taskID, activity, difficulty, note string) (rewarddto.AwardOutput, error)
	WriteJournal(ctx context.Context, content, mood string, tags []string) (rewarddto.JournalAwardOutput, error)
	WriteProgress(ctx context.Context) (string, error)
}

type JournalPort interface {
	Prompt(ctx context.Context) (string, error)
	List(ctx context.Context, date string, limit int) ([]journaldto.EntryOutput, error)
}

type PhasePort interface {
	Techniques(ctx context.Context) ([]phasedto.TechniqueOutput, error)
	Start(ctx context.Context, techniqueID string) (phasedto.RunOutput, error)
	Advance(ctx context.Context, elapsed time.Duration) (phasedto.AdvanceOutput, error)
	Stop(ctx context.Context) (phasedto.RunOutput, error)
}

type QuizPort interface {
	Generate(ctx context.Context, input quizdto.GenerateInput) (quizdto.GenerateOutput, error)
}

// Dependencies carries everything the root model talks to.
type Dependencies struct {
	VaultPath string
	// Tick is how often a running phase session is advanced.
	Tick    time.Duration
	XP      XPPort
	Reward  RewardPort
	Journal JournalPort
	Phase   PhasePort
	Quiz    QuizPort
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabProgress tabID = iota
	tabBreathe
	tabJournal
	tabQuiz
	tabCount
)

var tabLabels = [tabCount]string{"Progress", "Breathe", "Journal", "Quiz"}

// ─── async messages ──────────────────────────────────────────────────────────

type xpAddedMsg struct {
	ledger xpdto.LedgerOutput
	err    error
}

type taskCompletedMsg struct {
	award rewarddto.AwardOutput
	err   error
}

type summaryWrittenMsg struct {
	path string
	err  error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Esc     key.Binding
	Refresh key.Binding
	Save    key.Binding
	Cycle   key.Binding
	Answer  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start / edit")),
		Esc:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop / leave input")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh progress")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save journal")),
		Cycle:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "mood / category")),
		Answer:  key.NewBinding(key.WithKeys("a", "b", "c", "d"), key.WithHelp("a-d", "answer")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Esc},
		{k.Refresh, k.Save, k.Cycle, k.Answer},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette; rendering is delegated to sub-views.
type Model struct {
	vaultPath string
	xp        XPPort
	reward    RewardPort

	progressView progressview.Model
	breatheView  breatheview.Model
	journalView  journalview.Model
	quizView     quizview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(deps Dependencies) Model {
	var summary progressview.SummaryPort
	var writer journalview.WriterPort
	if deps.Reward != nil {
		summary = deps.Reward
		writer = deps.Reward
	}
	var journal journalview.JournalPort
	if deps.Journal != nil {
		journal = deps.Journal
	}
	var phase breatheview.PhasePort
	if deps.Phase != nil {
		phase = deps.Phase
	}
	var quiz quizview.QuizPort
	if deps.Quiz != nil {
		quiz = deps.Quiz
	}
	return Model{
		vaultPath:    deps.VaultPath,
		xp:           deps.XP,
		reward:       deps.Reward,
		progressView: progressview.New(summary),
		breatheView:  breatheview.New(phase, deps.Tick),
		journalView:  journalview.New(journal, writer),
		quizView:     quizview.New(quiz),
		activeTab:    tabProgress,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.progressView.Init(),
		m.breatheView.Init(),
		m.journalView.Init(),
		m.quizView.Init(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case progressview.SummaryLoadedMsg:
		var cmd tea.Cmd
		m.progressView, cmd = m.progressView.Update(msg)
		return m, cmd

	case breatheview.FinishedMsg:
		if msg.Out.Award != nil {
			m.status = fmt.Sprintf("+%d %s xp", msg.Out.Award.XP, msg.Out.Award.Category)
		}
		return m, m.progressView.Reload()

	case journalview.SavedMsg:
		var cmd tea.Cmd
		m.journalView, cmd = m.journalView.Update(msg)
		if msg.Err == nil {
			m.status = msg.Out.Award.Message
			return m, tea.Batch(cmd, m.progressView.Reload())
		}
		return m, cmd

	case xpAddedMsg:
		if msg.err != nil {
			m.status = "xp:add: " + msg.err.Error()
			return m, nil
		}
		m.status = "total xp " + msg.ledger.TotalFormatted
		return m, m.progressView.Reload()

	case taskCompletedMsg:
		if msg.err != nil {
			m.status = "task: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.award.Message
		return m, m.progressView.Reload()

	case summaryWrittenMsg:
		if msg.err != nil {
			m.status = "summary: " + msg.err.Error()
		} else {
			m.status = "wrote " + msg.path
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		}

		// Yield to sub-view when it is capturing text.
		if m.subViewEditing() {
			break
		}

		switch msg.String() {
		case "q":
			return m, m.quit()
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		}
	}

	// Async results for background tabs must still reach their views.
	switch msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.activeTab {
		case tabProgress:
			m.progressView, cmd = m.progressView.Update(msg)
		case tabBreathe:
			m.breatheView, cmd = m.breatheView.Update(msg)
		case tabJournal:
			m.journalView, cmd = m.journalView.Update(msg)
		case tabQuiz:
			m.quizView, cmd = m.quizView.Update(msg)
		}
		cmds = append(cmds, cmd)
	default:
		var cmd tea.Cmd
		m.progressView, cmd = m.progressView.Update(msg)
		cmds = append(cmds, cmd)
		m.breatheView, cmd = m.breatheView.Update(msg)
		cmds = append(cmds, cmd)
		m.journalView, cmd = m.journalView.Update(msg)
		cmds = append(cmds, cmd)
		m.quizView, cmd = m.quizView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabProgress:
		return m.progressView.View()
	case tabBreathe:
		return m.breatheView.View()
	case tabJournal:
		return m.journalView.View()
	case tabQuiz:
		return m.quizView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "upmind  " + strings.Join(parts, theme.Muted.Render(" │ "))
	if m.vaultPath != "" {
		bar += "   " + theme.Muted.Render(m.vaultPath)
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.breatheView.Running() {
		left = theme.Hot.Render("● breathing") + "  " + left
	}
	if s := m.progressView.Summary(); s.Stats.CurrentStreak > 0 {
		left = theme.Unlock.Render(fmt.Sprintf("streak %d", s.Stats.CurrentStreak)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "xp:add":
		if len(parts) < 3 {
			m.status = "usage: xp:add <category> <amount>"
			return m, nil
		}
		amount, err := strconv.Atoi(parts[2])
		if err != nil {
			m.status = "invalid amount"
			return m, nil
		}
		return m, m.addXPCmd(parts[1], amount)

	case "task:complete":
		if len(parts) < 4 {
			m.status = "usage: task:complete <id> <activity> <note…>"
			return m, nil
		}
		note := strings.Join(parts[3:], " ")
		return m, m.completeTaskCmd(parts[1], parts[2], note)

	case "phase:start":
		if len(parts) < 2 {
			m.status = "usage: phase:start <technique>"
			return m, nil
		}
		m.activeTab = tabBreathe
		return m, m.breatheView.StartRun(parts[1])

	case "phase:stop":
		if !m.breatheView.Running() {
			m.status = "no run in progress"
			return m, nil
		}
		return m, m.breatheView.StopRun()

	case "summary:write":
		return m, m.writeSummaryCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// quit abandons a running phase session first so no marker is left behind.
func (m Model) quit() tea.Cmd {
	if m.breatheView.Running() {
		return tea.Sequence(m.breatheView.StopRun(), tea.Quit)
	}
	return tea.Quit
}

func (m Model) subViewEditing() bool {
	switch m.activeTab {
	case tabJournal:
		return m.journalView.Editing()
	case tabQuiz:
		return m.quizView.Editing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.progressView, _ = m.progressView.Update(sz)
	m.breatheView, _ = m.breatheView.Update(sz)
	m.journalView, _ = m.journalView.Update(sz)
	m.quizView, _ = m.quizView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) addXPCmd(category string, amount int) tea.Cmd {
	xp := m.xp
	return func() tea.Msg {
		if xp == nil {
			return xpAddedMsg{err: fmt.Errorf("xp ledger not configured")}
		}
		ledger, err := xp.Add(context.Background(), category, amount)
		return xpAddedMsg{ledger: ledger, err: err}
	}
}

func (m Model) completeTaskCmd(taskID, activity, note string) tea.Cmd {
	reward := m.reward
	return func() tea.Msg {
		if reward == nil {
			return taskCompletedMsg{err: fmt.Errorf("rewards not configured")}
		}
		award, err := reward.CompleteTask(context.Background(), taskID, activity, "", note)
		return taskCompletedMsg{award: award, err: err}
	}
}

func (m Model) writeSummaryCmd() tea.Cmd {
	reward := m.reward
	return func() tea.Msg {
		if reward == nil {
			return summaryWrittenMsg{err: fmt.Errorf("rewards not configured")}
		}
		path, err := reward.WriteProgress(context.Background())
		return summaryWrittenMsg{path: path, err: err}
	}
}
