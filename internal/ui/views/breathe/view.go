package breathe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	phasedto "upmind/internal/modules/phase/dto"
	"upmind/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PhasePort interface {
	Techniques(ctx context.Context) ([]phasedto.TechniqueOutput, error)
	Start(ctx context.Context, techniqueID string) (phasedto.RunOutput, error)
	Advance(ctx context.Context, elapsed time.Duration) (phasedto.AdvanceOutput, error)
	Stop(ctx context.Context) (phasedto.RunOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type TechniquesLoadedMsg struct {
	Techniques []phasedto.TechniqueOutput
	Err        error
}

type StartedMsg struct {
	Run phasedto.RunOutput
	Err error
}

type tickMsg struct {
	gen int
	at  time.Time
}

type advancedMsg struct {
	gen int
	out phasedto.AdvanceOutput
	err error
}

type StoppedMsg struct {
	Run phasedto.RunOutput
	Err error
}

// FinishedMsg is emitted once a run completes so the parent can refresh
// anything derived from XP.
type FinishedMsg struct {
	Out phasedto.AdvanceOutput
}

// ─── list item ───────────────────────────────────────────────────────────────

type techniqueItem struct {
	t phasedto.TechniqueOutput
}

func (i techniqueItem) Title() string { return i.t.Name }
func (i techniqueItem) Description() string {
	return fmt.Sprintf("%s · %d cycle(s) · %s", i.t.Activity, i.t.Cycles, formatSeconds(i.t.TotalSeconds))
}
func (i techniqueItem) FilterValue() string { return i.t.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     PhasePort
	interval time.Duration
	list     list.Model
	bar      progress.Model

	running   bool
	gen       int
	lastTick  time.Time
	technique phasedto.TechniqueOutput
	run       phasedto.RunOutput
	status    string
	width     int
	height    int
}

func New(port PhasePort, interval time.Duration) Model {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Techniques"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return Model{
		port:     port,
		interval: interval,
		list:     l,
		bar:      progress.New(progress.WithGradient(string(theme.Teal), string(theme.Lavender))),
	}
}

func (m Model) Init() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return TechniquesLoadedMsg{Err: fmt.Errorf("phase engine not configured")}
		}
		ts, err := port.Techniques(context.Background())
		return TechniquesLoadedMsg{Techniques: ts, Err: err}
	}
}

// Running reports whether a run is being driven by this view.
func (m Model) Running() bool { return m.running }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)
		m.bar.Width = max(msg.Width-8, 10)
		return m, nil

	case TechniquesLoadedMsg:
		if msg.Err != nil {
			m.status = "techniques: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Techniques))
		for i, t := range msg.Techniques {
			items[i] = techniqueItem{t: t}
		}
		return m, m.list.SetItems(items)

	case StartedMsg:
		if msg.Err != nil {
			m.status = "start: " + msg.Err.Error()
			return m, nil
		}
		m.gen++
		m.running = true
		m.run = msg.Run
		m.lastTick = time.Now()
		m.status = "breathe with the prompt, esc to stop"
		if t, ok := m.lookup(msg.Run.TechniqueID); ok {
			m.technique = t
		}
		return m, m.tick()

	case tickMsg:
		if !m.running || msg.gen != m.gen {
			return m, nil
		}
		elapsed := msg.at.Sub(m.lastTick)
		m.lastTick = msg.at
		return m, m.advanceCmd(msg.gen, elapsed)

	case advancedMsg:
		if !m.running || msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.running = false
			m.status = "advance: " + msg.err.Error()
			return m, nil
		}
		m.run = msg.out.Run
		if msg.out.Completed || msg.out.Stopped {
			m.running = false
			m.status = finishedStatus(msg.out)
			out := msg.out
			return m, func() tea.Msg { return FinishedMsg{Out: out} }
		}
		return m, m.tick()

	case StoppedMsg:
		m.running = false
		if msg.Err != nil {
			m.status = "stop: " + msg.Err.Error()
		} else {
			m.status = "stopped " + msg.Run.TechniqueName + ", no xp awarded"
		}
		return m, nil

	case tea.KeyMsg:
		if m.running {
			if msg.String() == "esc" {
				m.gen++
				return m, m.StopRun()
			}
			return m, nil
		}
		if msg.String() == "enter" {
			if item, ok := m.list.SelectedItem().(techniqueItem); ok {
				return m, m.StartRun(item.t.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// StartRun begins the technique with the given id.
func (m Model) StartRun(id string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return StartedMsg{Err: fmt.Errorf("phase engine not configured")}
		}
		run, err := port.Start(context.Background(), id)
		return StartedMsg{Run: run, Err: err}
	}
}

// StopRun abandons the active run.
func (m Model) StopRun() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return StoppedMsg{Err: fmt.Errorf("phase engine not configured")}
		}
		run, err := port.Stop(context.Background())
		return StoppedMsg{Run: run, Err: err}
	}
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg{gen: gen, at: t} })
}

func (m Model) advanceCmd(gen int, elapsed time.Duration) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.Advance(context.Background(), elapsed)
		return advancedMsg{gen: gen, out: out, err: err}
	}
}

func (m Model) lookup(id string) (phasedto.TechniqueOutput, bool) {
	for _, it := range m.list.Items() {
		if ti, ok := it.(techniqueItem); ok && ti.t.ID == id {
			return ti.t, true
		}
	}
	return phasedto.TechniqueOutput{}, false
}

func (m Model) View() string {
	if !m.running {
		return m.list.View() + "\n" + theme.Muted.Render(m.status)
	}
	ratio := 0.0
	if m.technique.TotalSeconds > 0 {
		ratio = m.run.ElapsedSeconds / m.technique.TotalSeconds
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.run.TechniqueName) + "\n\n")
	sb.WriteString(theme.Phase.Render(strings.ToUpper(m.run.Phase)) + "  " +
		theme.Hot.Render(formatSeconds(m.run.RemainingSeconds)) + "\n\n")
	sb.WriteString(fmt.Sprintf("cycle %d/%d\n", m.run.Cycle, m.run.Cycles))
	sb.WriteString(m.bar.ViewAs(min(ratio, 1)) + "\n\n")
	sb.WriteString(theme.Muted.Render(m.status))
	return sb.String()
}

func finishedStatus(out phasedto.AdvanceOutput) string {
	if out.Stopped {
		return "stopped " + out.Run.TechniqueName
	}
	if out.Award != nil {
		return fmt.Sprintf("completed %s  +%d %s xp", out.Run.TechniqueName, out.Award.XP, out.Award.Category)
	}
	return "completed " + out.Run.TechniqueName
}

func formatSeconds(s float64) string {
	d := time.Duration(s * float64(time.Second)).Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
