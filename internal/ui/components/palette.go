package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"upmind/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// Command describes one palette entry.
type Command struct {
	Name  string
	Usage string
}

// Commands are the entries the root model knows how to execute.
var Commands = []Command{
	{Name: "xp:add", Usage: "<interview|resilience|confidence> <amount>"},
	{Name: "task:complete", Usage: "<id> <activity> <note…>"},
	{Name: "phase:start", Usage: "<technique>"},
	{Name: "phase:stop"},
	{Name: "summary:write"},
}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true)
)

// Palette is a command line overlay. Up/down pick a suggestion and tab
// completes its name.
type Palette struct {
	input    textinput.Model
	visible  bool
	selected int
	width    int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	ti.Prompt = ": "
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows an empty palette and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Matches returns the commands whose name fits what has been typed so far.
func (p Palette) Matches() []Command {
	typed := strings.ToLower(strings.TrimSpace(p.input.Value()))
	name, _, hasArgs := strings.Cut(typed, " ")
	var out []Command
	for _, c := range Commands {
		switch {
		case typed == "":
			out = append(out, c)
		case hasArgs && c.Name == name:
			out = append(out, c)
		case !hasArgs && strings.HasPrefix(c.Name, name):
			out = append(out, c)
		}
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		case "down":
			if p.selected < len(p.Matches())-1 {
				p.selected++
			}
			return p, nil
		case "tab":
			if matches := p.Matches(); p.selected < len(matches) {
				p.input.SetValue(matches[p.selected].Name + " ")
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if n := len(p.Matches()); p.selected >= n {
		p.selected = max(n-1, 0)
	}
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(p.input.View() + "\n")
	matches := p.Matches()
	if len(matches) > 0 {
		sb.WriteString("\n")
	}
	for i, c := range matches {
		line := strings.TrimSpace(c.Name + " " + c.Usage)
		if i == p.selected {
			sb.WriteString(selectedStyle.Render("› "+line) + "\n")
			continue
		}
		sb.WriteString(hintStyle.Render("  "+line) + "\n")
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
