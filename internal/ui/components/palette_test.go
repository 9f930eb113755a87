package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upmind/internal/ui/components"
)

func typeInto(p components.Palette, s string) components.Palette {
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return p
}

func TestPaletteFiltersAndCompletes(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	assert.Len(t, p.Matches(), len(components.Commands))

	p = typeInto(p, "phase")
	names := []string{}
	for _, c := range p.Matches() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"phase:start", "phase:stop"}, names)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, components.PaletteSubmitMsg{Input: "phase:stop"}, cmd())
	assert.False(t, p.Visible())
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeInto(p, "xp:add interview 5")
	assert.Len(t, p.Matches(), 1)

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, components.PaletteCancelMsg{}, cmd())
	assert.False(t, p.Visible())
}
