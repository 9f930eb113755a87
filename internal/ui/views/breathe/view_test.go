package breathe

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	phasedto "upmind/internal/modules/phase/dto"
)

type fakePhase struct {
	elapsed time.Duration
	stopped bool
}

func (f *fakePhase) Techniques(context.Context) ([]phasedto.TechniqueOutput, error) {
	return []phasedto.TechniqueOutput{{ID: "box", Name: "Box Breathing", TotalSeconds: 80}}, nil
}

func (f *fakePhase) Start(_ context.Context, id string) (phasedto.RunOutput, error) {
	return phasedto.RunOutput{TechniqueID: id, TechniqueName: "Box Breathing", Phase: "inhale"}, nil
}

func (f *fakePhase) Advance(_ context.Context, elapsed time.Duration) (phasedto.AdvanceOutput, error) {
	f.elapsed += elapsed
	return phasedto.AdvanceOutput{
		Run:       phasedto.RunOutput{TechniqueName: "Box Breathing", ElapsedSeconds: 80},
		Completed: true,
		Award:     &phasedto.AwardOutput{XP: 12, Category: "resilience"},
	}, nil
}

func (f *fakePhase) Stop(context.Context) (phasedto.RunOutput, error) {
	f.stopped = true
	return phasedto.RunOutput{TechniqueName: "Box Breathing"}, nil
}

func TestRunAdvancesUntilFinished(t *testing.T) {
	t.Parallel()
	port := &fakePhase{}
	m := New(port, time.Millisecond)
	m, _ = m.Update(m.Init()())

	m, cmd := m.Update(StartedMsg{Run: phasedto.RunOutput{TechniqueID: "box", TechniqueName: "Box Breathing", Phase: "inhale"}})
	require.NotNil(t, cmd)
	assert.True(t, m.Running())
	assert.Contains(t, m.View(), "INHALE")

	m, cmd = m.Update(tickMsg{gen: m.gen, at: m.lastTick.Add(2 * time.Second)})
	require.NotNil(t, cmd)
	m, cmd = m.Update(cmd())
	require.NotNil(t, cmd)
	assert.Equal(t, 2*time.Second, port.elapsed)
	assert.False(t, m.Running())

	finished, ok := cmd().(FinishedMsg)
	require.True(t, ok)
	assert.Equal(t, 12, finished.Out.Award.XP)
	assert.Contains(t, m.View(), "+12 resilience xp")
}

func TestEscStopsAndIgnoresStaleTicks(t *testing.T) {
	t.Parallel()
	port := &fakePhase{}
	m := New(port, time.Millisecond)
	m, _ = m.Update(StartedMsg{Run: phasedto.RunOutput{TechniqueID: "box"}})
	gen := m.gen

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.True(t, port.stopped)
	assert.False(t, m.Running())

	m, cmd = m.Update(tickMsg{gen: gen, at: time.Now()})
	assert.Nil(t, cmd)
	assert.Zero(t, port.elapsed)
}
