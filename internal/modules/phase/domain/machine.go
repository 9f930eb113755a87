package domain

import (
	"time"

	apperrors "upmind/internal/platform/errors"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

type EventKind string

const (
	EventPhaseStarted EventKind = "phase_started"
	EventCompleted    EventKind = "completed"
)

type Event struct {
	Kind     EventKind
	Cycle    int
	Index    int
	Phase    PhaseKind
	Duration time.Duration
}

type State struct {
	Status      Status
	TechniqueID string
	Cycle       int
	Cycles      int
	Index       int
	Phase       PhaseKind
	Remaining   time.Duration
	Elapsed     time.Duration
}

// Machine walks a technique's phases cycle by cycle. It has no clock of its
// own; callers feed elapsed time through Tick. Not safe for concurrent use.
type Machine struct {
	technique Technique
	status    Status
	cycle     int
	index     int
	remaining time.Duration
	elapsed   time.Duration
}

func NewMachine() *Machine {
	return &Machine{status: StatusIdle}
}

// Start arms the first timed phase of cycle one. A running machine rejects
// a second start; a completed one may be restarted.
func (m *Machine) Start(t Technique) (Event, error) {
	if m.status == StatusRunning {
		return Event{}, apperrors.ErrActiveSessionExists
	}
	if err := t.Validate(); err != nil {
		return Event{}, err
	}
	*m = Machine{technique: t, status: StatusRunning, cycle: 1, index: -1}
	m.advance()
	return m.phaseStarted(), nil
}

// Tick consumes elapsed time, possibly crossing several phase boundaries.
// Time left over after a boundary counts toward the next phase.
func (m *Machine) Tick(elapsed time.Duration) []Event {
	if m.status != StatusRunning || elapsed <= 0 {
		return nil
	}
	m.elapsed += elapsed
	var events []Event
	for elapsed >= m.remaining {
		elapsed -= m.remaining
		if !m.advance() {
			m.status = StatusCompleted
			m.remaining = 0
			return append(events, Event{Kind: EventCompleted, Cycle: m.technique.Cycles})
		}
		events = append(events, m.phaseStarted())
	}
	m.remaining -= elapsed
	return events
}

// Stop halts a running machine and reports whether it was running.
func (m *Machine) Stop() bool {
	if m.status != StatusRunning {
		return false
	}
	*m = Machine{status: StatusIdle}
	return true
}

func (m *Machine) State() State {
	s := State{
		Status:      m.status,
		TechniqueID: m.technique.ID,
		Cycles:      m.technique.Cycles,
		Elapsed:     m.elapsed,
	}
	if m.status == StatusRunning {
		s.Cycle = m.cycle
		s.Index = m.index
		s.Phase = m.technique.Phases[m.index].Kind
		s.Remaining = m.remaining
	}
	return s
}

// advance moves to the next phase with a positive duration, wrapping into
// the next cycle. It returns false once the last cycle is exhausted.
func (m *Machine) advance() bool {
	phases := m.technique.Phases
	for {
		m.index++
		if m.index >= len(phases) {
			m.index = 0
			m.cycle++
		}
		if m.cycle > m.technique.Cycles {
			return false
		}
		if d := phases[m.index].Duration; d > 0 {
			m.remaining = d
			return true
		}
	}
}

func (m *Machine) phaseStarted() Event {
	return Event{
		Kind:     EventPhaseStarted,
		Cycle:    m.cycle,
		Index:    m.index,
		Phase:    m.technique.Phases[m.index].Kind,
		Duration: m.remaining,
	}
}
