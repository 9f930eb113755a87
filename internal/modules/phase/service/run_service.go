package service

import (
	"sync"
	"time"

	"upmind/internal/modules/phase/domain"
)

// RunService owns the technique catalogue and the in-process machine.
type RunService struct {
	mu      sync.Mutex
	catalog *domain.Catalog
	machine *domain.Machine
	run     domain.ActiveRun
}

func NewRunService(catalog *domain.Catalog) *RunService {
	return &RunService{catalog: catalog, machine: domain.NewMachine()}
}

func (s *RunService) Techniques() []domain.Technique {
	return s.catalog.List()
}

func (s *RunService) Technique(id string) (domain.Technique, error) {
	return s.catalog.Get(id)
}

func (s *RunService) Start(t domain.Technique, runID string, at time.Time) (domain.ActiveRun, domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	first, err := s.machine.Start(t)
	if err != nil {
		return domain.ActiveRun{}, domain.Event{}, err
	}
	s.run = domain.ActiveRun{
		RunID:         runID,
		TechniqueID:   t.ID,
		TechniqueName: t.Name,
		StartedAt:     at,
		Cycle:         first.Cycle,
		Cycles:        t.Cycles,
		Phase:         first.Phase,
		UpdatedAt:     at,
	}
	return s.run, first, nil
}

// Tick feeds elapsed time to the machine and keeps the run marker in step
// with the phase it reports.
func (s *RunService) Tick(elapsed time.Duration, at time.Time) (domain.ActiveRun, domain.State, []domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.machine.Tick(elapsed)
	state := s.machine.State()
	for _, e := range events {
		if e.Kind == domain.EventPhaseStarted {
			s.run.Cycle = e.Cycle
			s.run.Phase = e.Phase
			s.run.UpdatedAt = at
		}
	}
	return s.run, state, events
}

// Stop halts the machine and returns the run it was driving.
func (s *RunService) Stop() (domain.ActiveRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run := s.run
	if !s.machine.Stop() {
		return domain.ActiveRun{}, false
	}
	s.run = domain.ActiveRun{}
	return run, true
}

func (s *RunService) Current() (domain.ActiveRun, domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run, s.machine.State()
}
