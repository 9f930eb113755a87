package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"upmind/internal/modules/phase/domain"
	"upmind/internal/modules/phase/dto"
	phasein "upmind/internal/modules/phase/port/in"
	phaseout "upmind/internal/modules/phase/port/out"
	"upmind/internal/modules/phase/service"
	"upmind/internal/platform/clock"
	apperrors "upmind/internal/platform/errors"
	"upmind/internal/platform/id"
	"upmind/internal/platform/logging"
	"upmind/internal/platform/metrics"
)

const DefaultInterval = 250 * time.Millisecond

const (
	outcomeStarted   = "started"
	outcomeCompleted = "completed"
	outcomeStopped   = "stopped"
	outcomeFailed    = "failed"
)

type Dependencies struct {
	Service  *service.RunService
	Active   phaseout.ActiveRunStore
	Notes    phaseout.RunNoteWriter
	Rewarder phaseout.Rewarder
	Clock    clock.Clock
	IDs      id.Generator
	Logger   *zap.Logger
	Metrics  *metrics.Recorder
}

type Interactor struct {
	mu     sync.Mutex
	deps   Dependencies
	logger *zap.Logger
}

func NewInteractor(deps Dependencies) phasein.Usecase {
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.IDs == nil {
		deps.IDs = id.UUID{}
	}
	return &Interactor{deps: deps, logger: logging.OrNop(deps.Logger).Named("phase")}
}

func (i *Interactor) ListTechniques(_ context.Context) ([]dto.TechniqueOutput, error) {
	techniques := i.deps.Service.Techniques()
	out := make([]dto.TechniqueOutput, 0, len(techniques))
	for _, t := range techniques {
		out = append(out, toTechniqueOutput(t))
	}
	return out, nil
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.RunOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	tech, err := i.deps.Service.Technique(input.TechniqueID)
	if err != nil {
		return dto.RunOutput{}, err
	}
	if _, err := i.deps.Active.LoadActive(ctx); err == nil {
		return dto.RunOutput{}, apperrors.ErrActiveSessionExists
	} else if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return dto.RunOutput{}, err
	}
	now := i.deps.Clock.Now().UTC()
	run, _, err := i.deps.Service.Start(tech, i.deps.IDs.New(), now)
	if err != nil {
		return dto.RunOutput{}, err
	}
	if err := i.deps.Active.SaveActive(ctx, run); err != nil {
		i.deps.Service.Stop()
		return dto.RunOutput{}, err
	}
	i.deps.Metrics.PhaseRun(tech.ID, outcomeStarted)
	i.logger.Info("phase run started", zap.String("run_id", run.RunID), zap.String("technique", tech.ID))
	_, state := i.deps.Service.Current()
	return toRunOutput(run, state), nil
}

// Advance feeds elapsed time to the running machine. A run whose marker was
// cleared elsewhere is treated as stopped and never rewarded.
func (i *Interactor) Advance(ctx context.Context, elapsed time.Duration) (dto.AdvanceOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	run, state := i.deps.Service.Current()
	if state.Status != domain.StatusRunning {
		return dto.AdvanceOutput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.deps.Active.LoadActive(ctx)
	switch {
	case errors.Is(err, apperrors.ErrNoActiveSession), err == nil && active.RunID != run.RunID:
		stopped, _ := i.deps.Service.Stop()
		i.deps.Metrics.PhaseRun(stopped.TechniqueID, outcomeStopped)
		i.logger.Info("phase run stopped externally", zap.String("run_id", stopped.RunID))
		_, state = i.deps.Service.Current()
		return dto.AdvanceOutput{Run: toRunOutput(stopped, state), Stopped: true}, nil
	case err != nil:
		i.logger.Warn("read active run marker", zap.Error(err))
	}

	now := i.deps.Clock.Now().UTC()
	run, state, events := i.deps.Service.Tick(elapsed, now)
	out := dto.AdvanceOutput{Run: toRunOutput(run, state), Events: toEventOutputs(events)}
	phaseChanged := false
	for _, e := range events {
		switch e.Kind {
		case domain.EventCompleted:
			return i.complete(ctx, run, now, out)
		case domain.EventPhaseStarted:
			phaseChanged = true
		}
	}
	if phaseChanged {
		if err := i.deps.Active.SaveActive(ctx, run); err != nil {
			i.logger.Warn("update active run marker", zap.Error(err))
		}
	}
	return out, nil
}

func (i *Interactor) complete(ctx context.Context, run domain.ActiveRun, now time.Time, out dto.AdvanceOutput) (dto.AdvanceOutput, error) {
	out.Completed = true
	tech, err := i.deps.Service.Technique(run.TechniqueID)
	if err != nil {
		return out, err
	}
	award, err := i.deps.Rewarder.Award(ctx, domain.AwardRequest{
		RunID:        run.RunID,
		Activity:     tech.Activity,
		Difficulty:   tech.Difficulty,
		FocusMinutes: tech.FocusMinutes,
	})
	if err != nil {
		i.clear(ctx)
		i.deps.Metrics.PhaseRun(tech.ID, outcomeFailed)
		return out, fmt.Errorf("award run %s: %w", run.RunID, err)
	}
	out.Award = &dto.AwardOutput{XP: award.XP, Category: award.Category, Message: award.Message}

	path, err := i.deps.Notes.WriteRun(ctx, domain.RunRecord{
		RunID:     run.RunID,
		Technique: tech,
		StartedAt: run.StartedAt,
		EndedAt:   now,
		Award:     award,
	})
	if err != nil {
		i.logger.Warn("write session note", zap.String("run_id", run.RunID), zap.Error(err))
	}
	out.NotePath = path
	i.clear(ctx)
	i.deps.Metrics.PhaseRun(tech.ID, outcomeCompleted)
	i.logger.Info("phase run completed",
		zap.String("run_id", run.RunID),
		zap.String("technique", tech.ID),
		zap.Int("xp", award.XP))
	return out, nil
}

func (i *Interactor) clear(ctx context.Context) {
	if err := i.deps.Active.ClearActive(ctx); err != nil {
		i.logger.Warn("clear active run marker", zap.Error(err))
	}
}

func (i *Interactor) Stop(ctx context.Context) (dto.RunOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	run, stopped := i.deps.Service.Stop()
	if !stopped {
		active, err := i.deps.Active.LoadActive(ctx)
		if err != nil {
			return dto.RunOutput{}, err
		}
		run = active
	}
	if err := i.deps.Active.ClearActive(ctx); err != nil {
		return dto.RunOutput{}, err
	}
	i.deps.Metrics.PhaseRun(run.TechniqueID, outcomeStopped)
	i.logger.Info("phase run stopped", zap.String("run_id", run.RunID), zap.String("technique", run.TechniqueID))
	_, state := i.deps.Service.Current()
	return toRunOutput(run, state), nil
}

func (i *Interactor) Status(ctx context.Context) (dto.RunOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	run, state := i.deps.Service.Current()
	if state.Status == domain.StatusRunning {
		return toRunOutput(run, state), nil
	}
	active, err := i.deps.Active.LoadActive(ctx)
	if err != nil {
		return dto.RunOutput{}, err
	}
	out := toRunOutput(active, domain.State{Status: domain.StatusRunning, Cycle: active.Cycle, Cycles: active.Cycles, Phase: active.Phase})
	out.ElapsedSeconds = i.deps.Clock.Now().Sub(active.StartedAt).Seconds()
	out.Detached = true
	return out, nil
}

// Run starts a technique and drives it from a ticker until it completes, is
// stopped, or ctx is done. Cancellation stops the run without reward.
func (i *Interactor) Run(ctx context.Context, input dto.RunInput, observer phasein.Observer) (dto.AdvanceOutput, error) {
	interval := input.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	started, err := i.Start(ctx, dto.StartInput{TechniqueID: input.TechniqueID})
	if err != nil {
		return dto.AdvanceOutput{}, err
	}
	notify(observer, dto.AdvanceOutput{Run: started})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return i.cancelled(ctx, observer)
		case at := <-ticker.C:
			if ctx.Err() != nil {
				return i.cancelled(ctx, observer)
			}
			elapsed := at.Sub(last)
			last = at
			out, err := i.Advance(ctx, elapsed)
			if errors.Is(err, apperrors.ErrNoActiveSession) {
				out = dto.AdvanceOutput{Run: started, Stopped: true}
				out.Run.Status = string(domain.StatusIdle)
				notify(observer, out)
				return out, nil
			}
			if err != nil {
				return out, err
			}
			notify(observer, out)
			if out.Completed || out.Stopped {
				return out, nil
			}
		}
	}
}

func (i *Interactor) cancelled(ctx context.Context, observer phasein.Observer) (dto.AdvanceOutput, error) {
	run, err := i.Stop(context.WithoutCancel(ctx))
	if err != nil && !errors.Is(err, apperrors.ErrNoActiveSession) {
		return dto.AdvanceOutput{}, err
	}
	out := dto.AdvanceOutput{Run: run, Stopped: true}
	notify(observer, out)
	return out, nil
}

func notify(observer phasein.Observer, out dto.AdvanceOutput) {
	if observer != nil {
		observer(out)
	}
}

func toTechniqueOutput(t domain.Technique) dto.TechniqueOutput {
	out := dto.TechniqueOutput{
		ID:           t.ID,
		Name:         t.Name,
		Activity:     t.Activity,
		Difficulty:   t.Difficulty,
		Cycles:       t.Cycles,
		FocusMinutes: t.FocusMinutes,
		TotalSeconds: t.TotalDuration().Seconds(),
		Phases:       make([]dto.PhaseOutput, 0, len(t.Phases)),
	}
	for _, p := range t.Phases {
		out.Phases = append(out.Phases, dto.PhaseOutput{Kind: string(p.Kind), Seconds: p.Duration.Seconds()})
	}
	return out
}

func toRunOutput(run domain.ActiveRun, state domain.State) dto.RunOutput {
	return dto.RunOutput{
		RunID:            run.RunID,
		TechniqueID:      run.TechniqueID,
		TechniqueName:    run.TechniqueName,
		Status:           string(state.Status),
		Cycle:            state.Cycle,
		Cycles:           run.Cycles,
		Phase:            string(state.Phase),
		RemainingSeconds: state.Remaining.Seconds(),
		ElapsedSeconds:   state.Elapsed.Seconds(),
		StartedAt:        run.StartedAt,
	}
}

func toEventOutputs(events []domain.Event) []dto.EventOutput {
	out := make([]dto.EventOutput, 0, len(events))
	for _, e := range events {
		out = append(out, dto.EventOutput{
			Kind:    string(e.Kind),
			Cycle:   e.Cycle,
			Phase:   string(e.Phase),
			Seconds: e.Duration.Seconds(),
		})
	}
	return out
}
