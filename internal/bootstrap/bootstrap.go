package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	historyinadapter "upmind/internal/modules/history/adapter/in"
	historyoutadapter "upmind/internal/modules/history/adapter/out"
	historyservice "upmind/internal/modules/history/service"
	historyusecase "upmind/internal/modules/history/usecase"
	journalinadapter "upmind/internal/modules/journal/adapter/in"
	journaloutadapter "upmind/internal/modules/journal/adapter/out"
	journalservice "upmind/internal/modules/journal/service"
	journalusecase "upmind/internal/modules/journal/usecase"
	phaseinadapter "upmind/internal/modules/phase/adapter/in"
	phaseoutadapter "upmind/internal/modules/phase/adapter/out"
	phasedomain "upmind/internal/modules/phase/domain"
	phaseservice "upmind/internal/modules/phase/service"
	phaseusecase "upmind/internal/modules/phase/usecase"
	quizinadapter "upmind/internal/modules/quiz/adapter/in"
	quizoutadapter "upmind/internal/modules/quiz/adapter/out"
	quizout "upmind/internal/modules/quiz/port/out"
	quizservice "upmind/internal/modules/quiz/service"
	quizusecase "upmind/internal/modules/quiz/usecase"
	rewardinadapter "upmind/internal/modules/reward/adapter/in"
	rewardoutadapter "upmind/internal/modules/reward/adapter/out"
	rewardusecase "upmind/internal/modules/reward/usecase"
	streakinadapter "upmind/internal/modules/streak/adapter/in"
	streakoutadapter "upmind/internal/modules/streak/adapter/out"
	streakservice "upmind/internal/modules/streak/service"
	streakusecase "upmind/internal/modules/streak/usecase"
	xpinadapter "upmind/internal/modules/xp/adapter/in"
	xpoutadapter "upmind/internal/modules/xp/adapter/out"
	xpservice "upmind/internal/modules/xp/service"
	xpusecase "upmind/internal/modules/xp/usecase"
	"upmind/internal/platform/clock"
	"upmind/internal/platform/config"
	"upmind/internal/platform/id"
	"upmind/internal/platform/kv"
	"upmind/internal/platform/metrics"
	"upmind/internal/platform/tx"
	"upmind/internal/server"
	uiapp "upmind/internal/ui/app"
)

type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry

	XPCLI      xpinadapter.CLIHandler
	StreakCLI  streakinadapter.CLIHandler
	HistoryCLI historyinadapter.CLIHandler
	JournalCLI journalinadapter.CLIHandler
	RewardCLI  rewardinadapter.CLIHandler
	PhaseCLI   phaseinadapter.CLIHandler
	PhaseTUI   phaseinadapter.TUIHandler
	QuizCLI    quizinadapter.CLIHandler

	routes []server.Routes
	closer func() error
}

// New wires every module against the configured storage backend. The
// caller owns the returned App and must Close it.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	store, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	txm := tx.For(store)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(registry)

	xpUC := xpusecase.NewInteractor(xpservice.NewLedgerService(ctx, xpoutadapter.NewKVLedgerStore(store), logger, rec))
	streakUC := streakusecase.NewInteractor(streakservice.NewStatsService(ctx, clk, streakoutadapter.NewKVStatsStore(store), logger, rec))
	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(ctx, clk, historyoutadapter.NewKVHistoryStore(store), logger, rec))
	journalUC := journalusecase.NewInteractor(
		journalservice.NewJournalService(ctx, clk, ids, journaloutadapter.NewKVJournalStore(store), logger, rec),
		journaloutadapter.NewVaultExporter(cfg.VaultPath),
	)
	rewardUC := rewardusecase.NewInteractor(rewardusecase.Dependencies{
		XP:       xpUC,
		Streak:   streakUC,
		History:  historyUC,
		Journal:  journalUC,
		Tx:       txm,
		Clock:    clk,
		Progress: rewardoutadapter.NewVaultProgressWriter(cfg.VaultPath),
		Logger:   logger,
	})

	catalog, err := buildCatalog(cfg.Techniques)
	if err != nil {
		_ = closer()
		return nil, err
	}
	phaseUC := phaseusecase.NewInteractor(phaseusecase.Dependencies{
		Service:  phaseservice.NewRunService(catalog),
		Active:   phaseoutadapter.NewFileActiveRunStore(cfg.StateDir),
		Notes:    phaseoutadapter.NewVaultNoteWriter(cfg.VaultPath),
		Rewarder: phaseoutadapter.NewRewardAdapter(rewardUC),
		Clock:    clk,
		IDs:      ids,
		Logger:   logger,
		Metrics:  rec,
	})

	quizUC := quizusecase.NewInteractor(quizservice.NewQuizService(quizProviders(cfg.Quiz, logger), logger, rec))

	return &App{
		Config:     cfg,
		Logger:     logger,
		Registry:   registry,
		XPCLI:      xpinadapter.NewCLIHandler(xpUC),
		StreakCLI:  streakinadapter.NewCLIHandler(streakUC),
		HistoryCLI: historyinadapter.NewCLIHandler(historyUC),
		JournalCLI: journalinadapter.NewCLIHandler(journalUC),
		RewardCLI:  rewardinadapter.NewCLIHandler(rewardUC),
		PhaseCLI:   phaseinadapter.NewCLIHandler(phaseUC),
		PhaseTUI:   phaseinadapter.NewTUIHandler(phaseUC),
		QuizCLI:    quizinadapter.NewCLIHandler(quizUC),
		routes: []server.Routes{
			xpinadapter.NewHTTPHandler(xpUC),
			streakinadapter.NewHTTPHandler(streakUC),
			historyinadapter.NewHTTPHandler(historyUC),
			journalinadapter.NewHTTPHandler(journalUC),
			rewardinadapter.NewHTTPHandler(rewardUC),
			phaseinadapter.NewHTTPHandler(phaseUC),
			quizinadapter.NewHTTPHandler(quizUC),
		},
		closer: closer,
	}, nil
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

// Handler returns the HTTP API with every module mounted.
func (a *App) Handler() http.Handler {
	return server.NewRouter(a.Registry, a.Logger, a.routes...)
}

// Serve runs the HTTP API on the configured address until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	return server.Serve(ctx, a.Config.Server.Addr, a.Handler(), a.Logger)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(uiapp.Dependencies{
		VaultPath: app.Config.VaultPath,
		Tick:      app.Config.Phase.Tick,
		XP:        app.XPCLI,
		Reward:    app.RewardCLI,
		Journal:   app.JournalCLI,
		Phase:     app.PhaseTUI,
		Quiz:      app.QuizCLI,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func openStore(cfg config.Config) (kv.Store, func() error, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return kv.NewMemoryStore(), func() error { return nil }, nil
	case config.StorageFile:
		return kv.NewFileStore(filepath.Join(cfg.StateDir, "state")), func() error { return nil }, nil
	case config.StorageSQLite, "":
		store, err := kv.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

func buildCatalog(techniques []config.TechniqueConfig) (*phasedomain.Catalog, error) {
	extra := make([]phasedomain.Technique, 0, len(techniques))
	for _, tc := range techniques {
		phases := make([]phasedomain.PhaseSpec, 0, len(tc.Phases))
		for _, p := range tc.Phases {
			phases = append(phases, phasedomain.PhaseSpec{
				Kind:     phasedomain.PhaseKind(p.Kind),
				Duration: time.Duration(p.Seconds) * time.Second,
			})
		}
		extra = append(extra, phasedomain.Technique{
			ID:           tc.ID,
			Name:         tc.Name,
			Activity:     tc.Activity,
			Difficulty:   tc.Difficulty,
			Cycles:       tc.Cycles,
			FocusMinutes: tc.FocusMinutes,
			Phases:       phases,
		})
	}
	catalog, err := phasedomain.NewCatalog(extra...)
	if err != nil {
		return nil, fmt.Errorf("build technique catalog: %w", err)
	}
	return catalog, nil
}

// quizProviders builds the configured providers in order, skipping any
// that cannot be constructed. The usecase still falls back locally when
// none remain.
func quizProviders(cfg config.QuizConfig, logger *zap.Logger) []quizout.Provider {
	providers := make([]quizout.Provider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		var (
			p   quizout.Provider
			err error
		)
		switch name {
		case config.ProviderRemote:
			p, err = quizoutadapter.NewRemoteProvider(quizoutadapter.RemoteConfig{
				BaseURL: cfg.BaseURL,
				APIKey:  cfg.APIKey,
				Model:   cfg.Model,
				Timeout: cfg.Timeout,
			})
		case config.ProviderPlugin:
			p, err = quizoutadapter.NewPluginProvider(quizoutadapter.PluginConfig{
				Binary:  cfg.PluginBinary,
				SHA256:  cfg.PluginSHA256,
				Timeout: cfg.Timeout,
			}, logger)
		default:
			err = fmt.Errorf("unknown quiz provider %q", name)
		}
		if err != nil {
			logger.Debug("quiz provider disabled", zap.String("provider", name), zap.Error(err))
			continue
		}
		providers = append(providers, p)
	}
	return providers
}
