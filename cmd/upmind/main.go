package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"upmind/internal/bootstrap"
	"upmind/internal/platform/config"
	"upmind/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	vaultPath string
	storage   string
	logLevel  string
	jsonOut   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "upmind",
		Short:         "Personal growth tracker: XP, streaks, journaling and timed sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.vaultPath, "vault", ".", "vault path (state lives in <vault>/.upmind)")
	root.PersistentFlags().StringVar(&opts.storage, "storage", "", "override storage backend: sqlite|file|memory")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print JSON instead of text")

	root.AddCommand(
		newTUICmd(opts),
		newXPCmd(opts),
		newStatsCmd(opts),
		newTaskCmd(opts),
		newJournalCmd(opts),
		newPhaseCmd(opts),
		newQuizCmd(opts),
		newSummaryCmd(opts),
		newServeCmd(opts),
		newResetCmd(opts),
	)
	return root
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.New(opts.vaultPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.storage != "" {
		cfg.Storage = opts.storage
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, cfg.Validate()
}

// withApp wires the application for one command and tears it down after.
func withApp(ctx context.Context, opts *rootOptions, fn func(*bootstrap.App) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	return runApp(ctx, cfg, fn)
}

func runApp(ctx context.Context, cfg config.Config, fn func(*bootstrap.App) error) (err error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			logger.Warn("close app", zap.Error(cerr))
			err = errors.Join(err, cerr)
		}
	}()
	return fn(app)
}

func printJSON(w io.Writer, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cfg.Log.File == "" {
				cfg.Log.File = filepath.Join(cfg.StateDir, "tui.log")
			}
			return runApp(cmd.Context(), cfg, bootstrap.RunTUI)
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runApp(cmd.Context(), cfg, func(app *bootstrap.App) error {
				return app.Serve(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
