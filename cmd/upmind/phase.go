package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"upmind/internal/bootstrap"
	phasedto "upmind/internal/modules/phase/dto"
)

func newPhaseCmd(opts *rootOptions) *cobra.Command {
	phase := &cobra.Command{Use: "phase", Short: "Timed breathing and focus sessions"}

	phase.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the technique catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				techniques, err := app.PhaseCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), techniques)
				}
				for _, t := range techniques {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-26s %2d cycles  %s\n", t.ID, t.Name, t.Cycles, (time.Duration(t.TotalSeconds) * time.Second).String())
				}
				return nil
			})
		},
	})

	var interval time.Duration
	run := &cobra.Command{
		Use:   "run <technique>",
		Short: "Run a technique in the foreground; Ctrl-C stops without reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				tick := interval
				if tick <= 0 {
					tick = app.Config.Phase.Tick
				}
				w := cmd.OutOrStdout()
				last, err := app.PhaseCLI.Run(cmd.Context(), args[0], tick, func(step phasedto.AdvanceOutput) {
					if !opts.jsonOut {
						printEvents(w, step)
					}
				})
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(w, last)
				}
				printOutcome(w, last)
				return nil
			})
		},
	}
	run.Flags().DurationVar(&interval, "interval", 0, "tick interval (default from config)")
	phase.AddCommand(run)

	phase.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the active run, if any",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				out, err := app.PhaseCLI.Status(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), out)
				}
				printRun(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	phase.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the active run, including one driven by another process",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				out, err := app.PhaseCLI.Stop(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stopped %s (%s)\n", out.TechniqueName, out.RunID)
				return nil
			})
		},
	})
	return phase
}

func printEvents(w io.Writer, step phasedto.AdvanceOutput) {
	for _, e := range step.Events {
		if e.Kind != "phase_started" {
			continue
		}
		_, _ = fmt.Fprintf(w, "cycle %d/%d  %-9s %s\n", e.Cycle, step.Run.Cycles, e.Phase, (time.Duration(e.Seconds * float64(time.Second))).Round(time.Second))
	}
}

func printRun(w io.Writer, out phasedto.RunOutput) {
	where := "this process"
	if out.Detached {
		where = "another process"
	}
	_, _ = fmt.Fprintf(w, "%s (%s) %s, cycle %d/%d, started %s, driven by %s\n",
		out.TechniqueName, out.RunID, out.Status, out.Cycle, out.Cycles, out.StartedAt.Local().Format(time.Kitchen), where)
}

func printOutcome(w io.Writer, last phasedto.AdvanceOutput) {
	switch {
	case last.Completed && last.Award != nil:
		_, _ = fmt.Fprintf(w, "completed: +%d %s xp\n%s\n", last.Award.XP, last.Award.Category, last.Award.Message)
		if last.NotePath != "" {
			_, _ = fmt.Fprintf(w, "note %s\n", last.NotePath)
		}
	case last.Stopped:
		_, _ = fmt.Fprintln(w, "stopped, no xp awarded")
	default:
		_, _ = fmt.Fprintln(w, "run ended")
	}
}
