package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"upmind/internal/bootstrap"
	rewarddto "upmind/internal/modules/reward/dto"
	streakdto "upmind/internal/modules/streak/dto"
	xpdto "upmind/internal/modules/xp/dto"
)

func printLedger(w io.Writer, ledger xpdto.LedgerOutput) {
	for _, c := range ledger.Categories {
		_, _ = fmt.Fprintf(w, "%-11s level %-3d %6s xp  %3.0f%% to %d\n", c.Category, c.Level, c.Formatted, c.Progress, c.NextLevelAt)
	}
	_, _ = fmt.Fprintf(w, "total      %d xp\n", ledger.TotalXP)
}

func printStats(w io.Writer, s streakdto.StatsOutput) {
	last := s.LastSessionDate
	if last == "" {
		last = "never"
	}
	_, _ = fmt.Fprintf(w, "streak %d (longest %d)\nsessions %d total, %d today\nfocus %d min\nlast session %s\n",
		s.CurrentStreak, s.LongestStreak, s.TotalSessions, s.SessionsToday, s.TotalFocusTime, last)
}

func newXPCmd(opts *rootOptions) *cobra.Command {
	xp := &cobra.Command{Use: "xp", Short: "Inspect and change the XP ledger"}

	xp.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show XP per category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				ledger, err := app.XPCLI.Ledger(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), ledger)
				}
				printLedger(cmd.OutOrStdout(), ledger)
				return nil
			})
		},
	})

	xp.AddCommand(&cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Add XP to interview, resilience or confidence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("amount must be an integer: %w", err)
			}
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				ledger, err := app.XPCLI.Add(cmd.Context(), args[0], amount)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), ledger)
				}
				printLedger(cmd.OutOrStdout(), ledger)
				return nil
			})
		},
	})

	xp.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset every category to zero",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				if _, err := app.XPCLI.Reset(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "xp reset")
				return nil
			})
		},
	})
	return xp
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Session statistics and streaks"}

	stats.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show session stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				s, err := app.StreakCLI.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), s)
				}
				printStats(cmd.OutOrStdout(), s)
				return nil
			})
		},
	})

	stats.AddCommand(&cobra.Command{
		Use:   "complete <minutes>",
		Short: "Record a completed focus session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("minutes must be an integer: %w", err)
			}
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				s, err := app.StreakCLI.Complete(cmd.Context(), minutes)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), s)
				}
				printStats(cmd.OutOrStdout(), s)
				return nil
			})
		},
	})

	stats.AddCommand(&cobra.Command{
		Use:   "reset-streaks",
		Short: "Zero the current and longest streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				if _, err := app.StreakCLI.ResetStreaks(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "streaks reset")
				return nil
			})
		},
	})
	return stats
}

func newTaskCmd(opts *rootOptions) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Complete and inspect tasks"}

	var activity, difficulty, note string
	complete := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Complete a task and earn XP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				out, err := app.RewardCLI.CompleteTask(cmd.Context(), args[0], activity, difficulty, note)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), out)
				}
				printAward(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	complete.Flags().StringVar(&activity, "activity", "mini-task", "activity type, e.g. interview|mindset|mini-task|reflection")
	complete.Flags().StringVar(&difficulty, "difficulty", "medium", "easy|medium|hard")
	complete.Flags().StringVar(&note, "note", "", "what you did (at least 20 characters)")

	task.AddCommand(complete)

	task.AddCommand(&cobra.Command{
		Use:   "check <task-id>",
		Short: "Report whether a task has been completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				done, err := app.HistoryCLI.Check(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), map[string]any{"id": args[0], "completed": done})
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s completed=%t\n", args[0], done)
				return nil
			})
		},
	})

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List completed tasks, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				entries, err := app.HistoryCLI.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), entries)
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
					return nil
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s %-12s +%d xp\n", e.CompletedAt.Local().Format(time.DateTime), e.ID, e.ActivityType, e.XPEarned)
				}
				return nil
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum entries (0 for all)")
	task.AddCommand(list)
	return task
}

func printAward(w io.Writer, out rewarddto.AwardOutput) {
	_, _ = fmt.Fprintf(w, "+%d %s xp (level %d, total %d)\n%s\n", out.XP, out.Category, out.CategoryLevel, out.TotalXP, out.Message)
}

func newJournalCmd(opts *rootOptions) *cobra.Command {
	journal := &cobra.Command{Use: "journal", Short: "Write and read journal entries"}

	var mood string
	var tags []string
	write := &cobra.Command{
		Use:   "write <text...>",
		Short: "Write a journal entry and earn XP",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				out, err := app.RewardCLI.WriteJournal(cmd.Context(), strings.Join(args, " "), mood, tags)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), out)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", out.Entry.ID)
				printAward(cmd.OutOrStdout(), out.Award)
				return nil
			})
		},
	}
	write.Flags().StringVar(&mood, "mood", "neutral", "positive|neutral|negative")
	write.Flags().StringSliceVar(&tags, "tags", nil, "tags")
	journal.AddCommand(write)

	var date string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				entries, err := app.JournalCLI.List(cmd.Context(), date, limit)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), entries)
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no entries")
					return nil
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s] %s  %s\n", e.CreatedAt.Local().Format(time.DateTime), e.Mood, e.ID, e.Content)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&date, "date", "", "only entries from this day (YYYY-MM-DD)")
	list.Flags().IntVar(&limit, "limit", 20, "maximum entries (0 for all)")
	journal.AddCommand(list)

	journal.AddCommand(&cobra.Command{
		Use:   "streak",
		Short: "Show the journaling streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				s, err := app.JournalCLI.Streak(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), s)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d day streak, %d entries, journaled today: %t\n", s.StreakDays, s.TotalEntries, s.JournaledToday)
				return nil
			})
		},
	})

	journal.AddCommand(&cobra.Command{
		Use:   "prompt",
		Short: "Print today's writing prompt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				prompt, err := app.JournalCLI.Prompt(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), prompt)
				return nil
			})
		},
	})

	journal.AddCommand(&cobra.Command{
		Use:   "export <entry-id>",
		Short: "Write an entry to the vault as a markdown note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				path, err := app.JournalCLI.Export(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
				return nil
			})
		},
	})
	return journal
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show today's progress, bonus and achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				summary, err := app.RewardCLI.Summary(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOut {
					if err := printJSON(cmd.OutOrStdout(), summary); err != nil {
						return err
					}
				} else {
					printSummary(cmd.OutOrStdout(), summary)
				}
				if !write {
					return nil
				}
				path, err := app.RewardCLI.WriteProgress(cmd.Context())
				if err != nil {
					return err
				}
				if !opts.jsonOut {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "also update Progress.md in the vault")
	return cmd
}

func printSummary(w io.Writer, s rewarddto.SummaryOutput) {
	_, _ = fmt.Fprintf(w, "%s\n\n", s.Date)
	printLedger(w, s.Ledger)
	_, _ = fmt.Fprintln(w)
	printStats(w, s.Stats)
	_, _ = fmt.Fprintf(w, "tasks today %d, journaled %t (journal streak %d)\n", s.TasksToday, s.JournaledToday, s.JournalStreak)
	if s.DailyBonus.HasBonus {
		_, _ = fmt.Fprintf(w, "bonus +%d xp: %s\n", s.DailyBonus.BonusXP, s.DailyBonus.Reason)
	}
	if s.StreakBonusXP > 0 {
		_, _ = fmt.Fprintf(w, "streak bonus +%d xp\n", s.StreakBonusXP)
	}
	_, _ = fmt.Fprintln(w)
	for _, a := range s.Achievements {
		mark := " "
		if a.Unlocked {
			mark = "x"
		}
		_, _ = fmt.Fprintf(w, "[%s] %-18s %3.0f%%  %s\n", mark, a.Title, a.Progress, a.Description)
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase XP, stats, task history and journal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset erases all progress; pass --yes to confirm")
			}
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				if err := app.RewardCLI.ResetAll(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all progress reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
