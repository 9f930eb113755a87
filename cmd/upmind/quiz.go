package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"upmind/internal/bootstrap"
	quizdto "upmind/internal/modules/quiz/dto"
)

func newQuizCmd(opts *rootOptions) *cobra.Command {
	quiz := &cobra.Command{Use: "quiz", Short: "Generate practice questions"}

	var input quizdto.GenerateInput
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate questions for a topic; falls back to a local set offline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				out, err := app.QuizCLI.Generate(cmd.Context(), input)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), out)
				}
				printQuestions(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	generate.Flags().StringVar(&input.Title, "title", "", "topic or video title")
	generate.Flags().StringVar(&input.Description, "description", "", "short description")
	generate.Flags().StringSliceVar(&input.TechStack, "tech", nil, "technologies covered")
	generate.Flags().StringVar(&input.Difficulty, "difficulty", "beginner", "beginner|intermediate|advanced")
	generate.Flags().StringVar(&input.Category, "category", "general", "coding|career|startup|general")
	_ = generate.MarkFlagRequired("title")
	quiz.AddCommand(generate)

	quiz.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Check every configured question provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				statuses, err := app.QuizCLI.Ping(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), statuses)
				}
				if len(statuses) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no providers configured; questions come from the local fallback")
					return nil
				}
				for _, s := range statuses {
					state := "ok"
					if !s.OK {
						state = "down: " + s.Error
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-7s %s\n", s.Provider, state)
				}
				return nil
			})
		},
	})
	return quiz
}

func printQuestions(w io.Writer, out quizdto.GenerateOutput) {
	_, _ = fmt.Fprintf(w, "source: %s\n", out.Provider)
	for i, q := range out.Questions {
		_, _ = fmt.Fprintf(w, "\n%d. %s\n", i+1, q.Question)
		for j, o := range q.Options {
			mark := " "
			if j == q.CorrectAnswer {
				mark = "*"
			}
			_, _ = fmt.Fprintf(w, "  %s %c) %s\n", mark, 'A'+rune(j), o)
		}
		if strings.TrimSpace(q.Explanation) != "" {
			_, _ = fmt.Fprintf(w, "  %s\n", q.Explanation)
		}
	}
}
