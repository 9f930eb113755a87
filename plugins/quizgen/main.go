// Command quizgen is a reference quiz provider served over go-plugin. It
// builds questions from a small local bank so the host can be exercised
// without network access.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-plugin"

	quizrpc "upmind/internal/modules/quiz/adapter/out/rpc"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *quizrpc.Empty) (*quizrpc.Metadata, error) {
	return &quizrpc.Metadata{
		Name:       "quizgen",
		Version:    "1.0.0",
		Categories: []string{"coding", "career", "startup", "general"},
	}, nil
}

func (s *server) Generate(_ context.Context, in *quizrpc.GenerateRequest) (*quizrpc.GenerateResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	subject := title
	if len(in.TechStack) > 0 {
		subject = in.TechStack[0]
	}
	questions := []quizrpc.Question{
		{
			Question:      fmt.Sprintf("Which habit helps most when learning %s?", subject),
			Options:       []string{"Reading once", "Practicing in small steps", "Skipping the basics", "Memorizing syntax only"},
			CorrectAnswer: 1,
			Explanation:   "Short, repeated practice builds durable understanding.",
		},
		{
			Question:      fmt.Sprintf("What is the best way to check your understanding of %q?", title),
			Options:       []string{"Explain it to someone else", "Rewatch it at 2x", "Bookmark it", "Move on quickly"},
			CorrectAnswer: 0,
			Explanation:   "Teaching forces you to find the gaps in what you know.",
		},
	}
	switch in.Category {
	case "career":
		questions = append(questions, quizrpc.Question{
			Question:      "What makes feedback from a mentor most useful?",
			Options:       []string{"Hearing only praise", "Acting on it and following up", "Asking once a year", "Comparing it with peers"},
			CorrectAnswer: 1,
			Explanation:   "Feedback pays off when you apply it and close the loop.",
		})
	case "startup":
		questions = append(questions, quizrpc.Question{
			Question:      "What should an early product experiment measure?",
			Options:       []string{"Office size", "Logo quality", "Whether users come back", "Number of features"},
			CorrectAnswer: 2,
			Explanation:   "Retention is the clearest early signal of real value.",
		})
	default:
		questions = append(questions, quizrpc.Question{
			Question:      fmt.Sprintf("At %s level, where should you focus first?", levelOrDefault(in.Difficulty)),
			Options:       []string{"Edge cases", "Core concepts", "Tooling trivia", "Performance tuning"},
			CorrectAnswer: 1,
			Explanation:   "Solid fundamentals make every later topic easier.",
		})
	}
	return &quizrpc.GenerateResponse{Questions: questions}, nil
}

func levelOrDefault(level string) string {
	if strings.TrimSpace(level) == "" {
		return "beginner"
	}
	return level
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: quizrpc.HandshakeConfig,
		Plugins:         quizrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
