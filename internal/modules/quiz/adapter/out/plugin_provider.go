package out

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
	"go.uber.org/zap"

	quizrpc "upmind/internal/modules/quiz/adapter/out/rpc"
	"upmind/internal/modules/quiz/domain"
	quizout "upmind/internal/modules/quiz/port/out"
	apperrors "upmind/internal/platform/errors"
	"upmind/internal/platform/logging"
)

const (
	PluginProviderName = "plugin"

	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type PluginConfig struct {
	Binary string
	// SHA256 is the expected hex digest of Binary. Empty skips the check.
	SHA256  string
	Timeout time.Duration
}

type PluginProvider struct {
	cfg    PluginConfig
	logger *zap.Logger
}

func NewPluginProvider(cfg PluginConfig, logger *zap.Logger) (quizout.Provider, error) {
	if strings.TrimSpace(cfg.Binary) == "" {
		return nil, fmt.Errorf("%w: quiz plugin binary is not configured", apperrors.ErrProviderUnavailable)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCallTimeout
	}
	return &PluginProvider{cfg: cfg, logger: logging.OrNop(logger).Named("quizgen")}, nil
}

func (p *PluginProvider) Name() string { return PluginProviderName }

func (p *PluginProvider) Generate(ctx context.Context, request domain.Request) ([]domain.Question, error) {
	client, closeFn, err := p.connect()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := p.callContext(ctx)
	defer cancel()
	resp, err := client.Generate(callCtx, &quizrpc.GenerateRequest{
		Title:       request.Title,
		Description: request.Description,
		TechStack:   request.TechStack,
		Difficulty:  string(request.Difficulty),
		Category:    request.Category,
		Prompt:      domain.BuildPrompt(request),
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	out := make([]domain.Question, 0, len(resp.Questions))
	for _, q := range resp.Questions {
		out = append(out, domain.Question{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: int(q.CorrectAnswer),
			Explanation:   q.Explanation,
		})
	}
	return out, nil
}

func (p *PluginProvider) Ping(ctx context.Context) error {
	client, closeFn, err := p.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := p.callContext(ctx)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	p.logger.Debug("quiz plugin reachable", zap.String("name", meta.Name), zap.String("version", meta.Version))
	return nil
}

func (p *PluginProvider) connect() (quizrpc.QuestionGeneratorClient, func(), error) {
	if p.cfg.SHA256 != "" {
		if err := checksumMatches(p.cfg.Binary, p.cfg.SHA256); err != nil {
			return nil, nil, err
		}
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  quizrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          quizrpc.PluginMap(nil),
		Cmd:              exec.Command(p.cfg.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           p.hclogger(),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start quiz plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(quizrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense quiz plugin: %w", err)
	}
	typed, ok := raw.(quizrpc.QuestionGeneratorClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("quiz plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

// hclogger routes go-plugin's own logging into zap at the level zap has
// enabled, so plugin chatter stays quiet unless debug logging is on.
func (p *PluginProvider) hclogger() hclog.Logger {
	level := hclog.Warn
	if p.logger.Core().Enabled(zap.DebugLevel) {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "quizgen",
		Output: zap.NewStdLog(p.logger).Writer(),
		Level:  level,
	})
}

// callContext bounds a call by the configured timeout or the parent's
// deadline, whichever comes first.
func (p *PluginProvider) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, p.cfg.Timeout)
}

func checksumMatches(path, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read quiz plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if actual := hex.EncodeToString(hash[:]); !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w: checksum mismatch for %s", apperrors.ErrProviderUnavailable, filepath.Base(path))
	}
	return nil
}
