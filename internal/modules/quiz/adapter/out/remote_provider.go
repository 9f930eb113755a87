package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"upmind/internal/modules/quiz/domain"
	quizout "upmind/internal/modules/quiz/port/out"
	apperrors "upmind/internal/platform/errors"
)

const (
	RemoteProviderName = "remote"

	defaultModel       = "mistral-small-latest"
	defaultRateLimit   = 1.0
	defaultBurst       = 2
	defaultMaxRetries  = 2
	defaultBaseBackoff = 500 * time.Millisecond
	maxResponseBytes   = 1 << 20
	noExplanation      = "No explanation provided"
)

type RemoteConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	// Zero values select the defaults above.
	MaxRetries  int
	BaseBackoff time.Duration
	RateLimit   float64
	Burst       int
}

type RemoteProvider struct {
	baseURL     string
	apiKey      string
	model       string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxRetries  int
	baseBackoff time.Duration
}

// NewRemoteProvider builds a chat-completions client. It refuses keys that
// fail validation so a misconfigured provider is skipped at wiring time.
func NewRemoteProvider(cfg RemoteConfig) (quizout.Provider, error) {
	if !domain.ValidAPIKey(cfg.APIKey) {
		return nil, fmt.Errorf("%w: remote quiz provider needs a valid api key", apperrors.ErrProviderUnavailable)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: remote quiz provider needs a base url", apperrors.ErrProviderUnavailable)
	}
	limit, burst := cfg.RateLimit, cfg.Burst
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	p := &RemoteProvider{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(limit), burst),
		maxRetries:  cfg.MaxRetries,
		baseBackoff: cfg.BaseBackoff,
	}
	if p.model == "" {
		p.model = defaultModel
	}
	if p.maxRetries <= 0 {
		p.maxRetries = defaultMaxRetries
	}
	if p.baseBackoff <= 0 {
		p.baseBackoff = defaultBaseBackoff
	}
	return p, nil
}

func (p *RemoteProvider) Name() string { return RemoteProviderName }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type questionSet struct {
	Questions []domain.Question `json:"questions"`
}

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func (p *RemoteProvider) Generate(ctx context.Context, request domain.Request) ([]domain.Question, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    []chatMessage{{Role: "user", Content: domain.BuildPrompt(request)}},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}
	body, err := p.withRetries(ctx, func() ([]byte, error) {
		return p.do(ctx, http.MethodPost, "/chat/completions", payload)
	})
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("empty chat response")
	}
	raw, err := domain.ExtractJSONObject(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	var set questionSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	for i := range set.Questions {
		if strings.TrimSpace(set.Questions[i].Explanation) == "" {
			set.Questions[i].Explanation = noExplanation
		}
	}
	return set.Questions, nil
}

// Ping lists the models endpoint to check reachability and credentials.
func (p *RemoteProvider) Ping(ctx context.Context) error {
	_, err := p.withRetries(ctx, func() ([]byte, error) {
		return p.do(ctx, http.MethodGet, "/models", nil)
	})
	return err
}

// withRetries spends one limiter token per attempt, retries included.
func (p *RemoteProvider) withRetries(ctx context.Context, call func() ([]byte, error)) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := p.baseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		body, err := call()
		if err == nil {
			return body, nil
		}
		lastErr = err
		var retryable *retryableError
		if !errors.As(err, &retryable) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (p *RemoteProvider) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &retryableError{err: fmt.Errorf("request %s: %w", path, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &retryableError{err: fmt.Errorf("rate limited (429)")}
	case resp.StatusCode >= 500:
		return nil, &retryableError{err: fmt.Errorf("server error (%d)", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: api error (%d): %s", apperrors.ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
