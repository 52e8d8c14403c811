package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/ziwei-api/internal/config"
	"github.com/phrazzld/ziwei-api/internal/generation"
	"github.com/phrazzld/ziwei-api/internal/redact"
	"google.golang.org/genai"
)

const (
	defaultMaxRetries  = 3
	defaultRetryDelay  = 2 * time.Second
	readingTemperature = 0.7
	systemInstruction  = "You interpret Zi Wei Dou Shu natal charts. Answer in plain prose without markdown headings."
)

// contentGenerator is the slice of the genai client the generator uses.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements generation.Generator with the Gemini API.
type GeminiGenerator struct {
	logger     *slog.Logger
	models     contentGenerator
	model      string
	maxRetries int
	baseDelay  time.Duration
}

var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a generator backed by a new genai client.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}
	return newGenerator(logger, client.Models, cfg)
}

func newGenerator(logger *slog.Logger, models contentGenerator, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		logger.Warn("invalid max retries value, using default", "max_retries", defaultMaxRetries)
		maxRetries = defaultMaxRetries
	}
	baseDelay := time.Duration(cfg.RetryDelaySeconds) * time.Second
	if baseDelay <= 0 {
		baseDelay = defaultRetryDelay
	}

	return &GeminiGenerator{
		logger:     logger.With("component", "gemini_generator"),
		models:     models,
		model:      cfg.ModelName,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}, nil
}

// GenerateReading renders the prompt for req and asks the model for a reading.
func (g *GeminiGenerator) GenerateReading(ctx context.Context, req generation.ReadingRequest) (string, error) {
	prompt, err := generation.BuildPrompt(req)
	if err != nil {
		return "", err
	}
	g.logger.DebugContext(ctx, "prompt rendered", "prompt_length", len(prompt))
	return g.callWithRetry(ctx, prompt)
}

// callWithRetry calls the model up to maxRetries+1 times. Only transient
// errors are retried.
func (g *GeminiGenerator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](readingTemperature),
	}

	for attempt := 0; ; attempt++ {
		g.logger.InfoContext(ctx, "calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", g.maxRetries+1)

		resp, err := g.models.GenerateContent(ctx, g.model, contents, cfg)
		var text string
		if err == nil {
			text, err = extractText(resp)
			if err == nil {
				g.logger.InfoContext(ctx, "Gemini API call succeeded",
					"attempt", attempt+1,
					"reading_length", len(text))
				return text, nil
			}
		} else {
			err = classifyAPIError(err)
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed", "attempt", attempt+1, "error", redact.Error(err))

		if !errors.Is(err, generation.ErrTransientFailure) {
			return "", err
		}
		if attempt >= g.maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, g.maxRetries)
		}

		delay := g.backoff(attempt)
		g.logger.InfoContext(ctx, "retrying after delay", "attempt", attempt+1, "delay", delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// backoff returns baseDelay * 2^attempt scaled by a jitter factor in [0.5, 1).
func (g *GeminiGenerator) backoff(attempt int) time.Duration {
	scaled := float64(g.baseDelay) * math.Pow(2, float64(attempt))
	return time.Duration(scaled * (0.5 + rand.Float64()*0.5))
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", generation.ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty text", generation.ErrInvalidResponse)
	}
	return text, nil
}

// classifyAPIError marks rate limits, server errors and unrecognised
// transport failures as transient.
func classifyAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests, apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		default:
			return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
}
