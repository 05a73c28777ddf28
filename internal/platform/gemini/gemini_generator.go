package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/billdonner/obo-gen/internal/config"
	"github.com/billdonner/obo-gen/internal/generation"
	"github.com/billdonner/obo-gen/internal/platform/logger"
)

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to write deck text.
type GeminiGenerator struct {
	logger      *slog.Logger
	client      *genai.Client
	model       string
	timeout     time.Duration
	temperature float32
}

// Ensure GeminiGenerator implements generation.Generator interface
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a GeminiGenerator from the LLM configuration.
// A missing API key fails with generation.ErrMissingCredential before any
// network call is made.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, fmt.Errorf("%w: set OBO_LLM_GEMINI_API_KEY or GEMINI_API_KEY", generation.ErrMissingCredential)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", generation.ErrInvalidConfig)
	}

	timeout := cfg.Timeout
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
			Timeout: &timeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:      logger.With(slog.String("component", "gemini_generator")),
		client:      client,
		model:       cfg.ModelName,
		timeout:     cfg.Timeout,
		temperature: float32(cfg.Temperature),
	}, nil
}

// GenerateDeck implements generation.Generator.GenerateDeck.
func (g *GeminiGenerator) GenerateDeck(ctx context.Context, req generation.Request) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	prompt, err := generation.BuildPrompt(req)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Info("requesting deck from Gemini",
		slog.String("model", g.model),
		slog.String("topic", req.Topic),
		slog.String("age_range", req.AgeRange),
		slog.Int("count", req.Count))

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		mapped := mapError(err)
		log.Error("Gemini request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", mapped.Error()))
		return "", mapped
	}

	text, err := responseText(resp)
	if err != nil {
		log.Warn("unusable Gemini response", slog.String("error", err.Error()))
		return "", err
	}

	log.Info("received deck from Gemini",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("length", len(text)))
	return text, nil
}

// mapError translates client errors into generation errors.
func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Code
		if code == 0 {
			code = http.StatusInternalServerError
		}
		return &generation.ProviderError{StatusCode: code, Message: apiErr.Message}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", generation.ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", generation.ErrTimeout, err)
	}

	return fmt.Errorf("gemini request failed: %w", err)
}

// responseText extracts the first candidate's text.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, fb.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	switch candidate.FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent, genai.FinishReasonBlocklist:
		return "", fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, candidate.FinishReason)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty text", generation.ErrInvalidResponse)
	}
	return text, nil
}
