// Package external provides clients for third-party APIs.
package external

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"

	"github.com/EnduringBeta/fraction.work/internal/provider"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

const (
	describeTimeout = 30 * time.Second
	announcerPrompt = "You're a major league baseball announcer of 25 years."
)

// ErrThrottled is returned when the describer's token bucket is empty.
var ErrThrottled = errors.New("description rate limit exceeded")

// ErrEmptyCompletion is returned when the model answers with no choices.
var ErrEmptyCompletion = errors.New("empty completion")

// ---------------------------------------------------------------------------
// Describer: announcer-style player descriptions via chat completions
// ---------------------------------------------------------------------------

// Describer generates a short narrative description of a player's season.
type Describer struct {
	client  openai.Client
	model   string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// DescriberConfig configures NewDescriber. BaseURL may be empty for the
// default OpenAI endpoint.
type DescriberConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	RequestsPerSecond float64
}

// NewDescriber creates a describer. Calls beyond RequestsPerSecond fail
// fast with ErrThrottled instead of queueing.
func NewDescriber(cfg DescriberConfig, logger *slog.Logger) *Describer {
	if logger == nil {
		logger = slog.Default()
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: describeTimeout}),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Describer{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

// Describe asks the model for a description of p.
func (d *Describer) Describe(ctx context.Context, p provider.Player) (string, error) {
	if !d.limiter.Allow() {
		return "", ErrThrottled
	}

	start := time.Now()
	resp, err := d.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(d.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(announcerPrompt),
			openai.UserMessage(Prompt(p)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("describe player %d: %w", p.ID, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("describe player %d: %w", p.ID, ErrEmptyCompletion)
	}

	d.logger.Debug("Description generated",
		"player_id", p.ID, "model", d.model,
		"duration", time.Since(start).Round(time.Millisecond))
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Prompt builds the user message for p.
func Prompt(p provider.Player) string {
	return fmt.Sprintf(
		"Explain the record of baseball player %s given these stats: "+
			"%d games, %.3f batting average, %d RBI, %.3f slugging percent, and %s position.",
		p.PlayerName, p.Games, p.BattingAverage, p.RBI, p.SluggingPercent, p.Position,
	)
}
