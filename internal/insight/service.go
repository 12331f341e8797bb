// Package insight turns filtered event summaries into natural-language
// urban analysis via the generative-AI boundary.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/geopredictor/geopredictor-api/internal/domain"
	"github.com/geopredictor/geopredictor-api/internal/observability"
)

// ErrUnavailable is returned when no generative-AI credentials were
// configured at startup. The rest of the dashboard keeps working.
var ErrUnavailable = errors.New("generative AI is not configured")

// Service orchestrates summary → prompt → model text. A nil generator
// puts the service in degraded mode.
type Service struct {
	generator domain.TextGenerator
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewService creates an insight service. Pass a nil generator when AI is
// disabled; Analyze then fails with ErrUnavailable.
func NewService(generator domain.TextGenerator, metrics *observability.Metrics, logger *slog.Logger) *Service {
	if generator != nil {
		metrics.AIEnabled.Set(1)
	}
	return &Service{generator: generator, metrics: metrics, logger: logger}
}

// Enabled reports whether the AI boundary is configured.
func (s *Service) Enabled() bool {
	return s.generator != nil
}

// Analyze builds the prompt for a summary and returns the model response
// verbatim. Failures are terminal for this single request; the caller
// may retry with a fresh user action.
func (s *Service) Analyze(ctx context.Context, summary domain.Summary) (string, error) {
	if s.generator == nil {
		s.metrics.InsightRequests.WithLabelValues("unavailable").Inc()
		return "", ErrUnavailable
	}

	prompt := BuildPrompt(summary)
	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("insight generation failed",
			"region", summary.Region,
			"date", summary.Date,
			"error", err,
		)
		return "", fmt.Errorf("generate insight: %w", err)
	}
	return text, nil
}
