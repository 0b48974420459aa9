package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/profiled"
)

// Ensure LoggingGenerator implements profiled.TextGenerator.
var _ profiled.TextGenerator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a TextGenerator with logging.
type LoggingGenerator struct {
	next   profiled.TextGenerator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next profiled.TextGenerator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the call.
// Prompt and reply are logged by size only.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt string) (reply string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"prompt_bytes", len(prompt),
			"reply_bytes", len(reply),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, prompt)
}
