package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/profiled"
)

// Ensure LoggingSessions implements profiled.SessionProvider.
var _ profiled.SessionProvider = (*LoggingSessions)(nil)

// LoggingSessions wraps a SessionProvider with logging. Documents it opens
// log navigation and close.
type LoggingSessions struct {
	next   profiled.SessionProvider
	logger *slog.Logger
}

// NewLoggingSessions creates a new LoggingSessions.
func NewLoggingSessions(next profiled.SessionProvider, logger *slog.Logger) *LoggingSessions {
	return &LoggingSessions{next: next, logger: logger}
}

// Open delegates to the wrapped provider and logs the call.
func (s *LoggingSessions) Open(ctx context.Context) (doc profiled.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("session open",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	doc, err = s.next.Open(ctx)
	if err != nil {
		return nil, err
	}
	return &LoggingDocument{Document: doc, logger: s.logger, opened: time.Now()}, nil
}

// LoggingDocument wraps a Document with logging of navigation and close.
type LoggingDocument struct {
	profiled.Document
	logger *slog.Logger
	opened time.Time
}

// Navigate delegates to the wrapped document and logs the call.
func (d *LoggingDocument) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		d.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.Document.Navigate(ctx, url)
}

// Close delegates to the wrapped document and logs the session lifetime.
func (d *LoggingDocument) Close() (err error) {
	defer func() {
		d.logger.Info("session close",
			"lifetime", time.Since(d.opened),
			"err", err,
		)
	}()
	return d.Document.Close()
}
