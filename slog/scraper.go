package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/profiled"
)

// Ensure LoggingScraper implements profiled.Scraper.
var _ profiled.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   profiled.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next profiled.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs a summary of the result.
func (s *LoggingScraper) Scrape(ctx context.Context, vanity string) (p *profiled.Profile, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"vanity", vanity,
			"duration", time.Since(begin),
		}
		if p != nil {
			attrs = append(attrs,
				"empty", p.IsEmpty(),
				"experiences", len(p.Experiences),
				"educations", len(p.Educations),
				"certifications", len(p.Certifications),
				"has_skills", p.Skills != "",
			)
		}
		attrs = append(attrs, "err", err)
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, vanity)
}
