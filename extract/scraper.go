package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/fwojciec/profiled"
)

// DefaultBaseURL is the origin profile pages are served from.
const DefaultBaseURL = "https://www.linkedin.com"

// Warm-up defaults. The page materializes off-screen sections lazily, so it
// is scrolled through before anything is read.
const (
	DefaultLoadTimeout  = 20 * time.Second
	DefaultScrollPasses = 5
	DefaultScrollStep   = 600
)

// Ensure Scraper implements profiled.Scraper at compile time.
var _ profiled.Scraper = (*Scraper)(nil)

// Scraper runs one extraction per call against a fresh session.
// Scraper is safe for concurrent use when its SessionProvider is.
type Scraper struct {
	Sessions  profiled.SessionProvider
	Extractor *Extractor
	Logger    *slog.Logger

	BaseURL      string
	LoadTimeout  time.Duration
	ScrollPasses int
	ScrollStep   int
}

// NewScraper returns a Scraper with default warm-up settings.
func NewScraper(sessions profiled.SessionProvider, extractor *Extractor, logger *slog.Logger) *Scraper {
	return &Scraper{
		Sessions:     sessions,
		Extractor:    extractor,
		Logger:       logger,
		BaseURL:      DefaultBaseURL,
		ScrollPasses: DefaultScrollPasses,
		ScrollStep:   DefaultScrollStep,
	}
}

// Scrape opens a session, loads the subject's profile page, warms it up and
// extracts the profile. The session is closed before Scrape returns on every
// path. Only session-level failures are returned as errors; a profile with
// unresolved fields is still a successful result.
func (s *Scraper) Scrape(ctx context.Context, vanity string) (p *profiled.Profile, err error) {
	if err := ValidateVanity(vanity); err != nil {
		return nil, err
	}
	logger := s.logger().With("vanity", vanity)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("scrape aborted", "panic", r)
			p, err = nil, profiled.Errorf(profiled.EINTERNAL, "extraction failed: %v", r)
		}
	}()

	doc, err := s.Sessions.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := doc.Close(); err != nil {
			logger.Warn("closing session failed", "err", err)
		}
	}()

	profileURL := s.ProfileURL(vanity)
	logger.Info("loading profile", "url", profileURL)
	if err := doc.Navigate(ctx, profileURL); err != nil {
		return nil, profiled.Errorf(profiled.EUNAVAILABLE, "loading %s: %v", profileURL, err)
	}

	s.Prepare(ctx, doc)

	return s.extractor().Extract(ctx, doc), nil
}

// Prepare drives the page through the transitions that make lazily rendered
// sections queryable: wait for the profile content, scroll down in steps,
// and return to the top. Every wait is bounded; a timed-out wait is logged
// and the sequence continues.
func (s *Scraper) Prepare(ctx context.Context, doc profiled.Document) {
	ex := s.extractor()
	logger := s.logger()

	if err := wait(ctx, orDefault(s.LoadTimeout, DefaultLoadTimeout), func(ctx context.Context) error {
		return doc.WaitFor(ctx, ex.Layout.ProfileContent)
	}); err != nil {
		logger.Warn("timeout waiting for profile content, continuing", "err", err)
	}

	passes := s.ScrollPasses
	if passes <= 0 {
		passes = DefaultScrollPasses
	}
	step := s.ScrollStep
	if step <= 0 {
		step = DefaultScrollStep
	}

	for i := 0; i < passes; i++ {
		if err := doc.ScrollBy(ctx, step); err != nil {
			logger.Debug("scroll failed", "pass", i+1, "err", err)
		}
		ex.settle(ctx, doc)
	}

	if err := doc.ScrollToTop(ctx); err != nil {
		logger.Debug("scroll to top failed", "err", err)
	}
	ex.settle(ctx, doc)
}

// ProfileURL returns the address of the subject's profile page.
func (s *Scraper) ProfileURL(vanity string) string {
	base := s.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/in/%s/", strings.TrimRight(base, "/"), vanity)
}

func (s *Scraper) extractor() *Extractor {
	if s.Extractor == nil {
		return NewExtractor(nil, s.Logger)
	}
	return s.Extractor
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// ValidateVanity returns EINVALID unless vanity is a single, non-empty path
// segment.
func ValidateVanity(vanity string) error {
	if vanity == "" {
		return profiled.Errorf(profiled.EINVALID, "vanity name required")
	}
	for _, r := range vanity {
		if unicode.IsSpace(r) || strings.ContainsRune("/?#", r) {
			return profiled.Errorf(profiled.EINVALID, "invalid vanity name %q", vanity)
		}
	}
	return nil
}
