package rod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/profiled"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"golang.org/x/time/rate"
)

// Session cookie placement.
const (
	SessionCookieName   = "li_at"
	SessionCookieDomain = ".linkedin.com"
)

// Ensure Sessions implements profiled.SessionProvider at compile time.
var _ profiled.SessionProvider = (*Sessions)(nil)

// Sessions opens one authenticated browser context per extraction.
// Contexts share the managed browser process but not cookies or storage.
//
// Sessions is safe for concurrent use.
type Sessions struct {
	manager      *BrowserManager
	cookie       string
	stealth      bool
	limiter      *rate.Limiter
	loadTimeout  time.Duration
	stableWindow time.Duration
}

// SessionsOption configures Sessions.
type SessionsOption func(*Sessions)

// WithStealth controls whether pages are created with evasions against
// headless-browser detection. Defaults to true.
func WithStealth(enabled bool) SessionsOption {
	return func(s *Sessions) {
		s.stealth = enabled
	}
}

// WithRateLimit limits how often sessions are opened.
func WithRateLimit(r rate.Limit, burst int) SessionsOption {
	return func(s *Sessions) {
		s.limiter = rate.NewLimiter(r, burst)
	}
}

// WithLoadTimeout bounds the wait for the load event after navigation.
// Defaults to DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) SessionsOption {
	return func(s *Sessions) {
		s.loadTimeout = d
	}
}

// WithStableWindow sets how long the DOM must stay unchanged to count as
// settled. Defaults to DefaultStableWindow.
func WithStableWindow(d time.Duration) SessionsOption {
	return func(s *Sessions) {
		s.stableWindow = d
	}
}

// NewSessions creates Sessions that authenticate with the given li_at value.
func NewSessions(manager *BrowserManager, cookie string, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		manager:      manager,
		cookie:       cookie,
		stealth:      true,
		loadTimeout:  DefaultLoadTimeout,
		stableWindow: DefaultStableWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates an incognito browser context carrying the session cookie and
// a page within it. Returns EUNAUTHORIZED when no cookie is configured.
func (s *Sessions) Open(ctx context.Context) (profiled.Document, error) {
	if s.cookie == "" {
		return nil, profiled.Errorf(profiled.EUNAUTHORIZED, "session cookie not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, profiled.Errorf(profiled.EUNAVAILABLE, "waiting for session slot: %v", err)
		}
	}

	browser, release, err := s.manager.Acquire()
	if err != nil {
		return nil, err
	}

	incognito, err := browser.Incognito()
	if err != nil {
		release()
		return nil, fmt.Errorf("creating browser context: %w", err)
	}

	if err := incognito.SetCookies([]*proto.NetworkCookieParam{SessionCookie(s.cookie)}); err != nil {
		release()
		return nil, errors.Join(fmt.Errorf("setting session cookie: %w", err), incognito.Close())
	}

	page, err := s.newPage(incognito)
	if err != nil {
		release()
		return nil, errors.Join(fmt.Errorf("creating page: %w", err), incognito.Close())
	}

	return &Document{
		page:         page,
		incognito:    incognito,
		loadTimeout:  s.loadTimeout,
		stableWindow: s.stableWindow,
		release:      release,
	}, nil
}

func (s *Sessions) newPage(b *rod.Browser) (*rod.Page, error) {
	if s.stealth {
		return stealth.Page(b)
	}
	return b.Page(proto.TargetCreateTarget{})
}

// SessionCookie returns the cookie that authenticates a browser context.
func SessionCookie(value string) *proto.NetworkCookieParam {
	return &proto.NetworkCookieParam{
		Name:     SessionCookieName,
		Value:    value,
		Domain:   SessionCookieDomain,
		Path:     "/",
		Secure:   true,
		HTTPOnly: true,
	}
}
