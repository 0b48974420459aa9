package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/profiled"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxSessions is the default number of sessions before browser recycling.
const DefaultMaxSessions = 50

// BrowserManager manages browser lifecycle with automatic recycling to prevent
// memory accumulation. Chrome accumulates memory over time and the baseline
// never returns to initial levels even when every context is disposed.
//
// Sessions lease the browser. A browser due for recycling is only replaced
// once no lease is outstanding, so a recycle never closes a browser under a
// running extraction.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser     *rod.Browser
	launcher    *launcher.Launcher
	sessions    int64
	leases      int64
	maxSessions int64
	headless    bool
	bin         string
	mu          sync.Mutex
	closed      atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxSessions sets the number of sessions before the browser is recycled.
// Defaults to 50 if not specified.
func WithMaxSessions(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxSessions = n
	}
}

// WithHeadless controls whether the browser runs without a window.
// Defaults to true.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// WithBrowserBin sets the Chrome binary to launch instead of the one rod
// finds or downloads.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager creates a new BrowserManager that launches Chrome.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxSessions: DefaultMaxSessions,
		headless:    true,
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launchBrowser(); err != nil {
		return nil, err
	}

	return bm, nil
}

// Acquire leases the current browser for one session. The returned release
// function must be called when the session ends; calling it more than once
// has no further effect.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed.Load() {
		return nil, nil, profiled.Errorf(profiled.EINVALID, "browser manager closed")
	}

	if bm.sessions >= bm.maxSessions && bm.leases == 0 {
		bm.recycleBrowser()
	}
	if bm.browser == nil {
		return nil, nil, profiled.Errorf(profiled.EUNAVAILABLE, "no browser running")
	}

	bm.sessions++
	bm.leases++

	var once sync.Once
	release := func() {
		once.Do(func() {
			bm.mu.Lock()
			bm.leases--
			bm.mu.Unlock()
		})
	}
	return bm.browser, release, nil
}

// Leases returns the number of sessions currently holding the browser.
func (bm *BrowserManager) Leases() int64 {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.leases
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	return bm.closeBrowser()
}

// launchBrowser starts a new browser instance with stability flags.
func (bm *BrowserManager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(bm.headless)
	if bm.bin != "" {
		lnchr = lnchr.Bin(bm.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (bm *BrowserManager) closeBrowser() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one.
// If launching the new browser fails, the old browser is kept.
// Must be called with mu held and no leases outstanding.
func (bm *BrowserManager) recycleBrowser() {
	oldBrowser := bm.browser
	oldLauncher := bm.launcher
	bm.browser = nil
	bm.launcher = nil

	if err := bm.launchBrowser(); err != nil {
		bm.browser = oldBrowser
		bm.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.sessions = 0
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
