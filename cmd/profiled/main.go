package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/profiled"
	"github.com/fwojciec/profiled/extract"
	"github.com/fwojciec/profiled/gemini"
	profiledhttp "github.com/fwojciec/profiled/http"
	"github.com/fwojciec/profiled/rod"
	proslog "github.com/fwojciec/profiled/slog"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	m := NewMain()
	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	_ = m.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Browser shared by every session. Nil until a command needs it.
	Browser *rod.BrowserManager
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Browser != nil {
		return m.Browser.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("profiled"),
		kong.Description("Extract structured profile records from LinkedIn profile pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'profiled --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Debug)

	layout := extract.DefaultLayout()
	if cli.Layout != "" {
		if layout, err = extract.LoadLayout(cli.Layout); err != nil {
			return fmt.Errorf("failed to load layout %q: %w", cli.Layout, err)
		}
	}

	inferrer := &extract.SkillInferrer{Logger: deps.Logger}
	if cli.GeminiAPIKey != "" {
		generator, err := m.newGenerator(ctx, cli, deps.Logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		inferrer.Generator = generator
	} else {
		deps.Logger.Warn("GEMINI_API_KEY not set, skill inference disabled")
	}

	extractor := extract.NewExtractor(inferrer, deps.Logger)
	extractor.Layout = layout
	deps.Extractor = extractor

	switch cmd {
	case "serve", "get":
		sessions, err := m.newSessions(cli, deps.Logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		scraper := extract.NewScraper(proslog.NewLoggingSessions(sessions, deps.Logger), extractor, deps.Logger)
		deps.Scraper = proslog.NewLoggingScraper(scraper, deps.Logger)
	case "parse":
		deps.Snapshots = profiledhttp.NewFetcher()
	}

	return kongCtx.Run(deps)
}

// newSessions returns the session provider for live extraction. The browser
// is only launched when a session cookie is configured; without one every
// session fails with EUNAUTHORIZED.
func (m *Main) newSessions(cli *CLI, logger *slog.Logger) (profiled.SessionProvider, error) {
	var opts []rod.SessionsOption
	if cli.SessionRate > 0 {
		opts = append(opts, rod.WithRateLimit(rate.Limit(cli.SessionRate), 1))
	}
	opts = append(opts, rod.WithStealth(!cli.NoStealth))

	if cli.LiAt == "" {
		logger.Warn("LINKEDIN_LI_AT not set, profile requests will fail")
		return rod.NewSessions(nil, "", opts...), nil
	}

	manager, err := rod.NewBrowserManager(
		rod.WithHeadless(!cli.Headful),
		rod.WithMaxSessions(cli.MaxSessions),
		rod.WithBrowserBin(cli.BrowserBin),
	)
	if err != nil {
		return nil, err
	}
	m.Browser = manager

	return rod.NewSessions(manager, cli.LiAt, opts...), nil
}

func (m *Main) newGenerator(ctx context.Context, cli *CLI, logger *slog.Logger) (profiled.TextGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cli.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	var opts []gemini.GeneratorOption
	if cli.MaxPromptTokens > 0 {
		counter, err := gemini.NewTokenCounter(cli.GeminiModel)
		if err != nil {
			logger.Warn("token counting unavailable, prompt budget disabled", "model", cli.GeminiModel, "err", err)
		} else {
			opts = append(opts, gemini.WithTokenBudget(counter, cli.MaxPromptTokens))
		}
	}

	return proslog.NewLoggingGenerator(gemini.NewGenerator(client, cli.GeminiModel, opts...), logger), nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
