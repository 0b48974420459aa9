package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/profiled"
	"github.com/fwojciec/profiled/extract"
)

// SnapshotFetcher retrieves a saved page snapshot from a URL.
type SnapshotFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Scraper   profiled.Scraper
	Extractor *extract.Extractor
	Snapshots SnapshotFetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LiAt            string  `name:"li-at" env:"LINKEDIN_LI_AT" help:"LinkedIn session cookie (li_at)"`
	GeminiAPIKey    string  `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key for skill inference"`
	GeminiModel     string  `name:"gemini-model" env:"GEMINI_MODEL" default:"gemini-2.5-flash" help:"Gemini model for skill inference"`
	MaxPromptTokens int     `name:"max-prompt-tokens" default:"0" help:"Reject inference prompts above this many tokens (0 disables)"`
	Layout          string  `env:"PROFILED_LAYOUT" help:"YAML file overriding page selectors"`
	Headful         bool    `help:"Show the browser window"`
	NoStealth       bool    `name:"no-stealth" help:"Disable headless-detection evasions"`
	BrowserBin      string  `name:"browser-bin" env:"PROFILED_BROWSER" help:"Chrome binary to launch"`
	MaxSessions     int64   `name:"max-sessions" default:"50" help:"Sessions before the browser is recycled"`
	SessionRate     float64 `name:"session-rate" default:"0.5" help:"Maximum sessions opened per second (0 disables)"`
	Debug           bool    `short:"d" help:"Enable debug logging"`

	Serve ServeCmd `cmd:"" help:"Serve profiles over HTTP"`
	Get   GetCmd   `cmd:"" help:"Extract one profile and print it as JSON"`
	Parse ParseCmd `cmd:"" help:"Extract a profile from saved HTML snapshots"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string        `env:"PROFILED_ADDR" default:":8000" help:"Listen address"`
	MaxConcurrent int64         `name:"max-concurrent" default:"2" help:"Concurrent extraction limit"`
	QueueTimeout  time.Duration `name:"queue-timeout" default:"30s" help:"How long a request waits for an extraction slot"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	Vanity string `arg:"" help:"Vanity name from the profile URL (linkedin.com/in/<vanity>)"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Profile string `arg:"" help:"Saved profile page (file path or http(s) URL)"`
	Skills  string `help:"Saved skills sub-view (file path or http(s) URL)"`
	URL     string `name:"url" default:"https://www.linkedin.com/in/snapshot/" help:"Address the profile snapshot was saved from"`
}
