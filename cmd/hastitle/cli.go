package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/hastitle"
	"github.com/fwojciec/hastitle/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   config.Config
	Detector hastitle.TitleDetector
	Readers  []NamedReader
	Findings hastitle.FindingService
	Fetcher  hastitle.Fetcher
	Sitemap  hastitle.SitemapReader

	// Terminal enables the progress line on Stderr.
	Terminal bool
}

// NamedReader is a parser-based title reader shown by inspect.
type NamedReader struct {
	Name   string
	Reader hastitle.TitleReader
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log extraction details to stderr"`
	Config  string `env:"HASTITLE_CONFIG" help:"Config file (default: nearest .hastitle.toml or .hastitle.yaml)"`

	Check   CheckCmd   `cmd:"" default:"withargs" help:"Check whether a document declares a title"`
	Lint    LintCmd    `cmd:"" help:"Check every page below the given paths"`
	Inspect InspectCmd `cmd:"" help:"Compare the marker verdict with parser-based readers"`
	History HistoryCmd `cmd:"" help:"List or delete recorded lint runs"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Text  string `arg:"" help:"Full document text. A lone argument is always text, except help, --help and history"`
	Print bool   `short:"p" help:"Print the trimmed title when found"`
}

// LintCmd is the "lint" subcommand.
type LintCmd struct {
	Paths       []string `arg:"" optional:"" help:"Files, directories or http(s) URLs to check"`
	Sitemap     []string `short:"s" help:"Check every page listed in this sitemap URL (repeatable)"`
	RPS         float64  `name:"rps" default:"2" help:"Requests per second per host for remote pages (0 for no limit)"`
	Ext         []string `name:"ext" help:"File extension to check (repeatable)"`
	Exclude     []string `short:"x" help:"Glob of paths to skip (repeatable)"`
	Concurrency int      `short:"c" help:"Concurrent check limit (default 8)"`
	Format      string   `short:"f" enum:"text,ndjson" default:"text" help:"Output format (text, ndjson)"`
	DB          string   `env:"HASTITLE_DB" help:"Record the run in this SQLite database"`
	Quiet       bool     `short:"q" help:"Suppress progress and summary"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	Text string `arg:"" help:"Full document text"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	DB     string `env:"HASTITLE_DB" help:"SQLite database holding recorded runs"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of runs to list"`
	RunID  string `name:"run" help:"List pages missing a title for this run"`
	Delete string `name:"delete" help:"Delete this run and its findings"`
}
