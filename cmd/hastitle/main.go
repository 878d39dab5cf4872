package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/hastitle"
	"github.com/fwojciec/hastitle/config"
	"github.com/fwojciec/hastitle/goquery"
	hshttp "github.com/fwojciec/hastitle/http"
	"github.com/fwojciec/hastitle/marker"
	"github.com/fwojciec/hastitle/readability"
	hsslog "github.com/fwojciec/hastitle/slog"
	"github.com/fwojciec/hastitle/sqlite"
	"github.com/fwojciec/hastitle/trafilatura"
	"github.com/mattn/go-isatty"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		reportError(os.Stderr, err)
	}
	stop()
	os.Exit(ExitCode(err))
}

// ExitCode maps an error returned by Main.Run to a process exit status.
// Usage errors exit with 2, a missing title or any other failure with 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case hastitle.ErrorCode(err) == hastitle.EINVALID:
		return 2
	default:
		return 1
	}
}

func reportError(w io.Writer, err error) {
	var e *hastitle.Error
	switch {
	case hastitle.ErrorCode(err) == hastitle.ENOTITLE:
		// Commands report missing titles themselves.
	case errors.As(err, &e):
		fmt.Fprintf(w, "error: %s\n", e.Message)
	default:
		fmt.Fprintf(w, "error: %s\n", err)
	}
}

// Main represents the program.
type Main struct {
	// Dir is where the config file search starts.
	Dir string

	// Terminal reports whether stderr is attached to a terminal.
	Terminal bool

	// SQLite database used for lint history. Opened on demand.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	fd := os.Stderr.Fd()
	return &Main{
		Dir:      ".",
		Terminal: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Terminal: m.Terminal,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("hastitle"),
		kong.Description("Report whether page sources declare a title."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return hastitle.Errorf(hastitle.EINVALID, "no input specified. Run 'hastitle --help' to see usage")
	}

	args = documentArgs(args)

	if wantsHelp(args) {
		if args[0] == "help" {
			args = []string{"--help"}
		}
		_, _ = parser.Parse(args)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return hastitle.Errorf(hastitle.EINVALID, "%s", err)
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	path, err := config.Find(m.Dir, cli.Config)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	deps.Config = cfg
	deps.Detector = hsslog.WrapDetector(marker.NewDetectorWith(cfg.MarkerSet()), logger)

	var cmd string
	if fields := strings.Fields(kongCtx.Command()); len(fields) > 0 {
		cmd = fields[0]
	}

	var dbPath string
	switch cmd {
	case "lint":
		dbPath = cli.Lint.DB
		deps.Fetcher = hshttp.NewFetcher()
		deps.Sitemap = hshttp.NewSitemapReader(nil)
	case "history":
		dbPath = cli.History.DB
		if dbPath == "" {
			return hastitle.Errorf(hastitle.EINVALID, "no history database. Set --db or HASTITLE_DB")
		}
	case "inspect":
		deps.Readers = []NamedReader{
			{Name: "goquery", Reader: goquery.NewTitleReader()},
			{Name: "trafilatura", Reader: trafilatura.NewTitleReader()},
			{Name: "readability", Reader: readability.NewTitleReader()},
		}
	}

	if dbPath != "" {
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set HASTITLE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()
		deps.Findings = hsslog.NewLoggingFindingService(sqlite.NewFindingService(m.DB), logger)
	}

	return kongCtx.Run(deps)
}

// textFlags lists the flags of commands whose positional argument is a
// whole document.
var textFlags = map[string][]string{
	"check":   {"-p", "--print"},
	"inspect": nil,
}

// documentArgs places a "--" terminator in front of document text so
// text starting with "-" (YAML front matter, for one) is not read as a
// flag. A leading argument that is neither a command nor a global flag
// is document text for the default check command. A lone argument is
// document text even when it spells a command or a flag; only "--help",
// "help" and "history" keep their meaning.
func documentArgs(args []string) []string {
	if len(args) == 1 {
		switch args[0] {
		case "--help", "help", "history":
		default:
			return []string{"check", "--", args[0]}
		}
	}

	i := skipFlags(args, 0, nil)
	if i >= len(args) {
		return args
	}

	arg := args[i]
	if arg == "--" {
		return args
	}
	if flags, ok := textFlags[arg]; ok {
		j := skipFlags(args, i+1, flags)
		if j >= len(args) || args[j] == "--" {
			return args
		}
		return slices.Insert(slices.Clone(args), j, "--")
	}
	switch arg {
	case "lint", "history", "help":
		return args
	}
	return slices.Insert(slices.Clone(args), i, "check", "--")
}

// skipFlags returns the index of the first argument at or after i that is
// not a global flag or one of extra.
func skipFlags(args []string, i int, extra []string) int {
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "-v", arg == "--verbose", arg == "-h", arg == "--help",
			strings.HasPrefix(arg, "--config="), slices.Contains(extra, arg):
			i++
		case arg == "--config":
			i += 2
		default:
			return i
		}
	}
	return i
}

// wantsHelp reports whether a help flag appears before the "--" terminator.
func wantsHelp(args []string) bool {
	if args[0] == "help" {
		return true
	}
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "--help", "-h":
			return true
		}
	}
	return false
}
