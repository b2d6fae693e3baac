package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/diraudit"
	"github.com/fwojciec/diraudit/audit"
	"github.com/fwojciec/diraudit/compare"
	"github.com/fwojciec/diraudit/csv"
	"github.com/fwojciec/diraudit/fs"
	"github.com/fwojciec/diraudit/goquery"
	dirhttp "github.com/fwojciec/diraudit/http"
	"github.com/fwojciec/diraudit/rod"
	logging "github.com/fwojciec/diraudit/slog"
	"github.com/fwojciec/diraudit/sqlite"
	"github.com/fwojciec/diraudit/xlsx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the run archive.
	DB *sqlite.DB

	// Collaborators for end-to-end testing. When nil, Run builds the
	// Google search client and a browser or HTTP fetcher from flags.
	Searcher diraudit.Searcher
	Fetchers diraudit.FetcherFactory

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
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
		kong.Name("diraudit"),
		kong.Description("Audit doctor listings on medical directories against a roster"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(kong.JSON),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'diraudit --help' to see available commands")
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

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Roster = csv.NewRosterLoader()
	deps.Extractors = goquery.NewDefaultRegistry()
	deps.Writers = resultWriters()
	deps.Exporter = fs.NewExporter(deps.Writers)

	defer m.Close()

	// The run command archives only when a database is given explicitly.
	dbPath := cli.DB
	if dbPath == "" && cmd != "run" && cmd != "directories" {
		dbPath = defaultDBPath()
	}
	if dbPath != "" && cmd != "directories" {
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DIRAUDIT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		m.closers = append(m.closers, m.DB.Close)
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	if cmd == "run" {
		cfg := cli.Run.Config()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", diraudit.ErrorMessage(err))
			return err
		}

		auditor, err := m.newAuditor(cfg, &cli.Run, deps.Extractors, logger, stderr)
		if err != nil {
			return err
		}
		deps.Auditor = auditor
	}

	return kongCtx.Run(deps)
}

// newAuditor wires the audit pipeline for cfg.
func (m *Main) newAuditor(cfg diraudit.Config, c *RunCmd, extractors diraudit.ExtractorRegistry, logger *slog.Logger, stderr io.Writer) (*audit.Auditor, error) {
	searcher := m.Searcher
	if searcher == nil {
		if c.APIKey == "" || c.EngineID == "" {
			fmt.Fprintln(stderr, "Hint: Set DIRAUDIT_API_KEY and DIRAUDIT_ENGINE_ID for Google Custom Search")
			return nil, diraudit.Errorf(diraudit.EINVALID, "search API key and engine ID required")
		}
		searcher = dirhttp.NewSearcher(c.APIKey, c.EngineID,
			dirhttp.WithMaxResults(cfg.MaxResults),
			dirhttp.WithSearchInterval(cfg.SearchDelay),
			dirhttp.WithRetryLog(func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			}),
		)
	}

	fetchers := m.Fetchers
	if fetchers == nil {
		if c.NoBrowser {
			fetchers = dirhttp.NewFetcher(dirhttp.WithTimeout(cfg.PageTimeout))
		} else {
			bm, err := rod.NewBrowserManager(
				rod.WithPageTimeout(cfg.PageTimeout),
				rod.WithRenderDelay(cfg.RenderDelay),
				rod.WithUserAgent(dirhttp.DefaultUserAgent),
			)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --no-browser")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			m.closers = append(m.closers, bm.Close)
			fetchers = bm
		}
		if c.RespectRobots {
			robots := dirhttp.NewRobots(dirhttp.DefaultUserAgent, cfg.PageTimeout)
			fetchers = dirhttp.NewRobotsFactory(fetchers, robots)
		}
	}

	return &audit.Auditor{
		Searcher:    logging.NewLoggingSearcher(searcher, logger),
		Fetchers:    logging.NewLoggingFetcherFactory(fetchers, logger),
		Parser:      goquery.NewParser(),
		Extractors:  logging.NewLoggingRegistry(extractors, logger),
		Comparator:  compare.NewComparator(cfg.Thresholds),
		RateLimiter: audit.NewDirectoryLimiter(cfg.FetchRate),
		Directories: cfg.Directories,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	}, nil
}

// resultWriters maps output file extensions to result writers.
func resultWriters() map[string]diraudit.ResultWriter {
	return map[string]diraudit.ResultWriter{
		".csv":  csv.NewWriter(),
		".xlsx": xlsx.NewWriter(),
		".json": &jsonWriter{},
	}
}

func defaultDBPath() string {
	if path := os.Getenv("DIRAUDIT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "diraudit.db"
	}
	dir := filepath.Join(home, ".diraudit")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "diraudit.db")
}
