package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitemark"
	smafero "github.com/fwojciec/sitemark/afero"
	smprom "github.com/fwojciec/sitemark/prometheus"
	"github.com/fwojciec/sitemark/sitemap"
	smslog "github.com/fwojciec/sitemark/slog"
	"github.com/fwojciec/sitemark/sqlite"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
)

func main() {
	ctx := context.Background()

	// A missing .env is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Package directory and registry database path. Set before calling Run().
	Root   string
	DBPath string

	// Filesystem holding the package. Defaults to the OS filesystem.
	Fs afero.Fs

	// SQLite database used by the registry services.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Root:   defaultRoot(),
		DBPath: defaultDBPath(),
		Fs:     afero.NewOsFs(),
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
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Fs:     m.Fs,
		Root:   m.Root,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitemark"),
		kong.Description("Inspect and query package sitemaps."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitemark --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Root != "" {
		deps.Root = cli.Root
	}
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITEMARK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	reg := prometheus.NewRegistry()
	deps.Metrics = smprom.NewMetrics(reg)
	deps.Groups = sqlite.NewGroupService(m.DB)
	deps.IDs = sqlite.NewIDService(m.DB)

	var files sitemark.FileResolver = smafero.NewFileResolver(m.Fs)
	files = smslog.NewLoggingFileResolver(files, deps.Logger)
	var loader sitemark.Loader = sitemap.NewLoader(files)
	loader = smslog.NewLoggingLoader(loader, deps.Logger)
	deps.Loader = smprom.NewInstrumentedLoader(loader, deps.Metrics)

	runErr := kongCtx.Run(deps)

	if cli.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cli.MetricsFile, reg); err != nil && runErr == nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return runErr
}

func defaultRoot() string {
	if root := os.Getenv("SITEMARK_ROOT"); root != "" {
		return root
	}
	return "."
}

func defaultDBPath() string {
	if path := os.Getenv("SITEMARK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitemark.db"
	}
	dir := filepath.Join(home, ".sitemark")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sitemark.db")
}
