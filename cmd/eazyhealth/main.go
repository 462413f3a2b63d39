package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/pipeline"
	"github.com/trinav-code/eazyhealth/sqlite"
	"github.com/trinav-code/eazyhealth/viper"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config overrides file and environment configuration. Set before
	// calling Run().
	Config *eazyhealth.Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Generator overrides the configured generation backend.
	Generator eazyhealth.Generator

	// Services for end-to-end testing.
	BriefingService     eazyhealth.BriefingService
	ExplainerLogService eazyhealth.ExplainerLogService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("eazyhealth"),
		kong.Description("Plain-language health explainers and briefings from trusted sources."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'eazyhealth --help' to see available commands")
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
	deps.Logger = logger

	cfg := m.Config
	if cfg == nil {
		cfg, err = viper.Load(cli.Config)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: check .env, the config file and environment variables")
			return err
		}
	}

	// Open database
	if cfg.Database.Path != ":memory:" {
		dir := filepath.Dir(cfg.Database.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintln(stderr, "Hint: Set DATABASE_PATH to use a different database path")
			return fmt.Errorf("failed to create database directory %q: %w", dir, err)
		}
	}
	m.DB = sqlite.NewDB(cfg.Database.Path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set DATABASE_PATH to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", cfg.Database.Path, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	if m.BriefingService == nil {
		m.BriefingService = sqlite.NewBriefingService(m.DB, NewDetector(cfg), cfg.Duplicates.Lookback)
	}
	if m.ExplainerLogService == nil {
		m.ExplainerLogService = sqlite.NewExplainerLogService(m.DB)
	}
	deps.Briefings = m.BriefingService
	deps.ExplainerLogs = m.ExplainerLogService

	// Generation commands need the full pipeline.
	if cmd == "explain" || cmd == "briefing" {
		generator := m.Generator
		if generator == nil {
			generator, err = NewGenerator(ctx, cfg, logger)
			if err != nil {
				fmt.Fprintf(stderr, "error: %s\n", eazyhealth.ErrorMessage(err))
				return err
			}
		}

		trust := eazyhealth.NewTrustFilter(cfg.TrustedDomains)
		deps.Pipeline = &pipeline.Pipeline{
			Searcher:         NewSearcher(cfg, trust, logger),
			Articles:         NewArticleExtractor(cfg, logger),
			Generator:        generator,
			Budgeter:         NewBudgeter(cfg, logger),
			Briefings:        m.BriefingService,
			ExplainerLogs:    m.ExplainerLogService,
			MaxSources:       cfg.Search.MaxResults,
			BasePromptTokens: cfg.Budget.BasePromptTokens,
			Logger:           logger,
		}
	}

	return kongCtx.Run(deps)
}
