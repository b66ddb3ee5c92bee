package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/dochive/dochive"
	"github.com/dochive/dochive/fs"
	"github.com/dochive/dochive/gemini"
	"github.com/dochive/dochive/goldmark"
	"github.com/dochive/dochive/index"
	"github.com/dochive/dochive/ollama"
	"github.com/dochive/dochive/search"
	dslog "github.com/dochive/dochive/slog"
	"github.com/dochive/dochive/sqlite"
	"github.com/dochive/dochive/toml"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the cache store.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	Library  dochive.Library
	Searcher dochive.Searcher
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dochive"),
		kong.Description("Indexes and searches markdown documentation across installed sources."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'dochive --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := toml.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: pass --config to point at a dochive config file\n")
		return err
	}
	deps.Config = cfg

	m.DB = sqlite.NewDB(cfg.Cache.Path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open cache database at %q: %w", cfg.Cache.Path, err)
	}
	store := sqlite.NewStore(m.DB)

	capability := buildCapability(ctx, cfg, logger)

	scanner := fs.NewScanner(cfg, logger)
	docParser := index.NewParser(goldmark.NewRenderer(), logger)
	organizer := index.NewOrganizer(capability, store, logger)
	organizer.TTL = cfg.CacheTTL()
	organizer.Timeout = cfg.AITimeout()

	library := index.NewLibrary(scanner, docParser, organizer, store, logger)
	library.TTL = cfg.CacheTTL()
	m.Library = dslog.NewLoggingLibrary(library, logger)

	engine := search.NewEngine()
	m.Searcher = engine

	answerer := search.NewAnswerEngine(capability, engine, logger)
	answerer.Timeout = cfg.AITimeout()

	deps.Logger = logger
	deps.Library = m.Library
	deps.Searcher = engine
	deps.Semantic = search.NewSemantic(capability, logger)
	deps.Answerer = dslog.NewLoggingAnswerer(answerer, logger)

	return kongCtx.Run(deps)
}

// buildCapability constructs the configured AI provider. Any
// construction failure degrades to no capability; the pipeline falls
// back to deterministic behavior.
func buildCapability(ctx context.Context, cfg *toml.Config, logger *slog.Logger) dochive.Capability {
	switch cfg.AI.Provider {
	case "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		})
		if err != nil {
			logger.Warn("gemini unavailable", "err", err)
			return dochive.NoCapability{}
		}
		return gemini.NewCapability(client, cfg.AI.Model, cfg.AI.EmbedModel)
	case "ollama":
		capability, err := ollama.NewCapability(cfg.AI.Host, cfg.AI.Model, cfg.AI.EmbedModel)
		if err != nil {
			logger.Warn("ollama unavailable", "err", err)
			return dochive.NoCapability{}
		}
		return capability
	default:
		return dochive.NoCapability{}
	}
}
