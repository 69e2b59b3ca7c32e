package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hpungsan/darek/internal/assistant"
	"github.com/hpungsan/darek/internal/config"
	"github.com/hpungsan/darek/internal/db"
	"github.com/hpungsan/darek/internal/mcp"
	"github.com/hpungsan/darek/internal/ops"
	"github.com/hpungsan/darek/internal/services"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"ask": true, "serve": true, "dashboard": true, "history": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ___               _
  |   \ __ _ _ _ ___| |__
  | |) / _' | '_/ -_) / /
  |___/\__,_|_| \___|_\_\

  Rule-based command assistant

  Usage: darek <command> [options]
         darek --help

  MCP server mode requires piped input.`)
}

// resolveBaseDir returns $DAREK_HOME, or ~/.darek when it is unset.
func resolveBaseDir(getenv func(string) string) (string, error) {
	if dir := getenv("DAREK_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".darek"), nil
}

// newLogger builds a production zap logger writing to stderr at level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

// env is everything the commands run against.
type env struct {
	db        *sql.DB
	cfg       *config.Config
	gateway   *services.Gateway
	assistant *assistant.Dispatcher
	log       *zap.Logger
}

// newEnv wires the dispatcher, storage and service clients together.
func newEnv(database *sql.DB, cfg *config.Config, baseDir string, logger *zap.Logger) *env {
	gw := services.NewGateway(cfg)
	opts := assistant.Options{
		Store:        ops.NewGateway(database),
		Weather:      gw.Weather,
		News:         gw.News,
		Encyclopedia: gw.Encyclopedia,
		Search:       gw.Search,
		Media:        gw.Media,
		Logger:       logger,
		DefaultCity:  cfg.DefaultCity,
		NewsLimit:    cfg.NewsLimit,
	}
	if path := cfg.UnrecognizedLogPath(baseDir); path != "" {
		opts.Audit = assistant.NewFileAudit(path)
	}
	return &env{
		db:        database,
		cfg:       cfg,
		gateway:   gw,
		assistant: assistant.New(opts),
		log:       logger,
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fail("%v", err)
		}
		return
	}

	baseDir, err := resolveBaseDir(os.Getenv)
	if err != nil {
		fail("%v", err)
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		fail("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fail("%v", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Init(baseDir)
	if err != nil {
		fail("failed to initialize database: %v", err)
	}
	defer database.Close()
	db.ConfigurePool(database, cfg)

	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("unknown tools in disabled_tools", zap.Strings("tools", unknown))
	}

	e := newEnv(database, cfg, baseDir, logger)

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(e)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			database.Close()
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'darek --help' for usage.\n")
		database.Close()
		os.Exit(1)
	}

	// MCP server mode (default)
	logger.Info("starting mcp server", zap.String("version", Version), zap.String("base_dir", baseDir))
	if err := mcp.Run(mcp.Deps{DB: database, Config: cfg, Assistant: e.assistant, Logger: logger}, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		database.Close()
		os.Exit(1)
	}
}
