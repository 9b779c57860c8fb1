package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/assistant/internal/book"
	"github.com/roach88/assistant/internal/config"
	"github.com/roach88/assistant/internal/store"
)

// environment is what every command needs after flag parsing.
type environment struct {
	cfg    *config.Config
	logger *slog.Logger
	clock  book.Clock
}

// loadEnvironment resolves config (file, .env, env, then changed flags)
// and configures logging.
func loadEnvironment(opts *RootOptions, cmd *cobra.Command) (*environment, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:    opts.Config,
		EnvFile: opts.EnvFile,
	})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database = opts.Database
	}
	if flags.Changed("window") {
		cfg.Window = opts.Window
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = strings.ToLower(opts.LogFormat)
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid flags", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = book.SystemClock{}
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	slog.SetDefault(logger)
	logger.Debug("config resolved",
		"db", cfg.Database,
		"window", cfg.Window,
		"config_file", opts.Config,
	)

	return &environment{cfg: cfg, logger: logger, clock: clock}, nil
}

// newLogger builds a slog logger for cfg writing to w.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	hopts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// openStore opens the configured database.
// The caller must close it.
func (e *environment) openStore() (*store.Store, error) {
	e.logger.Debug("opening database", "path", e.cfg.Database)
	st, err := store.Open(e.cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// closeStore closes st, logging any error.
func (e *environment) closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		e.logger.Error("error closing database", "error", err)
	}
}
