// theorygames is a hot-seat trivia game for the terminal: players take turns
// guessing numbers and names, and the closest guess wins the round.
//
// Usage:
//
//	theorygames play            - Play locally
//	theorygames serve           - Start SSH server for remote play
//	theorygames api             - Serve read-only stats over HTTP
//	theorygames categories      - List question categories
//	theorygames profiles [id]   - Show player profiles
//	theorygames history         - Show recent games
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.theorygames, ./configs)
//	--seed <value>      - RNG seed for reproducible question order
//	--db <path>         - SQLite database path (forces the sqlite backend)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/theory-games/internal/catalog"
	"github.com/vovakirdan/theory-games/internal/config"
	"github.com/vovakirdan/theory-games/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "theorygames",
	Short: "Theory Games - closest-guess trivia in your terminal",
	Long: `Theory Games is a hot-seat trivia game. Every round asks one question;
players answer in turn and the closest guess takes the points.

Available commands:
  play        - Play locally
  serve       - Start SSH server for remote play
  api         - Serve read-only stats over HTTP
  categories  - List question categories
  profiles    - Show player profiles
  history     - Show recent games

Examples:
  theorygames play
  theorygames play --seed 42
  theorygames serve --ssh :2222
  theorygames profiles --top 10
  theorygames history --limit 5`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value, then time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to SQLite database (overrides storage config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(historyCmd)
}

// app holds what every command shares.
type app struct {
	cfg      config.Config
	logger   *log.Logger
	catalog  *catalog.Catalog
	kv       storage.KV
	profiles *storage.Profiles
}

// loadConfig reads .env, the config file and the global flag overrides.
func loadConfig() (config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.Backend = storage.BackendSQLite
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, cfg.Validate()
}

// newLogger builds the process logger. Interactive commands pass
// io.Discard since log lines would tear the alt screen.
func newLogger(cfg config.Config, w io.Writer) *log.Logger {
	level, err := cfg.Log.ParseLevel()
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "theorygames",
		Level:           level,
	})
}

// setup loads config, the catalog and the profile store. A store that
// cannot be opened is fatal only when required.
func setup(logOut io.Writer, requireStore bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	a := &app{
		cfg:     cfg,
		logger:  newLogger(cfg, logOut),
		catalog: catalog.New(cfg.Game.Seed, catalog.WithBands(cfg.Difficulty.For)),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	kv, err := storage.OpenKV(ctx, cfg.Storage.KV())
	if err != nil {
		if requireStore {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open profile store: %v\n", err)
		return a, nil
	}
	a.kv = kv
	a.profiles = storage.NewProfiles(kv, a.logger)
	return a, nil
}

// Close releases the store.
func (a *app) Close() {
	if a.kv == nil {
		return
	}
	if err := a.kv.Close(); err != nil {
		a.logger.Warn("cannot close store", "error", err)
	}
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
