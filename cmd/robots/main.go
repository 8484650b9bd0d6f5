// robots is Robot Survival: a terminal arena game where you evade robots,
// collect materials and destroy the boss they guard.
//
// Usage:
//
//	robots play              - Play a run directly
//	robots menu              - Start the title menu
//	robots serve             - Start SSH server for remote play
//	robots scores            - Show the best recorded runs
//	robots sim               - Run a headless autopilot game
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.robots/runs.db)
//	--config <path>     - Load configuration from a YAML file
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/robot-survival/internal/config"
	"github.com/vovakirdan/robot-survival/internal/games/robots"
	"github.com/vovakirdan/robot-survival/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	// Resolved in PersistentPreRunE
	settings config.Config
	logger   *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "robots",
	Short: "Robot Survival - evade the robots, build the weapon, beat the boss",
	Long: `Robot Survival is a terminal arena game. Robots chase you from every
edge; survive long enough to level up, collect one material per level and
use the finished weapon to break the boss apart.

Available commands:
  play     - Play a run directly
  menu     - Title menu with high scores
  serve    - Start SSH server for remote play
  scores   - View the run log
  sim      - Headless autopilot run

Examples:
  robots play
  robots play --seed 42
  robots menu
  robots serve --ssh :2222
  robots sim --ticks 9000 --seed 7`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	defaults := config.Default()

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", defaults.TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaults.DBPath, "Path to run log database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// loadSettings resolves the configuration file and applies explicit flags on top.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	settings = cfg
	logger = newLogger(os.Stderr)
	logger.Debug("configuration loaded", "source", source)
	return nil
}

// newLogger creates a logger at the configured level.
func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "robots",
	})
	if lvl, err := settings.Level(); err == nil {
		l.SetLevel(lvl)
	}
	return l
}

// fileLogger returns a logger writing to ~/.robots/robots.log for the
// full-screen commands, where stderr would corrupt the display. The returned
// func closes the file.
func fileLogger() (*log.Logger, func()) {
	path := config.ExpandHome(filepath.Join("~", ".robots", "robots.log"))
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(filepath.Dir(path), 0o755)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { _ = f.Close() }
}

// newGame creates the registered simulation and hands it the logger.
func newGame(l *log.Logger) (registry.Game, error) {
	game, err := registry.Create(robots.GameID)
	if err != nil {
		return nil, err
	}
	if g, ok := game.(*robots.Game); ok {
		g.SetLogger(l)
	}
	return game, nil
}
