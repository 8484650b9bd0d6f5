package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/robot-survival/internal/core"
	"github.com/vovakirdan/robot-survival/internal/platform/tui"
	"github.com/vovakirdan/robot-survival/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run of Robot Survival.

Controls:
  Arrows/WASD  - Move; fire in the same direction once the weapon is built
  P            - Pause
  R/Space      - Restart (after game over)
  Esc/B        - Leave (when paused or after game over)
  Ctrl+S       - Save a text screenshot to ~/.robots/screenshots
  Q/Ctrl+C     - Quit

Examples:
  robots play
  robots play --seed 42
  robots play --fps 60 --player alice`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Name recorded with each run")
}

// defaultPlayer names local runs after the login user.
func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.TickRate,
		Seed:     settings.Seed,
	}
}

// openStore opens the run log. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		logger.Warn("could not open run log", "path", settings.DBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, _ []string) error {
	store := openStore()
	defer func() {
		if store != nil {
			//nolint:errcheck // Best-effort close on exit
			store.Close()
		}
	}()

	gameLog, closeLog := fileLogger()
	defer closeLog()

	game, err := newGame(gameLog)
	if err != nil {
		return err
	}

	opts := tui.Options{
		HoldTicks: settings.Input.HoldTicks,
		Player:    flagPlayer,
		Logger:    gameLog,
	}
	if _, err := tui.Run(game, store, terminalConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
