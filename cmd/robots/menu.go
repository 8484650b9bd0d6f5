package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robot-survival/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the title menu",
	Long: `Start Robot Survival in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a run ends, Esc returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  robots menu
  robots menu --fps 60
  robots menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Name recorded with each run")
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	defer func() {
		if store != nil {
			//nolint:errcheck // Best-effort close on exit
			store.Close()
		}
	}()

	gameLog, closeLog := fileLogger()
	defer closeLog()

	cfg := terminalConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = result.Config

		switch result.Choice {
		case tui.ChoicePlay:
			game, err := newGame(gameLog)
			if err != nil {
				return err
			}
			runCfg := cfg
			runCfg.Seed = settings.Seed
			opts := tui.Options{
				HoldTicks: settings.Input.HoldTicks,
				Player:    flagPlayer,
				Logger:    gameLog,
				Embedded:  true,
			}
			goBack, err := tui.Run(game, store, runCfg, opts)
			if err != nil {
				return fmt.Errorf("running game: %w", err)
			}
			if !goBack {
				return nil
			}

		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			if !goBack {
				return nil
			}

		default:
			return nil
		}
	}
}
