package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robot-survival/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the run log. Victories rank first, then the level reached,
then survival time.

Examples:
  robots scores
  robots scores --recent --limit 20
  robots scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // Read-only use

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		logger.Info("run log cleared", "path", settings.DBPath)
		return nil
	}

	title := "High Scores - Robot Survival"
	fetch := store.TopRuns
	if flagRecent {
		title = "Recent Runs - Robot Survival"
		fetch = store.RecentRuns
	}

	runs, err := fetch(flagLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'robots play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-7s  %-5s  %-6s  %-9s  %-12s  %s\n", "Rank", "Outcome", "Level", "Time", "Materials", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-7s  %-5s  %-6s  %-9s  %-12s  %s\n", "----", "-------", "-----", "----", "---------", "------", "----")

	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-7s  %-5d  %-6s  %-9s  %-12s  %s\n",
			i+1, r.Outcome, r.Level,
			fmt.Sprintf("%ds", r.Seconds),
			fmt.Sprintf("%d/4", r.Materials),
			r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.Stats()
	if err == nil && stats.Runs > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Runs: %d  Victories: %d  Best: %ds  Average: %.0fs\n",
			stats.Runs, stats.Victories, stats.BestSeconds, stats.AvgSeconds)
	}
	return nil
}
