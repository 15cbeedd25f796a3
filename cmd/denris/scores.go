package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/denris/internal/platform/tui"
	"github.com/vovakirdan/denris/internal/registry"
	"github.com/vovakirdan/denris/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show rankings",
	Long: `Display the top rankings for a game mode (default: tetris).
For the versus mode the most recent match results are listed.

Examples:
  denris scores
  denris scores --limit 20
  denris scores tetris_versus
  denris scores --interactive
  denris scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultRankingLimit, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Browse rankings in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all rankings for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'denris list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening rankings database: %v", err)
	}
	defer store.Close()

	multi := false
	for _, g := range registry.List() {
		if g.ID == gameID {
			multi = g.Multiplayer
		}
	}

	switch {
	case flagClear:
		if err := store.ClearRankings(gameID); err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Rankings for %s cleared.\n", gameID)
	case flagInteractive:
		cfg := runtimeConfig()
		if err := tui.RunRankings(store, gameID, flagLimit, cfg.ScreenW, cfg.ScreenH); err != nil {
			exitf("%v", err)
		}
	case multi:
		printMatches(store)
	default:
		printRankings(store, gameID)
	}
}

func printRankings(store *storage.Store, gameID string) {
	rankings, err := store.TopRankings(gameID, flagLimit)
	if err != nil {
		exitf("retrieving rankings: %v", err)
	}

	fmt.Printf("Rankings - %s\n", gameID)
	fmt.Println()

	if len(rankings) == 0 {
		fmt.Println("No rankings recorded yet.")
		fmt.Println()
		fmt.Println("Play 'denris play' to set the first one!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-9s  %-5s  %-5s  %s\n", "Rank", "Name", "Score", "Lines", "Level", "Date")
	fmt.Printf("  %-4s  %-16s  %-9s  %-5s  %-5s  %s\n", "----", "----", "-----", "-----", "-----", "----")
	for i, r := range rankings {
		fmt.Printf("  %-4d  %-16s  %-9d  %-5d  %-5d  %s\n",
			i+1, r.Name, r.Score, r.Lines, r.Level, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f  Best level: %d\n", stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestLevel)
	}
}

func printMatches(store *storage.Store) {
	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		exitf("retrieving matches: %v", err)
	}

	fmt.Println("Recent versus matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-15s  %-15s  %-8s  %s\n", "Winner", "P1 score/lines", "P2 score/lines", "Time", "Date")
	fmt.Printf("  %-8s  %-15s  %-15s  %-8s  %s\n", "------", "--------------", "--------------", "----", "----")
	for _, m := range matches {
		winner := "draw"
		if m.Winner != 0 {
			winner = fmt.Sprintf("P%d", m.Winner)
		}
		fmt.Printf("  %-8s  %-15s  %-15s  %-8s  %s\n",
			winner,
			fmt.Sprintf("%d/%d", m.Score1, m.Lines1),
			fmt.Sprintf("%d/%d", m.Score2, m.Lines2),
			m.Duration.Round(time.Second),
			m.CreatedAt.Format("2006-01-02 15:04"))
	}
}
