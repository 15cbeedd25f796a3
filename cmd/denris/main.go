// denris is a falling-block puzzle game for the terminal, with a
// single-player marathon and a two-player versus mode on one keyboard.
//
// Usage:
//
//	denris                   - Start the mode menu
//	denris list              - List available modes
//	denris play              - Play the single-player marathon
//	denris versus            - Play a two-player match
//	denris scores [game]     - Show rankings
//	denris keys              - Print the key bindings
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible piece sequences
//	--db <path>          - Set database path (default: ~/.denris/scores.db)
//	--config <path>      - Custom engine config YAML
//	--keys <path>        - Custom key bindings YAML
//	--log-level <level>  - debug, info, warn or error (default: warn)
//	--log-file <path>    - Write logs to a file while a game is running
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/denris/internal/games/tetris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagKeys     string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "denris",
	Short: "Denris - falling blocks in your terminal",
	Long: `Denris is a terminal falling-block puzzle game with SRS rotation,
lock delay, hold, a 7-bag randomizer and a two-player versus mode
where cleared lines send garbage to the opponent.

Available commands:
  list     - Show all game modes
  play     - Single-player marathon
  versus   - Two players on one keyboard
  scores   - View rankings
  keys     - Print key bindings

Run without a command to pick a mode from a menu.

Examples:
  denris play --difficulty hard
  denris versus --seed 42
  denris scores --limit 20`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.denris/scores.db", "Path to rankings database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagKeys, "keys", "", "Path to custom key bindings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versusCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(keysCmd)
}

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the CLI logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		exitf("invalid --log-level %q", flagLogLevel)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "denris",
		Level:           level,
	})
}

// sessionLogger returns the logger used while the terminal is taken over
// by a game. Without --log-file it discards everything, since writing to
// stderr would tear the screen.
func sessionLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		exitf("could not open log file: %v", err)
	}
	//nolint:errcheck // Best-effort close on exit
	return newLogger(f), func() { f.Close() }
}
