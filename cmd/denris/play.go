package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/denris/internal/config"
	"github.com/vovakirdan/denris/internal/core"
	"github.com/vovakirdan/denris/internal/games/tetris"
	"github.com/vovakirdan/denris/internal/platform/tui"
	"github.com/vovakirdan/denris/internal/registry"
	"github.com/vovakirdan/denris/internal/storage"
)

var (
	flagDifficulty string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the single-player marathon",
	Long: `Start a single-player game. The level rises every 10 lines and the
ranking is saved when the stack tops out.

Default controls (see 'denris keys'):
  a/d, ←/→     - Move
  s, ↓         - Soft drop
  space, enter - Hard drop
  w/q, ↑//     - Rotate clockwise/counter-clockwise
  x, .         - Rotate 180
  c, m         - Hold
  p            - Pause
  r            - Restart
  esc, ctrl+c  - Quit

Difficulty options:
  easy   - Level 1, 700ms lock delay
  normal - Level 5, 500ms lock delay
  hard   - Level 10, 300ms lock delay

Examples:
  denris play
  denris play --difficulty hard
  denris play --seed 42 --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSession("tetris")
	},
}

var versusCmd = &cobra.Command{
	Use:   "versus",
	Short: "Play a two-player match on one keyboard",
	Long: `Start a versus match. Both players get the same piece sequence.
Clearing 2, 3 or 4 lines sends 1, 2 or 4 garbage rows to the opponent.
The first player to top out loses.

Player 1 uses the left side of the keyboard (a/d/s/w/q/x/c, space),
player 2 the arrows and enter (see 'denris keys').

Examples:
  denris versus
  denris versus --seed 7 --difficulty normal`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSession("tetris_versus")
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd, versusCmd} {
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	}
	playCmd.Flags().StringVar(&flagPlayer, "name", "", "Name stored with the ranking (default: OS user)")
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// prepareGames validates the config flags and hands them to the game package.
func prepareGames() config.KeyBindings {
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		exitf("%v", err)
	}
	if _, err := config.LoadTetris(flagConfig); err != nil {
		exitf("%v", err)
	}
	keys, err := config.LoadKeys(flagKeys)
	if err != nil {
		exitf("%v", err)
	}
	if flagFPS <= 0 {
		exitf("--fps must be positive")
	}

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)
	return keys
}

// openStore opens the rankings database. A failure is reported but the
// game still runs without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		newLogger(os.Stderr).Warn("could not open rankings database", "error", err)
		return nil
	}
	return store
}

// runSession plays one game mode until the player quits.
func runSession(gameID string) {
	keys := prepareGames()
	store := openStore()
	err := playGame(gameID, store, keys, runtimeConfig())
	if store != nil {
		store.Close()
	}
	if err != nil {
		exitf("running game: %v", err)
	}
}

func playGame(gameID string, store *storage.Store, keys config.KeyBindings, cfg core.RuntimeConfig) error {
	logger, closeLog := sessionLogger()
	defer closeLog()

	tetris.SetLogger(logger)
	if store != nil {
		tetris.SetMatchSaver(store)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	return tui.Run(game, cfg, tui.Options{
		Store:  store,
		Keys:   keys,
		Logger: logger,
		Player: flagPlayer,
	})
}
