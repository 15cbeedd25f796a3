package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/denris/internal/platform/tui"
	"github.com/vovakirdan/denris/internal/storage"
)

// runMenu shows the mode menu and returns to it after every game.
func runMenu(_ *cobra.Command, _ []string) {
	keys := prepareGames()
	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			exitf("%v", err)
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return
		case result.Rankings:
			if err := tui.RunRankings(store, "tetris", storage.DefaultRankingLimit, cfg.ScreenW, cfg.ScreenH); err != nil {
				exitf("%v", err)
			}
		default:
			if err := playGame(result.GameID, store, keys, cfg); err != nil {
				exitf("running game: %v", err)
			}
		}
	}
}
