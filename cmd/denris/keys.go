package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/denris/internal/config"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Print the key bindings",
	Long: `Print the active key bindings. Override them with a keys.yaml in
~/.denris/configs/ or ./configs/, or pass --keys <path>.`,
	Args: cobra.NoArgs,
	Run:  runKeys,
}

func runKeys(cmd *cobra.Command, args []string) {
	kb, err := config.LoadKeys(flagKeys)
	if err != nil {
		exitf("%v", err)
	}

	printGroup("Player 1", kb.Player1.Bindings())
	printGroup("Player 2", kb.Player2.Bindings())
	printGroup("Both", kb.Global())
	fmt.Println("In single-player mode both players' keys control the game.")
}

func printGroup(title string, groups []config.ActionKeys) {
	fmt.Println(title + ":")
	for _, g := range groups {
		names := make([]string, len(g.Keys))
		for i, k := range g.Keys {
			if k == " " {
				k = "space"
			}
			names[i] = k
		}
		fmt.Printf("  %-10s  %s\n", g.Action, strings.Join(names, ", "))
	}
	fmt.Println()
}
