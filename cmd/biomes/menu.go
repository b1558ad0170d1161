package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/platform/tui"
	"github.com/vovakirdan/tui-biomes/internal/registry"
	"github.com/vovakirdan/tui-biomes/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a biome picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate. After a level ends, pick New Game to
replay, Select Biome to come back here, or Exit.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - New game
  C            - Continue from checkpoint
  Tab          - Run history
  Q            - Quit

Examples:
  biomes menu
  biomes menu --difficulty easy
  biomes menu --fps 30 --db ./runs.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := configureBiomes(flagDifficulty, nil); err != nil {
		return err
	}

	closeLog := useLogFile()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return menuLoop(store, runtimeConfig())
}

// menuLoop alternates between the menu, the history screen and games
// until the user quits.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig) error {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsHistory {
			goBack, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		if menuResult.BiomeID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.BiomeID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating biome: %v\n", err)
			continue
		}

		gameCfg := cfg
		gameCfg.Resume = menuResult.Resume
		if gameCfg.Seed == 0 {
			gameCfg.Seed = time.Now().UnixNano()
		}

		result, err := tui.RunGame(game, store, gameCfg, tui.WithPlayer(os.Getenv("USER")))
		game.Close()
		if err != nil {
			return err
		}
		if result.Choice == core.ChoiceExit {
			return nil
		}
	}
}
