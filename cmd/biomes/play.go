package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-biomes/internal/checkpoint"
	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/platform/tui"
	"github.com/vovakirdan/tui-biomes/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagResume     bool
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play <biome>",
	Short: "Play a biome",
	Long: `Start playing the specified biome.

Controls:
  A/D, Left/Right  - Move
  W/S, Up/Down     - Swim (river)
  Space            - Jump
  G                - Flip gravity (upside down)
  P/Esc            - Pause
  B                - Back to menu (while paused)
  F5               - Save checkpoint
  F9               - Reload checkpoint
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5 lives, weaker and rarer projectiles, slower platforms
  normal - Values from the biome config
  hard   - 2 lives, stronger and more frequent projectiles, faster platforms

Examples:
  biomes play space
  biomes play river --resume
  biomes play upside_down --difficulty hard
  biomes play space --config ./my-space.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom biome config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue from the saved checkpoint")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file on change (applies to the next game)")
}

func runPlay(_ *cobra.Command, args []string) error {
	biomeID := args[0]
	requireBiome(biomeID)

	if err := configureBiomes(flagDifficulty, map[string]string{biomeID: flagConfig}); err != nil {
		return err
	}

	cfg := runtimeConfig()
	cfg.Resume = flagResume
	if flagResume && !checkpointExists(cfg.SaveDir, biomeID) {
		fmt.Fprintf(os.Stderr, "No checkpoint for %s, starting a new game.\n", biomeID)
	}

	var opts []tui.GameOption
	if flagWatch {
		w, err := watchConfig(biomeID, flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: config watch disabled: %v\n", err)
		} else {
			defer w.Close()
			opts = append(opts, tui.WithWatcher(w))
		}
	}

	closeLog := useLogFile()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(biomeID)
	if err != nil {
		return fmt.Errorf("creating biome: %w", err)
	}
	opts = append(opts, tui.WithPlayer(os.Getenv("USER")))

	result, err := tui.RunGame(game, store, cfg, opts...)
	game.Close()
	if err != nil {
		return fmt.Errorf("running biome: %w", err)
	}

	if result.Choice == core.ChoiceSelectBiome {
		cfg.Resume = false
		return menuLoop(store, cfg)
	}
	return nil
}

// configureBiomes applies the difficulty preset to every biome and custom
// config paths to the given ones, then validates the resulting configs.
// A broken config is a startup error.
func configureBiomes(difficulty string, paths map[string]string) error {
	preset, err := config.ParseDifficulty(difficulty)
	if err != nil {
		return err
	}
	for id, s := range biomeSettings {
		s.SetDifficulty(preset)
		if path, ok := paths[id]; ok {
			s.SetConfigPath(path)
		}
		if _, err := s.Load(id); err != nil {
			return fmt.Errorf("invalid config for %s: %w", id, err)
		}
	}
	return nil
}

func checkpointExists(saveDir, biomeID string) bool {
	if saveDir == "" {
		return false
	}
	s, err := checkpoint.NewStore(saveDir, biomeID)
	return err == nil && s.Exists()
}

// watchConfig watches the file the biome loads. With no file on disk it
// watches the user config directory so a new file is picked up.
func watchConfig(biomeID, customPath string) (*config.Watcher, error) {
	path := config.ResolvePath(biomeID, customPath)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".biomes", "configs", biomeID+".yaml")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	if _, err := os.Stat(filepath.Dir(path)); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("directory of %s does not exist", path)
	}
	return config.NewWatcher(path)
}
