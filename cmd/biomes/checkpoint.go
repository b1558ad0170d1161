package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-biomes/internal/checkpoint"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Inspect or delete saved progress",
	Long: `Checkpoints are written whenever a key is collected, a life is lost or
damage is taken. They live in --save-dir as <biome>_checkpoint.json.

Examples:
  biomes checkpoint show space
  biomes checkpoint clear river`,
}

var checkpointShowCmd = &cobra.Command{
	Use:   "show <biome>",
	Short: "Print a biome's checkpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckpointShow,
}

var checkpointClearCmd = &cobra.Command{
	Use:   "clear <biome>",
	Short: "Delete a biome's checkpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckpointClear,
}

func init() {
	checkpointCmd.AddCommand(checkpointShowCmd)
	checkpointCmd.AddCommand(checkpointClearCmd)
}

func checkpointStore(biomeID string) (*checkpoint.Store, error) {
	requireBiome(biomeID)
	if flagSaveDir == "" {
		return nil, errors.New("checkpoints are disabled (empty --save-dir)")
	}
	return checkpoint.NewStore(flagSaveDir, biomeID)
}

func runCheckpointShow(_ *cobra.Command, args []string) error {
	store, err := checkpointStore(args[0])
	if err != nil {
		return err
	}

	rec, err := store.Load(checkpoint.Record{})
	switch {
	case errors.Is(err, checkpoint.ErrNotFound):
		fmt.Printf("No checkpoint for %s.\n", args[0])
		return nil
	case err != nil:
		return err
	}

	p := rec.Player
	fmt.Printf("Checkpoint - %s\n", args[0])
	fmt.Printf("  File       %s\n", store.Path())
	fmt.Printf("  Lives      %d\n", p.Lives)
	fmt.Printf("  Health     %.0f\n", p.Health)
	fmt.Printf("  Position   (%.3f, %.3f)\n", p.X, p.Y)
	if p.GravityDirection > 0 {
		fmt.Println("  Gravity    up")
	}
	fmt.Printf("  Keys       %d/%d\n", rec.CollectedCount(), len(rec.Keys))
	fmt.Printf("  Platforms  %d\n", len(rec.Platforms))
	if !rec.Resumable() {
		fmt.Println("  (no lives left, a resume starts a new game)")
	}
	return nil
}

func runCheckpointClear(_ *cobra.Command, args []string) error {
	store, err := checkpointStore(args[0])
	if err != nil {
		return err
	}
	if !store.Exists() {
		fmt.Printf("No checkpoint for %s.\n", args[0])
		return nil
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Printf("Deleted checkpoint for %s.\n", args[0])
	return nil
}
