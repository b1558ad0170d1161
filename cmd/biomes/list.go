package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-biomes/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available biomes",
	Long:  `Shows every biome with its description.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	infos := registry.List()

	if len(infos) == 0 {
		fmt.Println("No biomes available.")
		return
	}

	fmt.Println("Available biomes:")
	fmt.Println()

	maxIDLen, maxTitleLen := len("ID"), len("Title")
	for _, info := range infos {
		maxIDLen = max(maxIDLen, len(info.ID))
		maxTitleLen = max(maxTitleLen, len(info.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")
	for _, info := range infos {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, info.ID, maxTitleLen, info.Title, info.Description)
	}

	fmt.Println()
	fmt.Println("Run 'biomes play <id>' to play a biome.")
}
