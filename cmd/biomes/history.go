package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-biomes/internal/platform/tui"
	"github.com/vovakirdan/tui-biomes/internal/registry"
	"github.com/vovakirdan/tui-biomes/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryClear bool
	flagHistorySum   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [biome]",
	Short: "Show recent runs and stats",
	Long: `Display recent runs with per-biome stats. Without a biome every biome
is listed. A * after the result marks a run resumed from a checkpoint.

Examples:
  biomes history
  biomes history space --limit 20
  biomes history --tui
  biomes history --summary
  biomes history river --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Open the interactive history screen")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded runs for the biome")
	historyCmd.Flags().BoolVar(&flagHistorySum, "summary", false, "Print one stats line per biome")
}

func runHistory(_ *cobra.Command, args []string) error {
	biomeID := ""
	if len(args) == 1 {
		biomeID = args[0]
		requireBiome(biomeID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if biomeID == "" {
			return fmt.Errorf("--clear needs a biome")
		}
		if err := store.ClearRuns(biomeID); err != nil {
			return err
		}
		fmt.Printf("Cleared run history for %s.\n", biomeID)
		return nil
	}

	if flagHistoryTUI {
		cfg := runtimeConfig()
		_, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if flagHistorySum {
		return printSummary(store)
	}

	ids := []string{biomeID}
	if biomeID == "" {
		ids = ids[:0]
		for _, info := range registry.List() {
			ids = append(ids, info.ID)
		}
	}

	for i, id := range ids {
		if i > 0 {
			fmt.Println()
		}
		if err := printHistory(store, id, flagHistoryLimit); err != nil {
			return err
		}
	}
	return nil
}

func printHistory(store *storage.Store, biomeID string, limit int) error {
	info, _ := registry.Lookup(biomeID)

	st, err := store.GetBiomeStats(biomeID)
	if err != nil {
		return err
	}
	runs, err := store.RecentRuns(biomeID, limit)
	if err != nil {
		return err
	}

	fmt.Printf("Run History - %s\n", info.Title)
	if st.Runs == 0 {
		fmt.Println("  No runs recorded yet.")
		fmt.Printf("  Play 'biomes play %s' to record one.\n", biomeID)
		return nil
	}

	best := "-"
	if st.Wins > 0 {
		best = fmt.Sprintf("%.1fs", st.BestTime)
	}
	fmt.Printf("  Runs %d  Wins %d  Losses %d  Win rate %.0f%%  Best %s\n",
		st.Runs, st.Wins, st.Losses, st.WinRate()*100, best)
	fmt.Println()

	fmt.Printf("  %-7s  %-8s  %-5s  %-5s  %-10s  %s\n", "Result", "Time", "Keys", "Lives", "Player", "Date")
	fmt.Printf("  %-7s  %-8s  %-5s  %-5s  %-10s  %s\n", "------", "----", "----", "-----", "------", "----")
	for _, r := range runs {
		result := string(r.Outcome)
		if r.Resumed {
			result += "*"
		}
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-7s  %-8s  %-5s  %-5d  %-10s  %s\n",
			result,
			fmt.Sprintf("%.1fs", r.Elapsed),
			fmt.Sprintf("%d/%d", r.Keys, r.KeysTotal),
			r.Lives,
			player,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}

// printSummary prints aggregate stats for every registered biome.
func printSummary(store *storage.Store) error {
	all, err := store.GetAllBiomeStats()
	if err != nil {
		return err
	}

	fmt.Printf("%-14s  %5s  %5s  %6s  %5s  %8s  %s\n", "Biome", "Runs", "Wins", "Losses", "Rate", "Best", "Last played")
	for _, info := range registry.List() {
		st, ok := all[info.ID]
		if !ok {
			fmt.Printf("%-14s  %5d  %5d  %6d  %5s  %8s  %s\n", info.Title, 0, 0, 0, "-", "-", "-")
			continue
		}
		best := "-"
		if st.Wins > 0 {
			best = fmt.Sprintf("%.1fs", st.BestTime)
		}
		fmt.Printf("%-14s  %5d  %5d  %6d  %4.0f%%  %8s  %s\n",
			info.Title, st.Runs, st.Wins, st.Losses, st.WinRate()*100, best,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
