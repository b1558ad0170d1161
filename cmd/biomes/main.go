// biomes is a terminal platformer with three biomes: a river to swim
// across, drifting space platforms and an upside-down world.
//
// Usage:
//
//	biomes list                      - List available biomes
//	biomes play <biome>              - Play a biome
//	biomes menu                      - Pick biomes interactively
//	biomes history [biome]           - Show recent runs and stats
//	biomes checkpoint show <biome>   - Inspect a saved checkpoint
//	biomes checkpoint clear <biome>  - Delete a saved checkpoint
//	biomes serve                     - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set run history database (default: ~/.biomes/runs.db)
//	--save-dir <path>   - Set checkpoint directory (default: ~/.biomes/saves)
//	--log-file <path>   - Set log file used while the TUI runs
//
// BIOMES_DB, BIOMES_SAVE_DIR and BIOMES_LOG_FILE override the defaults and
// may be set in a .env file.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-biomes/internal/biomes"
	"github.com/vovakirdan/tui-biomes/internal/biomes/river"
	"github.com/vovakirdan/tui-biomes/internal/biomes/space"
	"github.com/vovakirdan/tui-biomes/internal/biomes/upsidedown"
	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/registry"
	"github.com/vovakirdan/tui-biomes/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagSaveDir string
	flagLogFile string
)

// envFlags maps persistent flags to the environment variables that seed
// their defaults.
var envFlags = map[string]string{
	"db":       "BIOMES_DB",
	"save-dir": "BIOMES_SAVE_DIR",
	"log-file": "BIOMES_LOG_FILE",
}

// biomeSettings gives the CLI access to each biome's config path and
// difficulty.
var biomeSettings = map[string]*biomes.Settings{
	river.ID:      river.Settings(),
	space.ID:      space.Settings(),
	upsidedown.ID: upsidedown.Settings(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "biomes",
	Short: "Biomes - a terminal platformer",
	Long: `Biomes is a terminal platformer. Collect every key, then reach the
exit platform without running out of lives.

Available commands:
  list        - Show all biomes
  play        - Play a specific biome directly
  menu        - Interactive biome picker
  history     - Recent runs and stats
  checkpoint  - Inspect or delete saved progress
  serve       - Start SSH server for remote play

Examples:
  biomes list
  biomes play space
  biomes play river --resume
  biomes menu
  biomes serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return applyEnv(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.biomes/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagSaveDir, "save-dir", "~/.biomes/saves", "Checkpoint directory (empty disables checkpoints)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.biomes/biomes.log", "Log file while the TUI is running")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(checkpointCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyEnv loads .env and fills flags the user did not set from the
// environment.
func applyEnv(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("cannot read .env", "error", err)
	}
	for name, env := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if v, ok := os.LookupEnv(env); ok {
			if err := f.Value.Set(v); err != nil {
				return fmt.Errorf("invalid %s: %w", env, err)
			}
		}
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// useLogFile sends the default logger to --log-file so log lines do not
// tear the alt screen. The returned func closes the file.
func useLogFile() func() {
	if flagLogFile == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetDefault(log.NewWithOptions(f, log.Options{ReportTimestamp: true}))
	return func() {
		log.SetDefault(log.New(os.Stderr))
		f.Close()
	}
}

// runtimeConfig builds the runtime config from global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		SaveDir:  flagSaveDir,
	}
}

// openStore opens the run history. Failures are reported and the caller
// continues without history.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}

// requireBiome exits when id is not registered.
func requireBiome(id string) registry.Info {
	info, ok := registry.Lookup(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown biome %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'biomes list' to see available biomes.")
		os.Exit(1)
	}
	return info
}
