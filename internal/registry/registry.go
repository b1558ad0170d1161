// Package registry provides a global registry of playable biomes.
// Biome packages register themselves in init() functions, so the CLI and
// the TUI can discover and instantiate them without hardcoded imports.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-biomes/internal/core"
)

// Game is the interface the platform layer drives. Implementations hold
// pure simulation state; input mapping, timing and terminal output belong
// to the platform.
type Game interface {
	// ID returns the biome identifier used on the command line, in
	// checkpoint file names and in run history.
	ID() string

	// Title returns the display name.
	Title() string

	// Reset builds a new level instance. With cfg.Resume set the saved
	// checkpoint is restored when one is usable.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns the current level state.
	State() core.GameState

	// Resumed reports whether the last Reset restored a checkpoint.
	Resumed() bool

	// Close releases render resources held by the level.
	Close()
}

// Info describes a registered biome.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new, un-reset instance of a biome.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a biome factory to the registry.
// Panics if the ID is empty or already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: empty biome id")
	}
	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: biome %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}

	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns all registered biomes sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the metadata of a registered biome.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a biome by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown biome %q", id)
	}
	return f(), nil
}

// Exists checks if a biome with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
