// Package upsidedown registers the Upside Down biome. Gravity can be flipped at will.
package upsidedown

import (
	"github.com/vovakirdan/tui-biomes/internal/biomes"
	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/engine"
	"github.com/vovakirdan/tui-biomes/internal/registry"
)

// ID is the biome identifier.
const ID = config.BiomeUpsideDown

// Title is the display name.
const Title = "Upside Down"

var settings biomes.Settings

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settings.SetConfigPath(path)
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	settings.SetDifficulty(preset)
}

// Settings returns the biome's shared settings.
func Settings() *biomes.Settings {
	return &settings
}

// New creates a Upside Down game.
func New(opts ...engine.Option) *engine.Game {
	return biomes.New(ID, Title, &settings, opts...)
}

// Register the biome with the registry
func init() {
	registry.Register(registry.Info{
		ID:          ID,
		Title:       Title,
		Description: "Flip gravity to walk on ceilings and reach the exit",
	}, func() registry.Game {
		return New()
	})
}
