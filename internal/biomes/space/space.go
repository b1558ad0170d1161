// Package space registers the Space biome. Platforms drift vertically and asteroids cross the sky.
package space

import (
	"github.com/vovakirdan/tui-biomes/internal/biomes"
	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/engine"
	"github.com/vovakirdan/tui-biomes/internal/registry"
)

// ID is the biome identifier.
const ID = config.BiomeSpace

// Title is the display name.
const Title = "Space"

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

// New creates a Space game.
func New(opts ...engine.Option) *engine.Game {
	return biomes.New(ID, Title, &settings, opts...)
}

// Register the biome with the registry
func init() {
	registry.Register(registry.Info{
		ID:          ID,
		Title:       Title,
		Description: "Climb drifting platforms while dodging asteroids",
	}, func() registry.Game {
		return New()
	})
}
