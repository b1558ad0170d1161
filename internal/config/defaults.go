package config

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// Biome IDs shipped with embedded defaults.
const (
	BiomeRiver      = "river"
	BiomeSpace      = "space"
	BiomeUpsideDown = "upside_down"
)

// DefaultYAML returns the embedded YAML for a biome.
func DefaultYAML(id string) ([]byte, error) {
	data, err := defaultFS.ReadFile(path.Join("defaults", id+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("config: no embedded defaults for biome %q", id)
	}
	return data, nil
}

// Default returns the embedded configuration for a biome.
func Default(id string) (BiomeConfig, error) {
	data, err := DefaultYAML(id)
	if err != nil {
		return BiomeConfig{}, err
	}
	return Parse(data, "embedded "+id)
}

// EmbeddedIDs lists the biomes that ship with defaults, sorted.
func EmbeddedIDs() []string {
	entries, err := defaultFS.ReadDir("defaults")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(ids)
	return ids
}

// baseConfig holds the values a biome file may leave out.
func baseConfig() BiomeConfig {
	return BiomeConfig{
		Mode: ModePlatformer,
		Physics: PhysicsConfig{
			Gravity:          1.0,
			JumpStrength:     0.75,
			MaxJumps:         2,
			MoveSpeed:        0.5,
			SwimSpeed:        0.5,
			LandingTolerance: 0.02,
		},
		Player: PlayerConfig{
			Diameter:       0.1,
			Lives:          3,
			MaxHealth:      100,
			DamageCooldown: 1.0,
			BlinkInterval:  0.1,
		},
		Keys: KeysConfig{
			Count:     3,
			Size:      0.04,
			Gap:       0.02,
			Placement: PlaceAbove,
		},
		Projectiles: ProjectilesConfig{
			Shape:  ShapeCircle,
			Edge:   EdgeRight,
			Margin: 0.1,
		},
		Checkpoint: CheckpointSettings{Enabled: true},
	}
}

// Parse decodes a biome config on top of the base values and validates it.
// source names the input in error messages.
func Parse(data []byte, source string) (BiomeConfig, error) {
	cfg := baseConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BiomeConfig{}, fmt.Errorf("config: failed to parse %s: %w", source, err)
	}
	if cfg.Title == "" {
		cfg.Title = cfg.ID
	}
	if cfg.Theme == "" {
		cfg.Theme = cfg.ID
	}
	if err := cfg.Validate(); err != nil {
		return BiomeConfig{}, err
	}
	return cfg, nil
}
