// Package biomes connects biome configuration sources to the engine.
// Each biome lives in its own subpackage that registers itself with the
// registry; this package holds the settings they share.
package biomes

import (
	"sync"

	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/engine"
)

// Settings holds the CLI-selected config file and difficulty of one biome.
// It is safe for concurrent use; SSH sessions read it while the CLI sets it.
type Settings struct {
	mu         sync.RWMutex
	configPath string
	preset     config.DifficultyPreset
}

// SetConfigPath sets the custom config file. Empty restores the search path.
func (s *Settings) SetConfigPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configPath = path
}

// ConfigPath returns the custom config file, if any.
func (s *Settings) ConfigPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.configPath
}

// SetDifficulty sets the preset applied on every Reset.
func (s *Settings) SetDifficulty(p config.DifficultyPreset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preset = p
}

// Difficulty returns the current preset.
func (s *Settings) Difficulty() config.DifficultyPreset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.preset == "" {
		return config.DifficultyNormal
	}
	return s.preset
}

// Loader returns an engine loader that reads id's config through the
// search path on every call and applies the difficulty preset.
func (s *Settings) Loader(id string) engine.Loader {
	return func() (config.BiomeConfig, error) {
		cfg, err := config.LoadBiome(id, s.ConfigPath())
		if err != nil {
			return config.BiomeConfig{}, err
		}
		config.ApplyPreset(&cfg, s.Difficulty())
		return cfg, nil
	}
}

// Load reads and validates id's config once, for callers that want to
// report problems before a game starts.
func (s *Settings) Load(id string) (config.BiomeConfig, error) {
	return s.Loader(id)()
}

// New creates an engine game for id using s.
func New(id, title string, s *Settings, opts ...engine.Option) *engine.Game {
	return engine.New(id, title, s.Loader(id), opts...)
}
