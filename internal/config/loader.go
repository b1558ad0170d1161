package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadBiome loads the configuration for a biome.
// Search order: customPath -> ~/.biomes/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default
//
// A custom path that cannot be read or parsed is an error. Broken files in
// the user and local directories are skipped so a bad edit there never
// blocks the embedded level.
func LoadBiome(id, customPath string) (BiomeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BiomeConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data, customPath)
		if err != nil {
			return BiomeConfig{}, err
		}
		return withID(cfg, id)
	}

	filename := id + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data, userCfgPath); err == nil {
				return withID(cfg, id)
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", filename)
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := Parse(data, local); err == nil {
			return withID(cfg, id)
		}
	}

	// Use embedded default YAML
	return Default(id)
}

// ResolvePath returns the file LoadBiome would read for id, or "" when it
// would fall back to the embedded defaults.
func ResolvePath(id, customPath string) string {
	if customPath != "" {
		return customPath
	}
	filename := id + ".yaml"
	if p := userConfigPath(filename); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	local := filepath.Join("configs", filename)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return ""
}

// withID makes sure a loaded file describes the requested biome.
func withID(cfg BiomeConfig, id string) (BiomeConfig, error) {
	if cfg.ID != id {
		return BiomeConfig{}, fmt.Errorf("config: file describes biome %q, expected %q", cfg.ID, id)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".biomes", "configs", filename)
}
