package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// difficultyScaling lists the multipliers a preset applies.
type difficultyScaling struct {
	Lives         int     // replaces player.lives when > 0
	Damage        float64 // projectile damage multiplier
	Interval      float64 // spawn interval multiplier
	PlatformSpeed float64 // platform speed multiplier
}

func scalingFor(preset DifficultyPreset) difficultyScaling {
	switch preset {
	case DifficultyEasy:
		return difficultyScaling{Lives: 5, Damage: 0.5, Interval: 1.3, PlatformSpeed: 0.8}
	case DifficultyHard:
		return difficultyScaling{Lives: 2, Damage: 1.5, Interval: 0.6, PlatformSpeed: 1.3}
	default:
		return difficultyScaling{Damage: 1, Interval: 1, PlatformSpeed: 1}
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the config untouched.
func ApplyPreset(cfg *BiomeConfig, preset DifficultyPreset) {
	s := scalingFor(preset)

	if s.Lives > 0 {
		cfg.Player.Lives = s.Lives
	}

	cfg.Projectiles.Damage = math.Round(cfg.Projectiles.Damage*s.Damage*100) / 100
	cfg.Projectiles.Interval = cfg.Projectiles.Interval.Scale(s.Interval)
	if cfg.Projectiles.Chance > 0 {
		cfg.Projectiles.Chance = math.Min(1, cfg.Projectiles.Chance/s.Interval)
	}

	platforms := make([]PlatformConfig, len(cfg.Platforms))
	for i, p := range cfg.Platforms {
		p.Speed = p.Speed.Scale(s.PlatformSpeed)
		platforms[i] = p
	}
	cfg.Platforms = platforms
}
