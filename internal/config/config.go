// Package config provides YAML-based biome configuration loading,
// difficulty presets and config file watching.
package config

import (
	"errors"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"
)

// BiomeConfig describes one biome. A single engine is instantiated from it;
// biomes differ only in data.
type BiomeConfig struct {
	ID          string             `yaml:"id"`
	Title       string             `yaml:"title"`
	Theme       string             `yaml:"theme"`
	Mode        Mode               `yaml:"mode"`
	Physics     PhysicsConfig      `yaml:"physics"`
	Player      PlayerConfig       `yaml:"player"`
	Platforms   []PlatformConfig   `yaml:"platforms"`
	Keys        KeysConfig         `yaml:"keys"`
	Projectiles ProjectilesConfig  `yaml:"projectiles"`
	Checkpoint  CheckpointSettings `yaml:"checkpoint"`
	HazardZone  HazardZone         `yaml:"hazard_zone"`
}

// HazardZone is a vertical band of open water in swim mode. A swimmer
// whose center is inside the band and farther than Reach from every
// normal platform loses a life. The zero value disables it.
type HazardZone struct {
	MinX  float64 `yaml:"min_x"`
	MaxX  float64 `yaml:"max_x"`
	Reach float64 `yaml:"reach"`
}

// Enabled reports whether the zone is configured.
func (z HazardZone) Enabled() bool {
	return z != HazardZone{}
}

// Contains reports whether x lies inside the band.
func (z HazardZone) Contains(x float64) bool {
	return z.Enabled() && x >= z.MinX && x <= z.MaxX
}

// Mode selects how input drives the player.
type Mode string

const (
	ModePlatformer Mode = "platformer" // gravity, jumps, optional gravity flip
	ModeSwim       Mode = "swim"       // four-way movement, no gravity
)

// PhysicsConfig defines kinematic constants.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	JumpStrength     float64 `yaml:"jump_strength"`
	MaxJumps         int     `yaml:"max_jumps"`
	MoveSpeed        float64 `yaml:"move_speed"`
	SwimSpeed        float64 `yaml:"swim_speed"`
	LandingTolerance float64 `yaml:"landing_tolerance"`
	GravityFlip      bool    `yaml:"gravity_flip"`
}

// Point is a world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PlayerConfig defines the player's spawn and stats.
type PlayerConfig struct {
	Spawn          Point   `yaml:"spawn"`
	Diameter       float64 `yaml:"diameter"`
	Lives          int     `yaml:"lives"`
	MaxHealth      float64 `yaml:"max_health"`
	DamageCooldown float64 `yaml:"damage_cooldown"`
	BlinkInterval  float64 `yaml:"blink_interval"`
}

// PlatformKind tags a platform's collision behaviour.
type PlatformKind string

const (
	KindNormal PlatformKind = "normal"
	KindHazard PlatformKind = "hazard"
	KindGoal   PlatformKind = "goal"
)

// SpikeSide marks where hazard spikes are drawn.
type SpikeSide string

const (
	SpikesNone SpikeSide = ""
	SpikesUp   SpikeSide = "up"
	SpikesDown SpikeSide = "down"
)

// PlatformConfig describes one platform. X, Width and Speed are sampled
// once at level creation. Direction 0 picks a random starting direction.
type PlatformConfig struct {
	Kind      PlatformKind `yaml:"kind"`
	X         Range        `yaml:"x"`
	Y         float64      `yaml:"y"`
	Width     Range        `yaml:"width"`
	Height    float64      `yaml:"height"`
	Speed     Range        `yaml:"speed"`
	Lower     float64      `yaml:"lower"`
	Upper     float64      `yaml:"upper"`
	Direction int          `yaml:"direction"`
	Spikes    SpikeSide    `yaml:"spikes"`
}

// KeyPlacement selects where a key sits relative to its platform.
type KeyPlacement string

const (
	PlaceAbove  KeyPlacement = "above"  // height + gap above the base
	PlaceAuto   KeyPlacement = "auto"   // above for bases below 0, below otherwise
	PlaceCenter KeyPlacement = "center" // on the platform's center
)

// KeysConfig defines collectible keys.
type KeysConfig struct {
	Count     int          `yaml:"count"`
	Size      float64      `yaml:"size"`
	Gap       float64      `yaml:"gap"`
	Placement KeyPlacement `yaml:"placement"`
}

// ProjectileShape selects hit testing for projectiles.
type ProjectileShape string

const (
	ShapeCircle ProjectileShape = "circle"
	ShapeBox    ProjectileShape = "box"
)

// Edge is the world edge projectiles enter from.
type Edge string

const (
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

// ProjectilesConfig defines the hazard projectile spawner.
// When Chance is positive it replaces Interval as a per-frame spawn
// probability.
type ProjectilesConfig struct {
	Enabled  bool            `yaml:"enabled"`
	Name     string          `yaml:"name"`
	Shape    ProjectileShape `yaml:"shape"`
	Edge     Edge            `yaml:"edge"`
	Margin   float64         `yaml:"margin"`
	Interval Range           `yaml:"interval"`
	Chance   float64         `yaml:"chance"`
	Lane     Range           `yaml:"lane"`
	Size     Range           `yaml:"size"`   // radius, or half-width for boxes
	Height   Range           `yaml:"height"` // full height, boxes only
	Speed    Range           `yaml:"speed"`
	Damage   float64         `yaml:"damage"`
}

// CheckpointSettings toggles persistence for the biome.
type CheckpointSettings struct {
	Enabled bool `yaml:"enabled"`
}

// Range is a closed interval sampled uniformly. In YAML it may be written
// as a scalar, a two element sequence or a {min, max} mapping.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Fixed returns a degenerate range.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Sample draws a value uniformly from the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Scale multiplies both ends by f.
func (r Range) Scale(f float64) Range {
	return Range{Min: r.Min * f, Max: r.Max * f}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*r = Fixed(v)
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return err
		}
		if len(vs) != 2 {
			return fmt.Errorf("line %d: range needs exactly 2 values, got %d", node.Line, len(vs))
		}
		*r = Range{Min: vs[0], Max: vs[1]}
		return nil
	case yaml.MappingNode:
		type plain Range
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*r = Range(p)
		return nil
	default:
		return fmt.Errorf("line %d: invalid range", node.Line)
	}
}

// Validate reports every inconsistency in the config.
func (c BiomeConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.ID == "" {
		fail("id is required")
	}
	switch c.Mode {
	case ModePlatformer, ModeSwim:
	default:
		fail("mode %q must be %q or %q", c.Mode, ModePlatformer, ModeSwim)
	}

	if c.Physics.MaxJumps < 0 {
		fail("physics.max_jumps must not be negative")
	}
	if c.Physics.LandingTolerance <= 0 {
		fail("physics.landing_tolerance must be positive")
	}
	if c.Mode == ModeSwim && c.Physics.SwimSpeed <= 0 {
		fail("physics.swim_speed must be positive in swim mode")
	}

	if c.Player.Diameter <= 0 {
		fail("player.diameter must be positive")
	}
	if c.Player.Lives <= 0 {
		fail("player.lives must be positive")
	}
	if c.Player.MaxHealth <= 0 {
		fail("player.max_health must be positive")
	}
	if c.Player.DamageCooldown < 0 || c.Player.BlinkInterval < 0 {
		fail("player timers must not be negative")
	}

	normals, goals := 0, 0
	for i, p := range c.Platforms {
		switch p.Kind {
		case KindNormal:
			normals++
		case KindHazard:
		case KindGoal:
			goals++
		default:
			fail("platforms[%d]: unknown kind %q", i, p.Kind)
		}
		if p.Width.Min <= 0 || p.Width.Max < p.Width.Min {
			fail("platforms[%d]: width must be a positive range", i)
		}
		if p.Height <= 0 {
			fail("platforms[%d]: height must be positive", i)
		}
		if p.Lower > p.Upper {
			fail("platforms[%d]: lower %.3f above upper %.3f", i, p.Lower, p.Upper)
		}
		if p.Y < p.Lower || p.Y > p.Upper {
			fail("platforms[%d]: y %.3f outside [%.3f, %.3f]", i, p.Y, p.Lower, p.Upper)
		}
		if p.Speed.Min < 0 || p.Speed.Max < p.Speed.Min {
			fail("platforms[%d]: speed must be a non-negative range", i)
		}
		if p.X.Max < p.X.Min {
			fail("platforms[%d]: x range is inverted", i)
		}
		if p.Direction < -1 || p.Direction > 1 {
			fail("platforms[%d]: direction must be -1, 0 or 1", i)
		}
	}
	if goals == 0 {
		fail("at least one goal platform is required")
	}

	if c.Keys.Count < 0 {
		fail("keys.count must not be negative")
	}
	if c.Keys.Count > normals {
		fail("keys.count %d exceeds %d normal platforms", c.Keys.Count, normals)
	}
	if c.Keys.Count > 0 && c.Keys.Size <= 0 {
		fail("keys.size must be positive")
	}
	switch c.Keys.Placement {
	case PlaceAbove, PlaceAuto, PlaceCenter:
	default:
		fail("keys.placement %q is not one of above, auto, center", c.Keys.Placement)
	}

	if pc := c.Projectiles; pc.Enabled {
		switch pc.Shape {
		case ShapeCircle, ShapeBox:
		default:
			fail("projectiles.shape %q is not circle or box", pc.Shape)
		}
		switch pc.Edge {
		case EdgeLeft, EdgeRight:
		default:
			fail("projectiles.edge %q is not left or right", pc.Edge)
		}
		if pc.Chance < 0 || pc.Chance > 1 {
			fail("projectiles.chance must be within [0, 1]")
		}
		if pc.Chance == 0 && pc.Interval.Min <= 0 {
			fail("projectiles.interval must be positive")
		}
		if pc.Size.Min <= 0 {
			fail("projectiles.size must be positive")
		}
		if pc.Shape == ShapeBox && pc.Height.Min <= 0 {
			fail("projectiles.height must be positive for boxes")
		}
		if pc.Speed.Min < 0 {
			fail("projectiles.speed must not be negative")
		}
		if pc.Damage < 0 {
			fail("projectiles.damage must not be negative")
		}
	}

	if z := c.HazardZone; z.Enabled() {
		if c.Mode != ModeSwim {
			fail("hazard_zone needs swim mode")
		}
		if z.MinX >= z.MaxX {
			fail("hazard_zone.min_x must be below max_x")
		}
		if z.Reach < 0 {
			fail("hazard_zone.reach must not be negative")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config %s: %w", c.ID, errors.Join(errs...))
}

// Clone returns a deep copy of c.
func (c BiomeConfig) Clone() BiomeConfig {
	out := c
	out.Platforms = append([]PlatformConfig(nil), c.Platforms...)
	return out
}
