package engine

import (
	"math/rand"

	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/mesh"
)

// Projectile is a hazard that travels horizontally across the world.
// Circles use Radius; boxes use HalfW and HalfH.
type Projectile struct {
	Pos    core.Vec2
	VX     float64
	Shape  config.ProjectileShape
	Radius float64
	HalfW  float64
	HalfH  float64

	mesh mesh.Handle
}

// Extent returns the horizontal half size.
func (pr *Projectile) Extent() float64 {
	if pr.Shape == config.ShapeBox {
		return pr.HalfW
	}
	return pr.Radius
}

// Update translates the projectile.
func (pr *Projectile) Update(dt float64) {
	pr.Pos.X += pr.VX * dt
}

// Gone reports whether the projectile has fully left the world through the
// edge it travels toward.
func (pr *Projectile) Gone() bool {
	if pr.VX < 0 {
		return pr.Pos.X+pr.Extent() < WorldMin
	}
	return pr.Pos.X-pr.Extent() > WorldMax
}

// Hits reports whether the projectile touches the player.
func (pr *Projectile) Hits(p *Player) bool {
	if pr.Shape == config.ShapeBox {
		return p.Bounds().Intersects(core.NewBox(pr.Pos, pr.HalfW, pr.HalfH))
	}
	return core.CirclesOverlap(p.Pos, p.Radius(), pr.Pos, pr.Radius)
}

// localMesh builds the projectile geometry around its center.
func (pr *Projectile) localMesh() mesh.Mesh {
	if pr.Shape == config.ShapeBox {
		return mesh.CenteredRect(2*pr.HalfW, 2*pr.HalfH)
	}
	return mesh.Circle(pr.Radius, 12)
}

// Spawner emits projectiles from one world edge, either on a randomized
// timer or with a fixed chance per frame.
type Spawner struct {
	cfg   config.ProjectilesConfig
	rng   *rand.Rand
	timer float64
}

// NewSpawner creates a spawner. The first projectile of an interval
// spawner appears on the first tick.
func NewSpawner(cfg config.ProjectilesConfig, rng *rand.Rand) *Spawner {
	return &Spawner{cfg: cfg, rng: rng}
}

// Tick advances the spawn timer and returns a new projectile when one is due.
func (s *Spawner) Tick(dt float64) (Projectile, bool) {
	if !s.cfg.Enabled {
		return Projectile{}, false
	}

	if s.cfg.Chance > 0 {
		if s.rng.Float64() >= s.cfg.Chance {
			return Projectile{}, false
		}
		return s.spawn(), true
	}

	s.timer -= dt
	if s.timer > 0 {
		return Projectile{}, false
	}
	pr := s.spawn()
	s.timer = s.cfg.Interval.Sample(s.rng)
	return pr, true
}

func (s *Spawner) spawn() Projectile {
	pr := Projectile{
		Shape: s.cfg.Shape,
		Pos:   core.Vec2{Y: s.cfg.Lane.Sample(s.rng)},
	}
	size := s.cfg.Size.Sample(s.rng)
	if pr.Shape == config.ShapeBox {
		pr.HalfW = size
		pr.HalfH = s.cfg.Height.Sample(s.rng) / 2
	} else {
		pr.Radius = size
	}
	speed := s.cfg.Speed.Sample(s.rng)

	if s.cfg.Edge == config.EdgeLeft {
		pr.Pos.X = WorldMin - s.cfg.Margin
		pr.VX = speed
	} else {
		pr.Pos.X = WorldMax + s.cfg.Margin
		pr.VX = -speed
	}
	return pr
}
