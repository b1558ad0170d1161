package engine

import (
	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/core"
)

// Gravity directions. Down is the default; the upside-down biome flips it.
const (
	GravityDown = -1.0
	GravityUp   = 1.0
)

// Player is the kinematic entity controlled by input.
type Player struct {
	Pos      core.Vec2
	VY       float64
	Diameter float64
	Spawn    core.Vec2

	Gravity      float64
	GravityDir   float64
	JumpStrength float64
	Jumps        int
	MaxJumps     int
	Grounded     bool

	Lives     int
	Health    float64
	MaxHealth float64

	Cooldown         float64 // remaining invulnerability
	CooldownDuration float64
	BlinkInterval    float64
	blinkTimer       float64
	Visible          bool

	Won bool
}

// NewPlayer creates a player at its spawn point with full stats.
func NewPlayer(pc config.PlayerConfig, phys config.PhysicsConfig) Player {
	spawn := core.Vec2{X: pc.Spawn.X, Y: pc.Spawn.Y}
	return Player{
		Pos:              spawn,
		Diameter:         pc.Diameter,
		Spawn:            spawn,
		Gravity:          phys.Gravity,
		GravityDir:       GravityDown,
		JumpStrength:     phys.JumpStrength,
		Jumps:            phys.MaxJumps,
		MaxJumps:         phys.MaxJumps,
		Lives:            pc.Lives,
		Health:           pc.MaxHealth,
		MaxHealth:        pc.MaxHealth,
		CooldownDuration: pc.DamageCooldown,
		BlinkInterval:    pc.BlinkInterval,
		Visible:          true,
	}
}

// Radius returns half the diameter.
func (p *Player) Radius() float64 {
	return p.Diameter / 2
}

// ContactEdge returns the edge of the player facing gravity: the bottom
// when gravity pulls down, the top when it pulls up.
func (p *Player) ContactEdge() float64 {
	return p.Pos.Y + p.GravityDir*p.Radius()
}

// Bounds returns the box enclosing the player's circle.
func (p *Player) Bounds() core.Box {
	r := p.Radius()
	return core.NewBox(p.Pos, r, r)
}

// ApplyGravity accelerates the player toward the gravity direction unless
// it is standing on something.
func (p *Player) ApplyGravity(dt float64) {
	if p.Grounded {
		return
	}
	p.VY += p.Gravity * p.GravityDir * dt
}

// Integrate moves the player by its vertical velocity.
func (p *Player) Integrate(dt float64) {
	p.Pos.Y += p.VY * dt
}

// MoveX shifts the player horizontally, keeping it inside the world.
func (p *Player) MoveX(dx float64) {
	r := p.Radius()
	p.Pos.X = core.ClampF(p.Pos.X+dx, -1+r, 1-r)
}

// Jump launches the player against gravity. It reports false, and does
// nothing, when the jump budget is spent.
func (p *Player) Jump() bool {
	if p.Jumps <= 0 {
		return false
	}
	p.VY = p.JumpStrength * -p.GravityDir
	p.Jumps--
	p.Grounded = false
	return true
}

// FlipGravity inverts the gravity direction and stops vertical motion.
func (p *Player) FlipGravity() {
	p.GravityDir = -p.GravityDir
	p.VY = 0
	p.Grounded = false
}

// LandOn snaps the player onto a surface at height surface, resting on it
// from the side gravity pulls toward, and restores the jump budget.
func (p *Player) LandOn(surface float64) {
	p.Pos.Y = surface - p.GravityDir*p.Radius()
	p.VY = 0
	p.Grounded = true
	p.Jumps = p.MaxJumps
}

// TakeDamage subtracts amount from health unless the damage cooldown is
// running. Health at or below zero costs one life and refills health.
// The cooldown restarts on every applied hit.
func (p *Player) TakeDamage(amount float64) (applied, lifeLost bool) {
	if p.Cooldown > 0 {
		return false, false
	}
	p.Cooldown = p.CooldownDuration
	p.blinkTimer = 0

	p.Health -= amount
	if p.Health <= 0 {
		p.loseLife()
		lifeLost = true
	}
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	return true, lifeLost
}

// HitHazard costs one life immediately, bypassing health and cooldown.
func (p *Player) HitHazard() {
	p.loseLife()
}

func (p *Player) loseLife() {
	if p.Lives > 0 {
		p.Lives--
	}
	if p.Lives > 0 {
		p.Health = p.MaxHealth
		p.Respawn()
		return
	}
	p.Health = 0
}

// Respawn returns the player to its spawn point with a full jump budget.
func (p *Player) Respawn() {
	p.Pos = p.Spawn
	p.VY = 0
	p.Jumps = p.MaxJumps
	p.Grounded = false
}

// Dead reports whether every life is spent.
func (p *Player) Dead() bool {
	return p.Lives <= 0
}

// Tick advances the damage cooldown and the blink animation. Blinking is
// cosmetic; only Cooldown gates damage.
func (p *Player) Tick(dt float64) {
	if p.Cooldown <= 0 {
		p.Cooldown = 0
		p.blinkTimer = 0
		p.Visible = true
		return
	}

	p.Cooldown -= dt
	if p.Cooldown <= 0 {
		p.Cooldown = 0
		p.blinkTimer = 0
		p.Visible = true
		return
	}

	p.blinkTimer += dt
	if p.BlinkInterval > 0 && p.blinkTimer >= p.BlinkInterval {
		p.blinkTimer = 0
		p.Visible = !p.Visible
	}
}
