package engine

import (
	"math"

	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/core"
)

// World bounds shared by every biome.
const (
	WorldMin = -1.0
	WorldMax = 1.0
)

// Resolution is the outcome of one collision pass.
type Resolution struct {
	Platform int  // index of the platform touched, -1 for none
	Landed   bool // the player is resting on a platform or the world edge
	Hazard   bool // a hazard platform or open water was touched
	Won      bool // the goal was reached with every key collected
}

// ResolveParams carries the per-level constants the resolver needs.
type ResolveParams struct {
	Tolerance float64
	// PrevEdge is the player's contact edge before this frame's integration.
	PrevEdge float64
	// Swim lets hazard and goal platforms react to any overlap rather than
	// only to a landing.
	Swim bool
	// Water is checked only when Swim is set.
	Water config.HazardZone
}

// Resolve tests the player against platforms in creation order, then
// against open water and finally against the world edges. The first
// platform contact decides the frame; a hazard stops all further testing.
func Resolve(p *Player, platforms []Platform, keys *KeyRing, params ResolveParams) Resolution {
	res := Resolution{Platform: -1}
	p.Grounded = false
	r := p.Radius()

	for i := range platforms {
		pl := &platforms[i]
		if !core.SpanOverlaps(p.Pos.X-r, p.Pos.X+r, pl.Left(), pl.Right()) {
			continue
		}

		landing := landingContact(p, pl, params)
		touching := landing || (params.Swim && pl.Kind != KindNormal && overlapsCircle(p, pl))
		if !touching {
			continue
		}

		res.Platform = i
		switch pl.Kind {
		case KindHazard:
			p.HitHazard()
			res.Hazard = true
			return res
		case KindGoal:
			if keys == nil || keys.AllCollected() {
				p.Won = true
				res.Won = true
				return res
			}
			if !landing {
				// Goal touched without keys while swimming: not solid.
				res.Platform = -1
				continue
			}
			p.LandOn(pl.surfaceFor(p.GravityDir))
			res.Landed = true
		default:
			p.LandOn(pl.surfaceFor(p.GravityDir))
			res.Landed = true
		}
		break
	}

	if params.Swim && params.Water.Contains(p.Pos.X) && !nearNormal(p, platforms, params.Water.Reach) {
		p.HitHazard()
		res.Platform = -1
		res.Hazard = true
		return res
	}

	if resolveWorld(p) {
		res.Landed = true
	}
	return res
}

// landingContact reports whether the player's contact edge meets the
// platform face it falls toward. The edge must be within tolerance of the
// face, or have crossed it this frame, while moving toward it.
func landingContact(p *Player, pl *Platform, params ResolveParams) bool {
	edge := p.ContactEdge()
	tol := params.Tolerance

	if p.GravityDir < 0 {
		if p.VY > 0 {
			return false
		}
		top := pl.Top()
		if math.Abs(edge-top) < tol {
			return true
		}
		return params.PrevEdge >= top-tol && edge <= top
	}

	if p.VY < 0 {
		return false
	}
	bottom := pl.Y
	if math.Abs(edge-bottom) < tol {
		return true
	}
	return params.PrevEdge <= bottom+tol && edge >= bottom
}

// overlapsCircle reports whether the player's circle overlaps the
// platform rectangle.
func overlapsCircle(p *Player, pl *Platform) bool {
	cx := core.ClampF(p.Pos.X, pl.Left(), pl.Right())
	cy := core.ClampF(p.Pos.Y, pl.Y, pl.Top())
	return p.Pos.Dist(core.Vec2{X: cx, Y: cy}) < p.Radius()
}

// nearNormal reports whether the player's circle comes within reach of a
// normal platform.
func nearNormal(p *Player, platforms []Platform, reach float64) bool {
	for i := range platforms {
		pl := &platforms[i]
		if pl.Kind != KindNormal {
			continue
		}
		cx := core.ClampF(p.Pos.X, pl.Left(), pl.Right())
		cy := core.ClampF(p.Pos.Y, pl.Y, pl.Top())
		if p.Pos.Dist(core.Vec2{X: cx, Y: cy}) <= p.Radius()+reach {
			return true
		}
	}
	return false
}

// resolveWorld keeps the player inside the world. The edge gravity pulls
// toward acts as a floor; the opposite edge stops the player without
// grounding it. Reports whether the player landed on the floor.
func resolveWorld(p *Player) bool {
	r := p.Radius()
	p.Pos.X = core.ClampF(p.Pos.X, WorldMin+r, WorldMax-r)

	if p.GravityDir < 0 {
		if p.Pos.Y-r <= WorldMin {
			p.LandOn(WorldMin)
			return true
		}
		if p.Pos.Y+r >= WorldMax {
			p.Pos.Y = WorldMax - r
			p.VY = 0
		}
		return false
	}

	if p.Pos.Y+r >= WorldMax {
		p.LandOn(WorldMax)
		return true
	}
	if p.Pos.Y-r <= WorldMin {
		p.Pos.Y = WorldMin + r
		p.VY = 0
	}
	return false
}
