package engine

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-biomes/internal/checkpoint"
	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/mesh"
)

// PlatformKind tags how the resolver treats contact with a platform.
type PlatformKind int

const (
	KindNormal PlatformKind = iota
	KindHazard
	KindGoal
)

// String returns the checkpoint name of the kind.
func (k PlatformKind) String() string {
	switch k {
	case KindHazard:
		return checkpoint.TypeHazard
	case KindGoal:
		return checkpoint.TypeGoal
	default:
		return checkpoint.TypeNormal
	}
}

// kindFromConfig converts a configured kind.
func kindFromConfig(k config.PlatformKind) (PlatformKind, error) {
	switch k {
	case config.KindNormal:
		return KindNormal, nil
	case config.KindHazard:
		return KindHazard, nil
	case config.KindGoal:
		return KindGoal, nil
	default:
		return KindNormal, fmt.Errorf("engine: unknown platform kind %q", k)
	}
}

// kindFromCheckpoint converts a saved type name.
func kindFromCheckpoint(t string) (PlatformKind, bool) {
	norm, ok := checkpoint.NormalizeType(t)
	if !ok {
		return KindNormal, false
	}
	switch norm {
	case checkpoint.TypeHazard:
		return KindHazard, true
	case checkpoint.TypeGoal:
		return KindGoal, true
	default:
		return KindNormal, true
	}
}

// Platform is a rectangle that oscillates vertically between two bounds.
// X is the horizontal center and Y the bottom edge.
type Platform struct {
	Kind      PlatformKind
	X, Y      float64
	Width     float64
	Height    float64
	Speed     float64
	Direction float64
	Lower     float64
	Upper     float64
	Spikes    config.SpikeSide

	mesh mesh.Handle
}

// newPlatform samples a platform from its config.
func newPlatform(pc config.PlatformConfig, rng *rand.Rand) (Platform, error) {
	kind, err := kindFromConfig(pc.Kind)
	if err != nil {
		return Platform{}, err
	}
	p := Platform{
		Kind:   kind,
		X:      pc.X.Sample(rng),
		Y:      pc.Y,
		Width:  pc.Width.Sample(rng),
		Height: pc.Height,
		Speed:  pc.Speed.Sample(rng),
		Lower:  pc.Lower,
		Upper:  pc.Upper,
		Spikes: pc.Spikes,
	}
	switch {
	case pc.Direction > 0:
		p.Direction = 1
	case pc.Direction < 0:
		p.Direction = -1
	default:
		p.Direction = 1
		if rng.Intn(2) == 0 {
			p.Direction = -1
		}
	}
	return p, nil
}

// Top returns the y of the upper edge.
func (p *Platform) Top() float64 {
	return p.Y + p.Height
}

// Left returns the x of the left edge.
func (p *Platform) Left() float64 {
	return p.X - p.Width/2
}

// Right returns the x of the right edge.
func (p *Platform) Right() float64 {
	return p.X + p.Width/2
}

// Box returns the platform's bounding box.
func (p *Platform) Box() core.Box {
	return core.Box{MinX: p.Left(), MinY: p.Y, MaxX: p.Right(), MaxY: p.Top()}
}

// Update moves the platform and reverses it when it reaches or crosses a
// bound, clamping y onto that bound.
func (p *Platform) Update(dt float64) {
	if p.Speed == 0 || p.Lower >= p.Upper {
		return
	}
	p.Y += p.Speed * p.Direction * dt
	if p.Y >= p.Upper {
		p.Y = p.Upper
		p.Direction = -1
	} else if p.Y <= p.Lower {
		p.Y = p.Lower
		p.Direction = 1
	}
}

// surfaceFor returns the face a player with the given gravity direction
// lands on: the top when falling down, the bottom when falling up.
func (p *Platform) surfaceFor(gravityDir float64) float64 {
	if gravityDir < 0 {
		return p.Top()
	}
	return p.Y
}

// record converts the platform for persistence.
func (p *Platform) record() checkpoint.Platform {
	return checkpoint.Platform{
		Type:       p.Kind.String(),
		X:          p.X,
		Y:          p.Y,
		Speed:      p.Speed,
		Direction:  p.Direction,
		Width:      p.Width,
		Height:     p.Height,
		LowerBound: p.Lower,
		UpperBound: p.Upper,
	}
}

// restore applies a saved record, repairing values that would break the
// oscillation invariant.
func (p *Platform) restore(rec checkpoint.Platform) {
	if kind, ok := kindFromCheckpoint(rec.Type); ok {
		p.Kind = kind
	}
	p.X = rec.X
	p.Speed = rec.Speed
	if rec.Width > 0 {
		p.Width = rec.Width
	}
	if rec.Height > 0 {
		p.Height = rec.Height
	}
	p.Lower, p.Upper = rec.LowerBound, rec.UpperBound
	if p.Lower > p.Upper {
		p.Lower, p.Upper = p.Upper, p.Lower
	}
	p.Y = core.ClampF(rec.Y, p.Lower, p.Upper)
	if rec.Direction < 0 {
		p.Direction = -1
	} else if rec.Direction > 0 {
		p.Direction = 1
	}
}

// platformMesh builds the local geometry of a platform, with spikes for
// hazards.
func platformMesh(p *Platform) mesh.Mesh {
	m := mesh.Rect(-p.Width/2, 0, p.Width, p.Height)
	spikes := int(p.Width / 0.08)
	if spikes < 1 {
		spikes = 1
	}
	switch p.Spikes {
	case config.SpikesUp:
		m = m.Merge(mesh.Spikes(-p.Width/2, p.Height, p.Width, spikeHeight, spikes))
	case config.SpikesDown:
		m = m.Merge(mesh.Spikes(-p.Width/2, 0, p.Width, -spikeHeight, spikes))
	}
	return m
}

const spikeHeight = 0.04
