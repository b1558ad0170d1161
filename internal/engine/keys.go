package engine

import (
	"math/rand"

	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/mesh"
)

// Key is a collectible bound to a platform. Its position follows the
// platform at a fixed offset.
type Key struct {
	Platform  int
	Offset    core.Vec2
	Size      float64
	Collected bool

	mesh mesh.Handle
}

// KeyRing holds the level's keys and gates the goal.
type KeyRing struct {
	Keys []Key
}

// keyOffset places a key relative to its platform's anchor (center x,
// bottom y).
func keyOffset(placement config.KeyPlacement, pl *Platform, gap float64) core.Vec2 {
	switch placement {
	case config.PlaceAuto:
		if pl.Y < 0 {
			return core.Vec2{Y: pl.Height + gap}
		}
		return core.Vec2{Y: -gap}
	case config.PlaceCenter:
		return core.Vec2{Y: pl.Height / 2}
	default:
		return core.Vec2{Y: pl.Height + gap}
	}
}

// normalPlatforms returns the indices of the platforms keys may bind to.
func normalPlatforms(platforms []Platform) []int {
	var out []int
	for i := range platforms {
		if platforms[i].Kind == KindNormal {
			out = append(out, i)
		}
	}
	return out
}

// newKeyRing binds kc.Count keys to distinct platforms drawn from
// candidates.
func newKeyRing(kc config.KeysConfig, platforms []Platform, candidates []int, rng *rand.Rand) KeyRing {
	pool := append([]int(nil), candidates...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := kc.Count
	if n > len(pool) {
		n = len(pool)
	}
	ring := KeyRing{Keys: make([]Key, 0, n)}
	for _, idx := range pool[:n] {
		ring.Keys = append(ring.Keys, Key{
			Platform: idx,
			Offset:   keyOffset(kc.Placement, &platforms[idx], kc.Gap),
			Size:     kc.Size,
		})
	}
	return ring
}

// Position returns the world position of key i.
func (k *KeyRing) Position(i int, platforms []Platform) core.Vec2 {
	key := k.Keys[i]
	pl := &platforms[key.Platform]
	return core.Vec2{X: pl.X, Y: pl.Y}.Add(key.Offset)
}

// TryCollect marks every uncollected key within pickup range of the player
// and returns their indices. Keys never become uncollected.
func (k *KeyRing) TryCollect(p *Player, platforms []Platform) []int {
	var picked []int
	for i := range k.Keys {
		key := &k.Keys[i]
		if key.Collected {
			continue
		}
		if p.Pos.Dist(k.Position(i, platforms)) < p.Radius()+key.Size/2 {
			key.Collected = true
			picked = append(picked, i)
		}
	}
	return picked
}

// AllCollected reports whether every key has been picked up.
func (k *KeyRing) AllCollected() bool {
	for _, key := range k.Keys {
		if !key.Collected {
			return false
		}
	}
	return true
}

// Collected returns the number of keys picked up.
func (k *KeyRing) Collected() int {
	n := 0
	for _, key := range k.Keys {
		if key.Collected {
			n++
		}
	}
	return n
}

// Total returns the number of keys in the level.
func (k *KeyRing) Total() int {
	return len(k.Keys)
}
