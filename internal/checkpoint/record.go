// Package checkpoint persists mid-level state as one JSON file per biome.
package checkpoint

// Version is written into every saved record.
const Version = 1

// Platform type names as they appear in checkpoint files.
const (
	TypeNormal  = "normal"
	TypeHazard  = "evil"
	TypeGoal    = "winning"
	aliasHazard = "hazard"
	aliasGoal   = "goal"
)

// NormalizeType maps accepted platform type spellings onto the names
// written by Save. Unknown names return "" and false.
func NormalizeType(t string) (string, bool) {
	switch t {
	case TypeNormal:
		return TypeNormal, true
	case TypeHazard, aliasHazard:
		return TypeHazard, true
	case TypeGoal, aliasGoal:
		return TypeGoal, true
	default:
		return "", false
	}
}

// Player holds the persisted player stats and position.
type Player struct {
	Lives            int     `json:"lives"`
	Health           float64 `json:"health"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	GravityDirection float64 `json:"gravity_direction"`
}

// Platform holds the kinematic parameters of one platform.
type Platform struct {
	Type       string  `json:"type"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Speed      float64 `json:"speed"`
	Direction  float64 `json:"direction"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// Key binds a collectible to a platform by creation index.
type Key struct {
	PlatformIndex int  `json:"platform_index"`
	Collected     bool `json:"collected"`
}

// Record is the full persisted level state. Platforms are kept in
// creation order so key indices stay meaningful.
type Record struct {
	Version   int        `json:"version"`
	Biome     string     `json:"biome"`
	Player    Player     `json:"player"`
	Platforms []Platform `json:"platforms"`
	Keys      []Key      `json:"keys"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Platforms = append([]Platform(nil), r.Platforms...)
	out.Keys = append([]Key(nil), r.Keys...)
	return out
}

// CollectedCount returns the number of collected keys.
func (r Record) CollectedCount() int {
	n := 0
	for _, k := range r.Keys {
		if k.Collected {
			n++
		}
	}
	return n
}

// Resumable reports whether the record describes a level that can still
// be played.
func (r Record) Resumable() bool {
	return r.Player.Lives > 0
}

// The wire types mirror Record with pointer fields so Load can tell a
// missing field from a zero value.

type wirePlayer struct {
	Lives            *int     `json:"lives"`
	Health           *float64 `json:"health"`
	X                *float64 `json:"x"`
	Y                *float64 `json:"y"`
	GravityDirection *float64 `json:"gravity_direction"`
}

type wirePlatform struct {
	Type       *string  `json:"type"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Speed      *float64 `json:"speed"`
	Direction  *float64 `json:"direction"`
	Width      *float64 `json:"width"`
	Height     *float64 `json:"height"`
	LowerBound *float64 `json:"lower_bound"`
	UpperBound *float64 `json:"upper_bound"`
}

type wireKey struct {
	PlatformIndex *int  `json:"platform_index"`
	Collected     *bool `json:"collected"`
}

type wireRecord struct {
	Version   *int           `json:"version"`
	Biome     *string        `json:"biome"`
	Player    *wirePlayer    `json:"player"`
	Platforms []wirePlatform `json:"platforms"`
	Keys      []wireKey      `json:"keys"`
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// merge overlays the fields present in w onto a copy of defaults.
func merge(defaults Record, w wireRecord) Record {
	out := defaults.Clone()
	setInt(&out.Version, w.Version)
	if w.Biome != nil {
		out.Biome = *w.Biome
	}

	if p := w.Player; p != nil {
		setInt(&out.Player.Lives, p.Lives)
		setFloat(&out.Player.Health, p.Health)
		setFloat(&out.Player.X, p.X)
		setFloat(&out.Player.Y, p.Y)
		setFloat(&out.Player.GravityDirection, p.GravityDirection)
	}

	for i, wp := range w.Platforms {
		var p *Platform
		if i < len(defaults.Platforms) {
			p = &out.Platforms[i]
		} else {
			// Saved platforms beyond the generated layout are kept only when
			// they carry a known type.
			if wp.Type == nil {
				continue
			}
			if _, ok := NormalizeType(*wp.Type); !ok {
				continue
			}
			out.Platforms = append(out.Platforms, Platform{})
			p = &out.Platforms[len(out.Platforms)-1]
		}
		if wp.Type != nil {
			if t, ok := NormalizeType(*wp.Type); ok {
				p.Type = t
			}
		}
		setFloat(&p.X, wp.X)
		setFloat(&p.Y, wp.Y)
		setFloat(&p.Speed, wp.Speed)
		setFloat(&p.Direction, wp.Direction)
		setFloat(&p.Width, wp.Width)
		setFloat(&p.Height, wp.Height)
		setFloat(&p.LowerBound, wp.LowerBound)
		setFloat(&p.UpperBound, wp.UpperBound)
	}

	for i, wk := range w.Keys {
		validIndex := wk.PlatformIndex != nil &&
			*wk.PlatformIndex >= 0 && *wk.PlatformIndex < len(out.Platforms)
		var k *Key
		if i < len(defaults.Keys) {
			k = &out.Keys[i]
		} else {
			if !validIndex {
				continue
			}
			out.Keys = append(out.Keys, Key{})
			k = &out.Keys[len(out.Keys)-1]
		}
		if validIndex {
			k.PlatformIndex = *wk.PlatformIndex
		}
		if wk.Collected != nil {
			k.Collected = *wk.Collected
		}
	}

	return out
}
