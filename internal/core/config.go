package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	SaveDir  string // Directory for checkpoint files ("" disables persistence)
	Resume   bool   // Start from the saved checkpoint instead of a fresh level
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// DeltaTime returns the fixed simulation step in seconds.
func (c RuntimeConfig) DeltaTime() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// Phase is the level state machine position.
type Phase int

const (
	PhaseRunning Phase = iota
	PhasePaused
	PhaseWon
	PhaseLost
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the level instance has ended.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase     Phase
	Lives     int
	Health    float64
	Keys      int     // Keys collected so far
	KeysTotal int     // Keys in the level
	Elapsed   float64 // Simulated seconds since level start
}

// GameOver reports whether the level reached a terminal phase.
func (s GameState) GameOver() bool {
	return s.Phase.Terminal()
}

// Paused reports whether the level is paused.
func (s GameState) Paused() bool {
	return s.Phase == PhasePaused
}

// EventKind identifies a gameplay event raised during a tick.
type EventKind int

const (
	EventDamaged EventKind = iota
	EventLifeLost
	EventHazardHit
	EventKeyCollected
	EventGravityFlipped
	EventWon
	EventLost
	EventCheckpointSaved
	EventCheckpointLoaded
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventDamaged:
		return "damaged"
	case EventLifeLost:
		return "life_lost"
	case EventHazardHit:
		return "hazard_hit"
	case EventKeyCollected:
		return "key_collected"
	case EventGravityFlipped:
		return "gravity_flipped"
	case EventWon:
		return "won"
	case EventLost:
		return "lost"
	case EventCheckpointSaved:
		return "checkpoint_saved"
	case EventCheckpointLoaded:
		return "checkpoint_loaded"
	default:
		return "unknown"
	}
}

// Event is a single gameplay occurrence. Index carries the key index for
// EventKeyCollected and the platform index for EventHazardHit, -1 otherwise.
type Event struct {
	Kind  EventKind
	Index int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether an event of the given kind occurred this tick.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// EndChoice is the option picked on the end screen after a win or loss.
type EndChoice int

const (
	ChoiceNewGame EndChoice = iota
	ChoiceSelectBiome
	ChoiceExit
)

// EndChoices lists end screen options in display order.
var EndChoices = []EndChoice{ChoiceNewGame, ChoiceSelectBiome, ChoiceExit}

// String returns the end screen label.
func (c EndChoice) String() string {
	switch c {
	case ChoiceNewGame:
		return "New Game"
	case ChoiceSelectBiome:
		return "Select Biome"
	case ChoiceExit:
		return "Exit"
	default:
		return "Unknown"
	}
}
