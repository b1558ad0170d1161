// Package engine implements the shared platformer simulation that every
// biome runs on: player kinematics, oscillating platforms, collision
// resolution, key gating, hazard projectiles and checkpointing.
package engine

import (
	"errors"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-biomes/internal/checkpoint"
	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/mesh"
)

// Loader returns the configuration for the next level instance. It is
// called on every Reset so edited config files apply to new games.
type Loader func() (config.BiomeConfig, error)

// StaticLoader always returns cfg.
func StaticLoader(cfg config.BiomeConfig) Loader {
	return func() (config.BiomeConfig, error) {
		return cfg, nil
	}
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for checkpoint and config problems.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// WithStore overrides the checkpoint store derived from RuntimeConfig.SaveDir.
func WithStore(s *checkpoint.Store) Option {
	return func(g *Game) {
		g.store = s
		g.fixedStore = true
	}
}

// Game runs one biome. It implements registry.Game.
type Game struct {
	id     string
	title  string
	load   Loader
	logger *log.Logger

	cfg     config.BiomeConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand
	pool    *mesh.Pool
	theme   Theme

	player      Player
	playerMesh  mesh.Handle
	platforms   []Platform
	keys        KeyRing
	projectiles []Projectile
	spawner     *Spawner

	store      *checkpoint.Store
	fixedStore bool
	resumed    bool

	phase   core.Phase
	elapsed float64
	ticks   int
	events  []core.Event
}

// New creates a game for biome id. Reset must be called before Step.
func New(id, title string, load Loader, opts ...Option) *Game {
	g := &Game{
		id:    id,
		title: title,
		load:  load,
		pool:  mesh.NewPool(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.Default().WithPrefix("engine")
	}
	g.logger = g.logger.With("biome", id)
	return g
}

// ID returns the biome identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Config returns the configuration of the current level instance.
func (g *Game) Config() config.BiomeConfig {
	return g.cfg
}

// Resumed reports whether the last Reset restored a checkpoint.
func (g *Game) Resumed() bool {
	return g.resumed
}

// Reset builds a new level instance. With runtime.Resume set, a resumable
// checkpoint replaces the generated state; without it any checkpoint is
// discarded. Checkpoint problems are logged and never fatal.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	cfg, err := g.load()
	if err != nil {
		g.logger.Warn("config unavailable, using embedded defaults", "error", err)
		cfg, err = config.Default(g.id)
		if err != nil {
			g.logger.Error("no embedded defaults", "error", err)
		}
	}
	g.cfg = cfg
	g.theme = ThemeFor(cfg.Theme)

	g.build()

	if !g.fixedStore {
		g.store = nil
		if runtime.SaveDir != "" && cfg.Checkpoint.Enabled {
			s, err := checkpoint.NewStore(runtime.SaveDir, g.id)
			if err != nil {
				g.logger.Warn("checkpoints disabled", "error", err)
			} else {
				g.store = s
			}
		}
	}

	g.resumed = false
	if g.store != nil {
		if runtime.Resume {
			g.resume()
		} else if err := g.store.Clear(); err != nil {
			g.logger.Warn("cannot clear checkpoint", "error", err)
		}
	}
}

// build generates a fresh level from the current config.
func (g *Game) build() {
	g.pool.ReleaseAll()

	g.phase = core.PhaseRunning
	g.elapsed = 0
	g.ticks = 0
	g.events = nil
	g.projectiles = nil

	g.player = NewPlayer(g.cfg.Player, g.cfg.Physics)

	g.platforms = make([]Platform, 0, len(g.cfg.Platforms))
	for _, pc := range g.cfg.Platforms {
		p, err := newPlatform(pc, g.rng)
		if err != nil {
			g.logger.Warn("skipping platform", "error", err)
			continue
		}
		g.platforms = append(g.platforms, p)
	}

	g.keys = newKeyRing(g.cfg.Keys, g.platforms, normalPlatforms(g.platforms), g.rng)
	g.spawner = NewSpawner(g.cfg.Projectiles, g.rng)

	g.uploadMeshes()
}

// uploadMeshes creates the render objects for the level.
func (g *Game) uploadMeshes() {
	g.pool.ReleaseAll()
	for i := range g.platforms {
		g.platforms[i].mesh = g.pool.Upload(platformMesh(&g.platforms[i]))
	}
	for i := range g.keys.Keys {
		g.keys.Keys[i].mesh = g.pool.Upload(mesh.Square(g.keys.Keys[i].Size))
	}
	for i := range g.projectiles {
		g.projectiles[i].mesh = g.pool.Upload(g.projectiles[i].localMesh())
	}
	g.playerMesh = g.pool.Upload(mesh.Circle(g.player.Radius(), mesh.DefaultSegments))
}

// resume loads the checkpoint over the freshly built level.
func (g *Game) resume() {
	if rec, ok := g.loadCheckpoint(); ok {
		g.Restore(rec)
		g.resumed = true
	}
}

// reload restores the saved checkpoint in place of the running level.
func (g *Game) reload() bool {
	rec, ok := g.loadCheckpoint()
	if !ok {
		return false
	}
	g.Restore(rec)
	g.logger.Info("checkpoint loaded", "lives", rec.Player.Lives, "health", rec.Player.Health)
	return true
}

// loadCheckpoint reads the saved record merged over the current state.
// Missing, unreadable and exhausted checkpoints are logged and skipped.
func (g *Game) loadCheckpoint() (checkpoint.Record, bool) {
	if g.store == nil {
		return checkpoint.Record{}, false
	}
	rec, err := g.store.Load(g.Snapshot())
	switch {
	case errors.Is(err, checkpoint.ErrNotFound):
		g.logger.Debug("no checkpoint")
		return rec, false
	case err != nil:
		g.logger.Warn("checkpoint unreadable, ignoring it", "path", g.store.Path(), "error", err)
		return rec, false
	case !rec.Resumable():
		g.logger.Info("checkpoint has no lives left, ignoring it")
		return rec, false
	}
	return rec, true
}

// Snapshot captures the persistent level state. Projectiles and timers
// are transient and not included.
func (g *Game) Snapshot() checkpoint.Record {
	rec := checkpoint.Record{
		Version: checkpoint.Version,
		Biome:   g.id,
		Player: checkpoint.Player{
			Lives:            g.player.Lives,
			Health:           g.player.Health,
			X:                g.player.Pos.X,
			Y:                g.player.Pos.Y,
			GravityDirection: g.player.GravityDir,
		},
		Platforms: make([]checkpoint.Platform, len(g.platforms)),
		Keys:      make([]checkpoint.Key, len(g.keys.Keys)),
	}
	for i := range g.platforms {
		rec.Platforms[i] = g.platforms[i].record()
	}
	for i, k := range g.keys.Keys {
		rec.Keys[i] = checkpoint.Key{PlatformIndex: k.Platform, Collected: k.Collected}
	}
	return rec
}

// Restore applies a checkpoint record to the current level. Saved
// platforms and keys beyond the level's own are ignored. A saved key
// binding to a missing or non-normal platform keeps the current binding,
// and a key left on a platform that is no longer normal moves to a free
// normal one.
func (g *Game) Restore(rec checkpoint.Record) {
	p := &g.player
	p.Lives = rec.Player.Lives
	p.Health = core.ClampF(rec.Player.Health, 0, p.MaxHealth)
	r := p.Radius()
	p.Pos = core.Vec2{
		X: core.ClampF(rec.Player.X, WorldMin+r, WorldMax-r),
		Y: core.ClampF(rec.Player.Y, WorldMin+r, WorldMax-r),
	}
	if rec.Player.GravityDirection > 0 {
		p.GravityDir = GravityUp
	} else if rec.Player.GravityDirection < 0 {
		p.GravityDir = GravityDown
	}
	p.VY = 0
	p.Grounded = false

	for i := range g.platforms {
		if i < len(rec.Platforms) {
			g.platforms[i].restore(rec.Platforms[i])
		}
	}

	for i := range g.keys.Keys {
		if i >= len(rec.Keys) {
			continue
		}
		k := &g.keys.Keys[i]
		saved := rec.Keys[i]
		if saved.PlatformIndex >= 0 && saved.PlatformIndex < len(g.platforms) &&
			g.platforms[saved.PlatformIndex].Kind == KindNormal {
			k.Platform = saved.PlatformIndex
		}
		// Keys only move from uncollected to collected.
		k.Collected = k.Collected || saved.Collected
	}
	g.rebindKeys()

	if p.Dead() {
		g.phase = core.PhaseLost
	}
	g.uploadMeshes()
}

// rebindKeys moves keys whose platform is no longer normal to the lowest
// normal platform without a key, then refreshes every key offset.
func (g *Game) rebindKeys() {
	used := make(map[int]bool, len(g.keys.Keys))
	for _, k := range g.keys.Keys {
		if g.platforms[k.Platform].Kind == KindNormal {
			used[k.Platform] = true
		}
	}
	free := normalPlatforms(g.platforms)
	for i := range g.keys.Keys {
		k := &g.keys.Keys[i]
		if g.platforms[k.Platform].Kind != KindNormal {
			for _, idx := range free {
				if !used[idx] {
					g.logger.Debug("key moved off non-normal platform", "key", i, "from", k.Platform, "to", idx)
					k.Platform = idx
					used[idx] = true
					break
				}
			}
		}
		k.Offset = keyOffset(g.cfg.Keys.Placement, &g.platforms[k.Platform], g.cfg.Keys.Gap)
	}
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	if in.Has(core.ActionPause) {
		switch g.phase {
		case core.PhaseRunning:
			g.phase = core.PhasePaused
		case core.PhasePaused:
			g.phase = core.PhaseRunning
		}
	}
	if g.phase != core.PhaseRunning {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionSaveCheckpoint) && g.saveCheckpoint() {
		g.emit(core.EventCheckpointSaved, -1)
	}
	if in.Has(core.ActionLoadCheckpoint) && g.reload() {
		// The reload replaces this tick.
		g.emit(core.EventCheckpointLoaded, -1)
		return core.StepResult{State: g.State(), Events: g.events}
	}

	dt := g.runtime.DeltaTime()
	g.ticks++
	g.elapsed += dt
	save := false

	for i := range g.platforms {
		g.platforms[i].Update(dt)
	}

	p := &g.player
	p.Tick(dt)
	g.applyInput(in, dt)
	prevEdge := p.ContactEdge()
	p.Integrate(dt)

	res := Resolve(p, g.platforms, &g.keys, ResolveParams{
		Tolerance: g.cfg.Physics.LandingTolerance,
		PrevEdge:  prevEdge,
		Swim:      g.cfg.Mode == config.ModeSwim,
		Water:     g.cfg.HazardZone,
	})
	if res.Hazard {
		g.emit(core.EventHazardHit, res.Platform)
		g.emit(core.EventLifeLost, -1)
		save = true
	}
	if res.Won {
		g.phase = core.PhaseWon
		g.emit(core.EventWon, -1)
		g.logger.Info("level won", "elapsed", g.elapsed, "lives", p.Lives)
		if g.store != nil {
			if err := g.store.Clear(); err != nil {
				g.logger.Warn("cannot clear checkpoint", "error", err)
			}
		}
		return core.StepResult{State: g.State(), Events: g.events}
	}

	for _, idx := range g.keys.TryCollect(p, g.platforms) {
		g.emit(core.EventKeyCollected, idx)
		save = true
	}

	if g.updateProjectiles(dt) {
		save = true
	}

	if p.Dead() {
		g.phase = core.PhaseLost
		g.emit(core.EventLost, -1)
		g.logger.Info("level lost", "elapsed", g.elapsed)
		save = true
	}

	if save {
		g.saveCheckpoint()
	}
	return core.StepResult{State: g.State(), Events: g.events}
}

// applyInput turns held and pressed actions into player motion.
func (g *Game) applyInput(in core.InputFrame, dt float64) {
	p := &g.player
	phys := g.cfg.Physics

	if g.cfg.Mode == config.ModeSwim {
		p.MoveX(in.Axis(core.ActionLeft, core.ActionRight) * phys.SwimSpeed * dt)
		p.VY = in.Axis(core.ActionDown, core.ActionUp) * phys.SwimSpeed
		return
	}

	p.MoveX(in.Axis(core.ActionLeft, core.ActionRight) * phys.MoveSpeed * dt)
	if in.Has(core.ActionJump) {
		p.Jump()
	}
	if phys.GravityFlip && in.Has(core.ActionFlipGravity) {
		p.FlipGravity()
		g.emit(core.EventGravityFlipped, -1)
	}
	p.ApplyGravity(dt)
}

// updateProjectiles spawns, moves and hit-tests projectiles. Reports
// whether the player took damage.
func (g *Game) updateProjectiles(dt float64) bool {
	if pr, ok := g.spawner.Tick(dt); ok {
		pr.mesh = g.pool.Upload(pr.localMesh())
		g.projectiles = append(g.projectiles, pr)
	}

	damaged := false
	kept := g.projectiles[:0]
	for _, pr := range g.projectiles {
		pr.Update(dt)
		if pr.Hits(&g.player) {
			applied, lifeLost := g.player.TakeDamage(g.cfg.Projectiles.Damage)
			if applied {
				g.emit(core.EventDamaged, -1)
				damaged = true
			}
			if lifeLost {
				g.emit(core.EventLifeLost, -1)
			}
			g.pool.Release(pr.mesh)
			continue
		}
		if pr.Gone() {
			g.pool.Release(pr.mesh)
			continue
		}
		kept = append(kept, pr)
	}
	g.projectiles = kept
	return damaged
}

// saveCheckpoint writes the current state. Reports whether it was saved.
func (g *Game) saveCheckpoint() bool {
	if g.store == nil {
		return false
	}
	if err := g.store.Save(g.Snapshot()); err != nil {
		g.logger.Warn("checkpoint save failed", "error", err)
		return false
	}
	return true
}

func (g *Game) emit(kind core.EventKind, index int) {
	g.events = append(g.events, core.Event{Kind: kind, Index: index})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:     g.phase,
		Lives:     g.player.Lives,
		Health:    g.player.Health,
		Keys:      g.keys.Collected(),
		KeysTotal: g.keys.Total(),
		Elapsed:   g.elapsed,
	}
}

// Player returns a copy of the player.
func (g *Game) Player() Player {
	return g.player
}

// Platforms returns a copy of the platforms in creation order.
func (g *Game) Platforms() []Platform {
	return append([]Platform(nil), g.platforms...)
}

// Keys returns a copy of the keys.
func (g *Game) Keys() []Key {
	return append([]Key(nil), g.keys.Keys...)
}

// KeyPosition returns the world position of key i.
func (g *Game) KeyPosition(i int) core.Vec2 {
	return g.keys.Position(i, g.platforms)
}

// Projectiles returns a copy of the live projectiles.
func (g *Game) Projectiles() []Projectile {
	return append([]Projectile(nil), g.projectiles...)
}

// Meshes returns the number of live render objects.
func (g *Game) Meshes() int {
	return g.pool.Len()
}

// Close releases the level's render objects.
func (g *Game) Close() {
	g.pool.ReleaseAll()
}
