package engine

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-biomes/internal/checkpoint"
	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/core"
)

// testConfig describes a small static level: a normal ledge right under
// the spawn point and a goal far away in the top-left corner.
func testConfig() config.BiomeConfig {
	return config.BiomeConfig{
		ID:    "test",
		Title: "Test",
		Theme: "space",
		Mode:  config.ModePlatformer,
		Physics: config.PhysicsConfig{
			Gravity:          1,
			JumpStrength:     0.75,
			MaxJumps:         2,
			MoveSpeed:        0.5,
			SwimSpeed:        0.5,
			LandingTolerance: 0.02,
		},
		Player: config.PlayerConfig{
			Spawn:          config.Point{X: 0.5, Y: -0.3},
			Diameter:       0.06,
			Lives:          3,
			MaxHealth:      100,
			DamageCooldown: 1,
			BlinkInterval:  0.1,
		},
		Platforms: []config.PlatformConfig{
			{Kind: config.KindNormal, X: config.Fixed(0.5), Y: -0.33, Width: config.Fixed(0.4), Height: 0.01, Lower: -0.33, Upper: -0.33, Direction: 1},
			{Kind: config.KindGoal, X: config.Fixed(-0.8), Y: 0.8, Width: config.Fixed(0.3), Height: 0.05, Lower: 0.8, Upper: 0.8, Direction: 1},
		},
		Keys:       config.KeysConfig{Size: 0.04, Gap: 0.02, Placement: config.PlaceAbove},
		Checkpoint: config.CheckpointSettings{Enabled: true},
	}
}

func newTestGame(t *testing.T, cfg config.BiomeConfig, rt core.RuntimeConfig) *Game {
	t.Helper()
	g := New(cfg.ID, cfg.Title, StaticLoader(cfg), WithLogger(log.New(io.Discard)))
	g.Reset(rt)
	return g
}

func runtimeConfig(saveDir string) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1, SaveDir: saveDir}
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

// injectProjectile drops a stationary projectile onto the player.
func injectProjectile(g *Game) {
	pr := Projectile{Pos: g.player.Pos, Shape: config.ShapeCircle, Radius: 0.05}
	pr.mesh = g.pool.Upload(pr.localMesh())
	g.projectiles = append(g.projectiles, pr)
}

func TestStepLandsOnLedge(t *testing.T) {
	g := newTestGame(t, testConfig(), runtimeConfig(""))

	res := g.Step(idle())
	p := g.Player()
	assert.InDelta(t, -0.29, p.Pos.Y, 1e-9)
	assert.Equal(t, 0.0, p.VY)
	assert.True(t, p.Grounded)
	assert.Equal(t, 2, p.Jumps)
	assert.Equal(t, core.PhaseRunning, res.State.Phase)
	assert.Empty(t, res.Events)
}

func TestStepJumpAndRelanding(t *testing.T) {
	g := newTestGame(t, testConfig(), runtimeConfig(""))
	g.Step(idle())

	g.Step(core.NewInputFrame(core.ActionJump))
	p := g.Player()
	assert.Greater(t, p.Pos.Y, -0.29)
	assert.Equal(t, 1, p.Jumps)

	g.Step(core.NewInputFrame(core.ActionJump))
	g.Step(core.NewInputFrame(core.ActionJump))
	assert.Equal(t, 0, g.Player().Jumps)

	for i := 0; i < 600 && !g.Player().Grounded; i++ {
		g.Step(idle())
	}
	p = g.Player()
	require.True(t, p.Grounded)
	assert.InDelta(t, -0.29, p.Pos.Y, 1e-9)
	assert.Equal(t, 2, p.Jumps)
}

func TestHazardCostsLife(t *testing.T) {
	cfg := testConfig()
	cfg.Platforms[0].Kind = config.KindHazard

	g := newTestGame(t, cfg, runtimeConfig(""))
	res := g.Step(idle())

	assert.True(t, res.Has(core.EventHazardHit))
	assert.True(t, res.Has(core.EventLifeLost))
	assert.Equal(t, 2, res.State.Lives)
	assert.Equal(t, core.Vec2{X: 0.5, Y: -0.3}, g.Player().Pos)
	assert.Equal(t, core.PhaseRunning, res.State.Phase)
}

func TestLastLifeLosesLevel(t *testing.T) {
	cfg := testConfig()
	cfg.Platforms[0].Kind = config.KindHazard
	cfg.Player.Lives = 1
	dir := t.TempDir()

	g := newTestGame(t, cfg, runtimeConfig(dir))
	res := g.Step(idle())
	assert.True(t, res.Has(core.EventLost))
	assert.Equal(t, core.PhaseLost, res.State.Phase)
	assert.True(t, res.State.GameOver())

	elapsed := res.State.Elapsed
	res = g.Step(idle())
	assert.Equal(t, elapsed, res.State.Elapsed, "terminal phase freezes the level")

	// The saved record is not resumable.
	rt := runtimeConfig(dir)
	rt.Resume = true
	g2 := newTestGame(t, cfg, rt)
	assert.False(t, g2.Resumed())
	assert.Equal(t, 1, g2.State().Lives)
	assert.Equal(t, core.PhaseRunning, g2.State().Phase)
}

func TestGoalWithoutKeysWins(t *testing.T) {
	cfg := testConfig()
	cfg.Platforms[0].Kind = config.KindGoal
	dir := t.TempDir()

	g := newTestGame(t, cfg, runtimeConfig(dir))
	store := g.store
	require.NotNil(t, store)
	require.NoError(t, store.Save(g.Snapshot()))

	res := g.Step(idle())
	assert.True(t, res.Has(core.EventWon))
	assert.Equal(t, core.PhaseWon, res.State.Phase)
	assert.True(t, g.Player().Won)
	assert.False(t, store.Exists(), "winning clears the checkpoint")

	elapsed := res.State.Elapsed
	res = g.Step(core.NewInputFrame(core.ActionJump))
	assert.Equal(t, elapsed, res.State.Elapsed)
	assert.Equal(t, core.PhaseWon, res.State.Phase)
}

func TestGoalLockedUntilKeysCollected(t *testing.T) {
	cfg := testConfig()
	cfg.Platforms[0].Kind = config.KindGoal
	cfg.Platforms = append(cfg.Platforms, config.PlatformConfig{
		Kind: config.KindNormal, X: config.Fixed(-0.5), Y: -0.6, Width: config.Fixed(0.2), Height: 0.02, Lower: -0.6, Upper: -0.6, Direction: 1,
	})
	cfg.Keys.Count = 1

	g := newTestGame(t, cfg, runtimeConfig(""))
	require.Equal(t, 1, g.keys.Total())
	assert.Equal(t, 2, g.keys.Keys[0].Platform)

	res := g.Step(idle())
	assert.Equal(t, core.PhaseRunning, res.State.Phase)
	assert.True(t, g.Player().Grounded, "locked goal is solid")

	g.keys.Keys[0].Collected = true
	res = g.Step(idle())
	assert.Equal(t, core.PhaseWon, res.State.Phase)
	assert.Equal(t, 1, res.State.Keys)
}

func TestKeyCollectionSavesCheckpoint(t *testing.T) {
	cfg := testConfig()
	cfg.Keys.Count = 1
	dir := t.TempDir()

	g := newTestGame(t, cfg, runtimeConfig(dir))
	res := g.Step(idle())
	require.True(t, res.Has(core.EventKeyCollected))
	assert.Equal(t, 1, res.State.Keys)
	assert.Equal(t, 1, res.State.KeysTotal)

	store, err := checkpoint.NewStore(dir, "test")
	require.NoError(t, err)
	rec, err := store.Load(checkpoint.Record{})
	require.NoError(t, err)
	require.Len(t, rec.Keys, 1)
	assert.True(t, rec.Keys[0].Collected)
	assert.Equal(t, 0, rec.Keys[0].PlatformIndex)

	// Collected keys stay collected even against a stale record.
	rec.Keys[0].Collected = false
	g.Restore(rec)
	assert.True(t, g.Keys()[0].Collected)

	for i := 0; i < 30; i++ {
		res = g.Step(idle())
		require.Equal(t, 1, res.State.Keys)
	}
}

func TestProjectileDamage(t *testing.T) {
	cfg := testConfig()
	cfg.Projectiles.Damage = 10
	dir := t.TempDir()

	g := newTestGame(t, cfg, runtimeConfig(dir))
	before := g.Meshes()
	injectProjectile(g)
	require.Equal(t, before+1, g.Meshes())

	res := g.Step(idle())
	assert.True(t, res.Has(core.EventDamaged))
	assert.False(t, res.Has(core.EventLifeLost))
	assert.Equal(t, 90.0, res.State.Health)
	assert.Empty(t, g.Projectiles(), "a projectile is consumed by its hit")
	assert.Equal(t, before, g.Meshes(), "consumed projectile releases its mesh")

	store, err := checkpoint.NewStore(dir, "test")
	require.NoError(t, err)
	assert.True(t, store.Exists(), "damage saves a checkpoint")

	// Inside the cooldown a second hit is absorbed.
	injectProjectile(g)
	res = g.Step(idle())
	assert.False(t, res.Has(core.EventDamaged))
	assert.Equal(t, 90.0, res.State.Health)
}

func TestProjectileDamageCanCostLife(t *testing.T) {
	cfg := testConfig()
	cfg.Projectiles.Damage = 10

	g := newTestGame(t, cfg, runtimeConfig(""))
	g.player.Health = 8
	injectProjectile(g)

	res := g.Step(idle())
	assert.True(t, res.Has(core.EventDamaged))
	assert.True(t, res.Has(core.EventLifeLost))
	assert.Equal(t, 2, res.State.Lives)
	assert.Equal(t, 100.0, res.State.Health)
}

func TestProjectilesSpawnAndLeave(t *testing.T) {
	cfg := testConfig()
	cfg.Projectiles = config.ProjectilesConfig{
		Enabled:  true,
		Shape:    config.ShapeCircle,
		Edge:     config.EdgeRight,
		Margin:   0.1,
		Interval: config.Fixed(100),
		Lane:     config.Fixed(0.9),
		Size:     config.Fixed(0.03),
		Speed:    config.Fixed(2),
		Damage:   10,
	}
	g := newTestGame(t, cfg, runtimeConfig(""))
	base := g.Meshes()

	g.Step(idle())
	require.Len(t, g.Projectiles(), 1)
	assert.Equal(t, base+1, g.Meshes())

	for i := 0; i < 120; i++ {
		g.Step(idle())
	}
	assert.Empty(t, g.Projectiles())
	assert.Equal(t, base, g.Meshes())
}

func TestSwimMode(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = config.ModeSwim
	cfg.Player.Spawn = config.Point{X: 0, Y: 0}

	g := newTestGame(t, cfg, runtimeConfig(""))
	g.Step(core.NewInputFrame(core.ActionUp))
	assert.InDelta(t, 0.5/60, g.Player().Pos.Y, 1e-12)

	y := g.Player().Pos.Y
	for i := 0; i < 30; i++ {
		g.Step(idle())
	}
	assert.Equal(t, y, g.Player().Pos.Y, "no gravity while swimming")

	g.Step(core.NewInputFrame(core.ActionRight, core.ActionDown))
	p := g.Player()
	assert.InDelta(t, 0.5/60, p.Pos.X, 1e-12)
	assert.InDelta(t, 0, p.Pos.Y, 1e-12)

	// Open water between x -0.7 and 0.7; the ledge at (0.3..0.7, -0.33) is
	// the only pad.
	cfg.HazardZone = config.HazardZone{MinX: -0.7, MaxX: 0.7, Reach: 0.1}
	cfg.Player.Spawn = config.Point{X: 0.85, Y: 0}
	g = newTestGame(t, cfg, runtimeConfig(""))

	hitAt := -1
	for i := 0; i < 60; i++ {
		res := g.Step(core.NewInputFrame(core.ActionLeft))
		if res.Has(core.EventHazardHit) {
			hitAt = i
			assert.True(t, res.Has(core.EventLifeLost))
			break
		}
	}
	require.NotEqual(t, -1, hitAt, "swimming into open water should cost a life")
	assert.GreaterOrEqual(t, hitAt, 17, "no hazard before entering the water")
	assert.Equal(t, 2, g.State().Lives)
	assert.Equal(t, core.Vec2{X: 0.85, Y: 0}, g.Player().Pos)

	// Hugging the pad keeps the swimmer safe.
	cfg.Player.Spawn = config.Point{X: 0.85, Y: -0.25}
	g = newTestGame(t, cfg, runtimeConfig(""))
	for i := 0; i < 50; i++ {
		res := g.Step(core.NewInputFrame(core.ActionLeft))
		require.False(t, res.Has(core.EventHazardHit), "tick %d", i)
	}
	assert.Less(t, g.Player().Pos.X, 0.7)
	assert.Equal(t, 3, g.State().Lives)
}

func TestGravityFlip(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.GravityFlip = true
	cfg.Player.Spawn = config.Point{X: 0, Y: 0}

	g := newTestGame(t, cfg, runtimeConfig(""))
	res := g.Step(core.NewInputFrame(core.ActionFlipGravity))
	require.True(t, res.Has(core.EventGravityFlipped))
	assert.Equal(t, GravityUp, g.Player().GravityDir)

	for i := 0; i < 200; i++ {
		g.Step(idle())
	}
	p := g.Player()
	assert.True(t, p.Grounded)
	assert.InDelta(t, 0.97, p.Pos.Y, 1e-9)

	cfg.Physics.GravityFlip = false
	g = newTestGame(t, cfg, runtimeConfig(""))
	res = g.Step(core.NewInputFrame(core.ActionFlipGravity))
	assert.False(t, res.Has(core.EventGravityFlipped))
	assert.Equal(t, GravityDown, g.Player().GravityDir)
}

func TestPauseFreezesLevel(t *testing.T) {
	g := newTestGame(t, testConfig(), runtimeConfig(""))
	g.Step(idle())

	res := g.Step(core.NewInputFrame(core.ActionPause))
	require.Equal(t, core.PhasePaused, res.State.Phase)
	assert.True(t, res.State.Paused())
	elapsed := res.State.Elapsed

	for i := 0; i < 10; i++ {
		res = g.Step(core.NewInputFrame(core.ActionJump))
	}
	assert.Equal(t, elapsed, res.State.Elapsed)
	assert.True(t, g.Player().Grounded)

	res = g.Step(core.NewInputFrame(core.ActionPause))
	assert.Equal(t, core.PhaseRunning, res.State.Phase)
	assert.Greater(t, res.State.Elapsed, elapsed)
}

func TestCheckpointResume(t *testing.T) {
	cfg, err := config.Default(config.BiomeSpace)
	require.NoError(t, err)
	dir := t.TempDir()

	g := newTestGame(t, cfg, runtimeConfig(dir))
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame(core.ActionLeft))
	}
	injectProjectile(g)
	res := g.Step(idle())
	require.True(t, res.Has(core.EventDamaged))
	saved := g.Snapshot()

	rt := runtimeConfig(dir)
	rt.Seed = 99
	rt.Resume = true
	g2 := newTestGame(t, cfg, rt)
	require.True(t, g2.Resumed())
	assert.Equal(t, saved, g2.Snapshot())
	assert.Equal(t, res.State.Health, g2.State().Health)

	for i := range g2.Keys() {
		assert.Equal(t, g.KeyPosition(i), g2.KeyPosition(i))
	}
}

func TestResetWithoutResumeClearsCheckpoint(t *testing.T) {
	cfg := testConfig()
	dir := t.TempDir()

	g := newTestGame(t, cfg, runtimeConfig(dir))
	injectProjectile(g)
	g.Step(idle())
	require.True(t, g.store.Exists())

	g.Reset(runtimeConfig(dir))
	assert.False(t, g.store.Exists())
	assert.False(t, g.Resumed())
	assert.Equal(t, 100.0, g.State().Health)
}

func TestResumeIgnoresCorruptCheckpoint(t *testing.T) {
	cfg := testConfig()
	fresh := newTestGame(t, cfg, runtimeConfig(t.TempDir())).Snapshot()

	dir := t.TempDir()
	store, err := checkpoint.NewStore(dir, "test")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	rt := runtimeConfig(dir)
	rt.Resume = true
	g := newTestGame(t, cfg, rt)
	assert.False(t, g.Resumed())
	assert.Equal(t, fresh, g.Snapshot())
}

func TestResumeWithoutCheckpoint(t *testing.T) {
	rt := runtimeConfig(t.TempDir())
	rt.Resume = true
	g := newTestGame(t, testConfig(), rt)
	assert.False(t, g.Resumed())
	assert.Equal(t, 3, g.State().Lives)
}

func TestCheckpointsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Checkpoint.Enabled = false
	dir := t.TempDir()

	g := newTestGame(t, cfg, runtimeConfig(dir))
	injectProjectile(g)
	g.Step(idle())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRestoreKeepsKeysOnNormalPlatforms(t *testing.T) {
	cfg := testConfig()
	cfg.Keys.Count = 1
	g := newTestGame(t, cfg, runtimeConfig(""))

	rec := g.Snapshot()
	rec.Keys[0].PlatformIndex = 1 // the goal
	g.Restore(rec)
	assert.Equal(t, 0, g.Keys()[0].Platform)

	rec.Keys[0].PlatformIndex = 42
	g.Restore(rec)
	assert.Equal(t, 0, g.Keys()[0].Platform)
}

func TestRestoreMovesKeyOffHazard(t *testing.T) {
	cfg := testConfig()
	cfg.Keys.Count = 1
	cfg.Platforms = append(cfg.Platforms, config.PlatformConfig{
		Kind: config.KindNormal, X: config.Fixed(-0.4), Y: -0.6, Width: config.Fixed(0.2), Height: 0.02, Lower: -0.6, Upper: -0.6, Direction: 1,
	})
	g := newTestGame(t, cfg, runtimeConfig(""))

	rec := g.Snapshot()
	bound := rec.Keys[0].PlatformIndex
	rec.Platforms[bound].Type = checkpoint.TypeHazard
	rec.Keys[0].PlatformIndex = 99
	g.Restore(rec)

	require.Equal(t, KindHazard, g.Platforms()[bound].Kind)
	key := g.Keys()[0]
	assert.NotEqual(t, bound, key.Platform)
	assert.Equal(t, KindNormal, g.Platforms()[key.Platform].Kind)
}

func TestManualSaveAndReload(t *testing.T) {
	cfg := testConfig()
	cfg.Keys.Count = 1
	dir := t.TempDir()

	g := newTestGame(t, cfg, runtimeConfig(dir))
	g.Step(idle())
	g.keys.Keys[0].Collected = true

	res := g.Step(core.NewInputFrame(core.ActionSaveCheckpoint))
	require.True(t, res.Has(core.EventCheckpointSaved))
	require.True(t, g.store.Exists())
	saved := g.Snapshot()

	g.keys.Keys[0].Collected = false
	g.player.Lives = 1
	g.player.Health = 40
	g.player.Pos = core.Vec2{X: -0.5, Y: 0.2}
	elapsed := g.State().Elapsed

	res = g.Step(core.NewInputFrame(core.ActionLoadCheckpoint))
	require.True(t, res.Has(core.EventCheckpointLoaded))
	assert.Equal(t, 1, res.State.Keys)
	assert.Equal(t, 3, res.State.Lives)
	assert.Equal(t, 100.0, res.State.Health)
	assert.Equal(t, elapsed, res.State.Elapsed, "the reload replaces the tick")
	p := g.Player()
	assert.InDelta(t, saved.Player.X, p.Pos.X, 1e-9)
	assert.InDelta(t, saved.Player.Y, p.Pos.Y, 1e-9)
}

func TestReloadWithoutUsableCheckpoint(t *testing.T) {
	dir := t.TempDir()
	g := newTestGame(t, testConfig(), runtimeConfig(dir))
	g.Step(idle())

	res := g.Step(core.NewInputFrame(core.ActionLoadCheckpoint))
	assert.False(t, res.Has(core.EventCheckpointLoaded))
	assert.Positive(t, res.State.Elapsed, "the tick still runs")

	require.NoError(t, os.WriteFile(g.store.Path(), []byte("{not json"), 0o600))
	g.player.Health = 40
	res = g.Step(core.NewInputFrame(core.ActionLoadCheckpoint))
	assert.False(t, res.Has(core.EventCheckpointLoaded))
	assert.Equal(t, 40.0, res.State.Health)

	g = newTestGame(t, testConfig(), runtimeConfig(""))
	res = g.Step(core.NewInputFrame(core.ActionSaveCheckpoint, core.ActionLoadCheckpoint))
	assert.False(t, res.Has(core.EventCheckpointSaved), "no store, nothing saved")
	assert.False(t, res.Has(core.EventCheckpointLoaded))
}

func TestRestoreClampsPlayer(t *testing.T) {
	g := newTestGame(t, testConfig(), runtimeConfig(""))

	rec := g.Snapshot()
	rec.Player.Health = 500
	rec.Player.X = 7
	rec.Player.Y = -3
	rec.Player.GravityDirection = 1
	g.Restore(rec)

	p := g.Player()
	assert.Equal(t, 100.0, p.Health)
	assert.InDelta(t, 0.97, p.Pos.X, 1e-12)
	assert.InDelta(t, -0.97, p.Pos.Y, 1e-12)
	assert.Equal(t, GravityUp, p.GravityDir)
}

func TestDeterministicSimulation(t *testing.T) {
	cfg, err := config.Default(config.BiomeSpace)
	require.NoError(t, err)

	script := func(i int) core.InputFrame {
		switch {
		case i%50 == 0:
			return core.NewInputFrame(core.ActionJump)
		case i%120 < 60:
			return core.NewInputFrame(core.ActionRight)
		default:
			return core.NewInputFrame(core.ActionLeft)
		}
	}

	run := func() (checkpoint.Record, []Projectile) {
		rt := runtimeConfig("")
		rt.Seed = 42
		g := newTestGame(t, cfg, rt)
		for i := 0; i < 600; i++ {
			g.Step(script(i))
		}
		return g.Snapshot(), g.Projectiles()
	}

	recA, prA := run()
	recB, prB := run()
	assert.Equal(t, recA, recB)
	assert.Equal(t, prA, prB)
}

func TestLoaderFailureFallsBackToDefaults(t *testing.T) {
	failing := func() (config.BiomeConfig, error) {
		return config.BiomeConfig{}, os.ErrNotExist
	}
	g := New(config.BiomeRiver, "River", failing, WithLogger(log.New(io.Discard)))
	g.Reset(runtimeConfig(""))

	assert.Equal(t, config.ModeSwim, g.Config().Mode)
	assert.NotEmpty(t, g.Platforms())
}

func TestRender(t *testing.T) {
	g := newTestGame(t, testConfig(), runtimeConfig(""))
	g.Step(idle())

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.Row(0), "Test")
	assert.Contains(t, scr.Row(0), "Keys 0/0")
	assert.Contains(t, scr.String(), string(ThemeFor("space").PlayerRune))
	assert.Contains(t, scr.String(), string(ThemeFor("space").NormalRune))

	g.Step(core.NewInputFrame(core.ActionPause))
	g.Render(scr)
	assert.Contains(t, scr.String(), "PAUSED")

	// Too small to draw anything but must not panic.
	g.Render(core.NewScreen(1, 1))
}

func TestRenderMarksOpenWater(t *testing.T) {
	cfg := testConfig()
	cfg.Theme = "river"
	cfg.Mode = config.ModeSwim
	cfg.Player.Spawn = config.Point{X: 0.85, Y: 0}
	cfg.HazardZone = config.HazardZone{MinX: -0.7, MaxX: 0.7, Reach: 0.1}
	g := newTestGame(t, cfg, runtimeConfig(""))

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	water := ThemeFor("river").Backdrop
	assert.Contains(t, scr.String(), string(water))
	for y := 1; y < scr.Height(); y++ {
		assert.NotEqual(t, water, []rune(scr.Row(y))[0], "row %d: the bank is dry", y)
	}
}

func TestRenderBanners(t *testing.T) {
	cfg := testConfig()
	cfg.Platforms[0].Kind = config.KindGoal
	g := newTestGame(t, cfg, runtimeConfig(""))
	g.Step(idle())

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.String(), "YOU WIN!")

	cfg.Platforms[0].Kind = config.KindHazard
	cfg.Player.Lives = 1
	g = newTestGame(t, cfg, runtimeConfig(""))
	g.Step(idle())
	g.Render(scr)
	assert.True(t, strings.Contains(scr.String(), "GAME OVER"))
}

func TestCloseReleasesMeshes(t *testing.T) {
	g := newTestGame(t, testConfig(), runtimeConfig(""))
	require.Positive(t, g.Meshes())
	g.Close()
	assert.Equal(t, 0, g.Meshes())
}
