package biomes_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-biomes/internal/biomes"
	"github.com/vovakirdan/tui-biomes/internal/biomes/river"
	"github.com/vovakirdan/tui-biomes/internal/biomes/space"
	"github.com/vovakirdan/tui-biomes/internal/biomes/upsidedown"
	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/registry"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestAllBiomesRegistered(t *testing.T) {
	for _, id := range []string{river.ID, space.ID, upsidedown.ID} {
		info, ok := registry.Lookup(id)
		require.True(t, ok, id)
		assert.NotEmpty(t, info.Title)
		assert.NotEmpty(t, info.Description)
	}
}

func TestBiomesRunHeadless(t *testing.T) {
	isolate(t)

	for _, id := range []string{river.ID, space.ID, upsidedown.ID} {
		info, _ := registry.Lookup(id)
		t.Run(info.ID, func(t *testing.T) {
			g, err := registry.Create(info.ID)
			require.NoError(t, err)
			defer g.Close()

			g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})
			st := g.State()
			require.Equal(t, core.PhaseRunning, st.Phase)
			assert.Equal(t, 3, st.Lives)
			assert.Positive(t, st.KeysTotal)

			for i := 0; i < 300; i++ {
				st = g.Step(core.NewInputFrame(core.ActionRight)).State
				if st.Phase.Terminal() {
					break
				}
			}
			assert.GreaterOrEqual(t, st.Health, 0.0)

			scr := core.NewScreen(80, 24)
			g.Render(scr)
			assert.Contains(t, scr.Row(0), info.Title)
		})
	}
}

func TestSettingsApplyDifficulty(t *testing.T) {
	isolate(t)

	var s biomes.Settings
	assert.Equal(t, config.DifficultyNormal, s.Difficulty())

	s.SetDifficulty(config.DifficultyEasy)
	cfg, err := s.Load(config.BiomeSpace)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Player.Lives)

	s.SetDifficulty(config.DifficultyHard)
	g := biomes.New(config.BiomeSpace, "Space", &s)
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 1})
	assert.Equal(t, 2, g.State().Lives)
}

func TestSettingsCustomPath(t *testing.T) {
	isolate(t)

	data, err := config.DefaultYAML(config.BiomeRiver)
	require.NoError(t, err)
	custom := filepath.Join(t.TempDir(), "river.yaml")
	edited := strings.Replace(string(data), "title: River", "title: Wide River", 1)
	require.NoError(t, os.WriteFile(custom, []byte(edited), 0o644))

	var s biomes.Settings
	s.SetConfigPath(custom)
	assert.Equal(t, custom, s.ConfigPath())

	g := biomes.New(config.BiomeRiver, "River", &s)
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 1})
	assert.Equal(t, "Wide River", g.Config().Title)

	// Edits apply to the next Reset.
	edited = strings.Replace(edited, "title: Wide River", "title: Narrow River", 1)
	require.NoError(t, os.WriteFile(custom, []byte(edited), 0o644))
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 1})
	assert.Equal(t, "Narrow River", g.Config().Title)
}

func TestSettingsRejectBrokenCustomPath(t *testing.T) {
	var s biomes.Settings
	s.SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := s.Load(config.BiomeSpace)
	assert.Error(t, err)
}
