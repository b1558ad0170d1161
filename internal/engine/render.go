package engine

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/mesh"
)

// Theme holds the glyphs and colours a biome is drawn with.
type Theme struct {
	Backdrop        rune
	BackdropColor   core.Color
	NormalRune      rune
	NormalColor     core.Color
	HazardRune      rune
	HazardColor     core.Color
	GoalRune        rune
	GoalColor       core.Color
	KeyRune         rune
	KeyColor        core.Color
	PlayerRune      rune
	PlayerColor     core.Color
	ProjectileRune  rune
	ProjectileColor core.Color
	HUDColor        core.Color
}

var themes = map[string]Theme{
	"space": {
		Backdrop: '·', BackdropColor: core.ColorGray,
		NormalRune: '▀', NormalColor: core.ColorBrightGreen,
		HazardRune: '▲', HazardColor: core.ColorBrightRed,
		GoalRune: '▀', GoalColor: core.ColorBrightYellow,
		KeyRune: '¤', KeyColor: core.ColorYellow,
		PlayerRune: '●', PlayerColor: core.ColorOrange,
		ProjectileRune: '◉', ProjectileColor: core.ColorGray,
		HUDColor: core.ColorBrightWhite,
	},
	"river": {
		Backdrop: '~', BackdropColor: core.ColorBlue,
		NormalRune: '▬', NormalColor: core.ColorGreen,
		HazardRune: '▲', HazardColor: core.ColorRed,
		GoalRune: '█', GoalColor: core.ColorYellow,
		KeyRune: '¤', KeyColor: core.ColorBrightYellow,
		PlayerRune: '●', PlayerColor: core.ColorOrange,
		ProjectileRune: '≈', ProjectileColor: core.ColorBrightCyan,
		HUDColor: core.ColorBrightWhite,
	},
	"upside_down": {
		Backdrop: ' ', BackdropColor: core.ColorDefault,
		NormalRune: '█', NormalColor: core.ColorMagenta,
		HazardRune: '▲', HazardColor: core.ColorBrightRed,
		GoalRune: '█', GoalColor: core.ColorBrightGreen,
		KeyRune: '¤', KeyColor: core.ColorBrightYellow,
		PlayerRune: '●', PlayerColor: core.ColorBrightCyan,
		ProjectileRune: '*', ProjectileColor: core.ColorWhite,
		HUDColor: core.ColorBrightMagenta,
	},
}

// ThemeFor returns the named theme, falling back to a plain one.
func ThemeFor(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return Theme{
		Backdrop: ' ', NormalRune: '█', HazardRune: '▲', GoalRune: '▓',
		KeyRune: '¤', PlayerRune: '@', ProjectileRune: 'o',
		NormalColor: core.ColorGreen, HazardColor: core.ColorRed, GoalColor: core.ColorYellow,
		KeyColor: core.ColorBrightYellow, PlayerColor: core.ColorWhite, ProjectileColor: core.ColorGray,
	}
}

// hudRows is the number of screen rows reserved for the status line.
const hudRows = 1

// Render draws the level into dst. The first row holds the HUD and the
// rest shows the world.
func (g *Game) Render(dst *core.Screen) {
	t := g.theme
	w, h := dst.Width(), dst.Height()
	if w <= 0 || h <= hudRows {
		return
	}

	world := core.NewScreen(w, h-hudRows)
	if t.Backdrop != ' ' {
		// Sparse backdrop so the playfield stays readable. With a hazard
		// zone only the open water gets it.
		zone := g.cfg.HazardZone
		for y := 0; y < world.Height(); y++ {
			for x := (y * 7) % 11; x < w; x += 11 {
				if zone.Enabled() && !zone.Contains(columnX(x, w)) {
					continue
				}
				world.SetColored(x, y, t.Backdrop, t.BackdropColor)
			}
		}
	}
	vp := mesh.Viewport{Cols: w, Rows: h - hudRows}

	for i := range g.platforms {
		pl := &g.platforms[i]
		r, c := t.NormalRune, t.NormalColor
		switch pl.Kind {
		case KindHazard:
			r, c = t.HazardRune, t.HazardColor
		case KindGoal:
			r, c = t.GoalRune, t.GoalColor
		}
		g.draw(world, vp, pl.mesh, core.Vec2{X: pl.X, Y: pl.Y}, r, c)
	}

	for i, k := range g.keys.Keys {
		if k.Collected {
			continue
		}
		g.draw(world, vp, k.mesh, g.keys.Position(i, g.platforms), t.KeyRune, t.KeyColor)
	}

	for _, pr := range g.projectiles {
		g.draw(world, vp, pr.mesh, pr.Pos, t.ProjectileRune, t.ProjectileColor)
	}

	if g.player.Visible {
		g.draw(world, vp, g.playerMesh, g.player.Pos, t.PlayerRune, t.PlayerColor)
	}

	for y := 0; y < world.Height(); y++ {
		for x := 0; x < w; x++ {
			cell := world.GetCell(x, y)
			dst.SetColored(x, y+hudRows, cell.Rune, cell.Color)
		}
	}

	dst.DrawTextColored(0, 0, g.hud(), t.HUDColor)

	switch g.phase {
	case core.PhasePaused:
		g.drawBanner(dst, "PAUSED", "Press P to resume")
	case core.PhaseWon:
		g.drawBanner(dst, "YOU WIN!", fmt.Sprintf("Time %.1fs", g.elapsed))
	case core.PhaseLost:
		g.drawBanner(dst, "GAME OVER", "No lives left")
	}
}

// columnX returns the world x at the center of screen column col.
func columnX(col, cols int) float64 {
	return WorldMin + (float64(col)+0.5)*(WorldMax-WorldMin)/float64(cols)
}

func (g *Game) draw(dst *core.Screen, vp mesh.Viewport, h mesh.Handle, at core.Vec2, r rune, c core.Color) {
	m, ok := g.pool.Get(h)
	if !ok {
		return
	}
	vp.Fill(dst, m, at, r, c)
}

// hud formats the status line.
func (g *Game) hud() string {
	p := &g.player
	var sb strings.Builder
	fmt.Fprintf(&sb, " %s  Lives %s  Health %3.0f  Keys %d/%d",
		g.title, strings.Repeat("♥", max(p.Lives, 0)), p.Health, g.keys.Collected(), g.keys.Total())
	if g.cfg.Physics.GravityFlip {
		dir := "↓"
		if p.GravityDir > 0 {
			dir = "↑"
		}
		fmt.Fprintf(&sb, "  Gravity %s", dir)
	}
	if g.resumed {
		sb.WriteString("  (resumed)")
	}
	return sb.String()
}

// drawBanner draws a centered two-line box over the playfield.
func (g *Game) drawBanner(dst *core.Screen, title, subtitle string) {
	width := max(len([]rune(title)), len([]rune(subtitle))) + 6
	height := 4
	x := (dst.Width() - width) / 2
	y := (dst.Height() - height) / 2

	dst.FillRect(x, y, width, height, ' ')
	dst.DrawBox(x, y, width, height)
	dst.DrawTextCentered(y+1, title)
	dst.DrawTextCentered(y+2, subtitle)
}
