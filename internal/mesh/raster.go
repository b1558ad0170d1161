package mesh

import (
	"math"

	"github.com/vovakirdan/tui-biomes/internal/core"
)

// Viewport maps world coordinates in [-1, 1] x [-1, 1] (Y up) onto a
// character grid (Y down).
type Viewport struct {
	Cols, Rows int
}

// ToCell converts a world point to the cell containing it.
func (v Viewport) ToCell(p core.Vec2) (col, row int) {
	col = int(math.Floor((p.X + 1) / 2 * float64(v.Cols)))
	row = int(math.Floor((1 - p.Y) / 2 * float64(v.Rows)))
	return col, row
}

// CellCenter returns the world position of a cell's center.
func (v Viewport) CellCenter(col, row int) core.Vec2 {
	return core.Vec2{
		X: -1 + (float64(col)+0.5)*2/float64(v.Cols),
		Y: 1 - (float64(row)+0.5)*2/float64(v.Rows),
	}
}

// Fill draws m translated by offset into dst, marking every cell whose
// center lies inside a triangle. Meshes thinner than one cell still draw
// at least the cell under their center. Returns the number of cells set.
func (v Viewport) Fill(dst *core.Screen, m Mesh, offset core.Vec2, r rune, c core.Color) int {
	drawn := 0
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, cc := m.Triangle(i)
		drawn += v.fillTriangle(dst, a.Add(offset), b.Add(offset), cc.Add(offset), r, c)
	}
	if drawn == 0 && m.TriangleCount() > 0 {
		center := m.Bounds().Center().Add(offset)
		col, row := v.ToCell(center)
		if col >= 0 && col < v.Cols && row >= 0 && row < v.Rows {
			dst.SetColored(col, row, r, c)
			drawn = 1
		}
	}
	return drawn
}

func (v Viewport) fillTriangle(dst *core.Screen, a, b, c core.Vec2, r rune, color core.Color) int {
	area := edge(a, b, c)
	if area == 0 {
		return 0
	}

	minX := math.Min(a.X, math.Min(b.X, c.X))
	maxX := math.Max(a.X, math.Max(b.X, c.X))
	minY := math.Min(a.Y, math.Min(b.Y, c.Y))
	maxY := math.Max(a.Y, math.Max(b.Y, c.Y))

	col0, row0 := v.ToCell(core.Vec2{X: minX, Y: maxY})
	col1, row1 := v.ToCell(core.Vec2{X: maxX, Y: minY})
	col0 = core.Clamp(col0, 0, v.Cols-1)
	col1 = core.Clamp(col1, 0, v.Cols-1)
	row0 = core.Clamp(row0, 0, v.Rows-1)
	row1 = core.Clamp(row1, 0, v.Rows-1)

	drawn := 0
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			p := v.CellCenter(col, row)
			w0 := edge(b, c, p)
			w1 := edge(c, a, p)
			w2 := edge(a, b, p)
			// Accept either winding; shared edges belong to both triangles.
			if (area > 0 && w0 >= -edgeEpsilon && w1 >= -edgeEpsilon && w2 >= -edgeEpsilon) ||
				(area < 0 && w0 <= edgeEpsilon && w1 <= edgeEpsilon && w2 <= edgeEpsilon) {
				dst.SetColored(col, row, r, color)
				drawn++
			}
		}
	}
	return drawn
}

const edgeEpsilon = 1e-9

func edge(a, b, p core.Vec2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}
