// Package mesh generates triangle geometry for level entities and rasterizes
// it onto the character screen. Meshes are built in entity-local coordinates
// and translated at draw time, so moving bodies never rebuild their geometry.
package mesh

import (
	"math"

	"github.com/vovakirdan/tui-biomes/internal/core"
)

// DefaultSegments is the number of fan triangles used for circles.
const DefaultSegments = 20

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []core.Vec2
	Indices  []uint32
}

// TriangleCount returns the number of triangles described by the index list.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three corners of triangle i.
func (m Mesh) Triangle(i int) (a, b, c core.Vec2) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Bounds returns the axis-aligned box enclosing every vertex.
func (m Mesh) Bounds() core.Box {
	if len(m.Vertices) == 0 {
		return core.Box{}
	}
	b := core.Box{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, v := range m.Vertices {
		b.MinX = math.Min(b.MinX, v.X)
		b.MinY = math.Min(b.MinY, v.Y)
		b.MaxX = math.Max(b.MaxX, v.X)
		b.MaxY = math.Max(b.MaxY, v.Y)
	}
	return b
}

// Merge appends other to m, rebasing its indices.
func (m Mesh) Merge(other Mesh) Mesh {
	base := uint32(len(m.Vertices))
	out := Mesh{
		Vertices: append(append([]core.Vec2(nil), m.Vertices...), other.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
	}
	for _, idx := range other.Indices {
		out.Indices = append(out.Indices, idx+base)
	}
	return out
}

// Rect builds a rectangle whose bottom-left corner is at (x, y).
func Rect(x, y, w, h float64) Mesh {
	return Mesh{
		Vertices: []core.Vec2{
			{X: x, Y: y},
			{X: x + w, Y: y},
			{X: x + w, Y: y + h},
			{X: x, Y: y + h},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

// CenteredRect builds a rectangle centered on the origin.
func CenteredRect(w, h float64) Mesh {
	return Rect(-w/2, -h/2, w, h)
}

// Square builds a square of the given side centered on the origin.
func Square(side float64) Mesh {
	return CenteredRect(side, side)
}

// Circle builds a triangle fan approximating a circle centered on the origin.
func Circle(radius float64, segments int) Mesh {
	if segments < 3 {
		segments = DefaultSegments
	}
	m := Mesh{
		Vertices: make([]core.Vec2, 0, segments+1),
		Indices:  make([]uint32, 0, segments*3),
	}
	m.Vertices = append(m.Vertices, core.Vec2{})
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		m.Vertices = append(m.Vertices, core.Vec2{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		})
	}
	for i := 1; i <= segments; i++ {
		next := i%segments + 1
		m.Indices = append(m.Indices, 0, uint32(i), uint32(next))
	}
	return m
}

// Polygon builds a triangle fan over a convex outline given in order.
// Outlines with fewer than three points yield an empty mesh.
func Polygon(points []core.Vec2) Mesh {
	if len(points) < 3 {
		return Mesh{}
	}
	m := Mesh{Vertices: append([]core.Vec2(nil), points...)}
	for i := 1; i < len(points)-1; i++ {
		m.Indices = append(m.Indices, 0, uint32(i), uint32(i+1))
	}
	return m
}

// Spikes builds a row of count triangles along the edge y, spanning
// [x, x+w]. Tips point up for positive h and down for negative h.
func Spikes(x, y, w, h float64, count int) Mesh {
	if count <= 0 {
		return Mesh{}
	}
	step := w / float64(count)
	var m Mesh
	for i := 0; i < count; i++ {
		left := x + float64(i)*step
		m = m.Merge(Polygon([]core.Vec2{
			{X: left, Y: y},
			{X: left + step, Y: y},
			{X: left + step/2, Y: y + h},
		}))
	}
	return m
}
